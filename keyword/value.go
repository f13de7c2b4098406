package keyword

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Render expands a %-format mini-language string against the supplied
// revision metadata. Any missing input (empty revision, zero date, empty
// url or author) renders as nothing for the corresponding substitution;
// Render never errors.
//
// Format codes:
//
//	%a  author
//	%b  basename of the URL (last path segment, URL-decoded)
//	%d  date in UTC as "YYYY-MM-DD hh:mm:ssZ"
//	%D  date in a longer human form (date, day-of-week, timezone)
//	%r  revision numeral
//	%u  full URL
//	%%  literal '%'
//
// A '%' as the last byte of fmt, or followed by an unrecognized code, is
// emitted verbatim.
func Render(format string, vals Values) string {
	var out strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			out.WriteByte(format[i])
			continue
		}
		if i+1 == len(format) {
			out.WriteByte('%')
			break
		}
		switch format[i+1] {
		case 'a':
			out.WriteString(vals.Author)
		case 'b':
			out.WriteString(baseName(vals.URL))
		case 'd':
			out.WriteString(shortDate(vals))
		case 'D':
			out.WriteString(longDate(vals))
		case 'r':
			out.WriteString(vals.Revision)
		case 'u':
			out.WriteString(vals.URL)
		case '%':
			out.WriteByte('%')
		default:
			out.WriteByte('%')
			out.WriteByte(format[i+1])
		}
		i++
	}
	return out.String()
}

func baseName(u string) string {
	if u == "" {
		return ""
	}
	base := path.Base(u)
	decoded, err := url.PathUnescape(base)
	if err != nil {
		return base
	}
	return decoded
}

func shortDate(vals Values) string {
	if vals.Date.IsZero() {
		return ""
	}
	t := vals.Date.UTC()
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02dZ",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}

func longDate(vals Values) string {
	if vals.Date.IsZero() {
		return ""
	}
	// e.g. "2024-03-05 14:22:01 +0000 (Tue, 05 Mar 2024)"
	t := vals.Date.UTC()
	return fmt.Sprintf("%s (%s)",
		t.Format("2006-01-02 15:04:05 -0700"),
		t.Format("Mon, 02 Jan 2006"))
}
