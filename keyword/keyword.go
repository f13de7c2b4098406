// Package keyword parses keyword specification strings into a Table
// mapping every recognized alias of a keyword to its rendered value, and
// compares tables for change detection.
package keyword

import (
	"strings"
	"time"
)

// MaxTokenLen is the maximum length in bytes of a keyword token,
// including both delimiting '$' characters.
const MaxTokenLen = 255

// Logical keyword identifiers.
const (
	Revision = "revision"
	Date     = "date"
	Author   = "author"
	URL      = "url"
	ID       = "id"
)

type alias struct {
	name          string
	caseSensitive bool
}

// aliases lists every recognized spelling for each logical keyword, in the
// order they should be installed into a Table. The first entry of each
// logical keyword's list is considered its canonical long form.
var aliases = map[string][]alias{
	Revision: {
		{"Revision", true},
		{"LastChangedRevision", true},
		{"Rev", false},
	},
	Date: {
		{"Date", true},
		{"LastChangedDate", false},
	},
	Author: {
		{"Author", true},
		{"LastChangedBy", false},
	},
	URL: {
		{"HeadURL", true},
		{"URL", false},
	},
	ID: {
		{"Id", false},
	},
}

// logicalOrder fixes iteration order for Equal so results are deterministic.
var logicalOrder = []string{Revision, Date, Author, URL, ID}

// Table maps every recognized alias spelling to the keyword's rendered
// value. Multiple aliases of the same logical keyword share a value.
type Table map[string]string

// matchesSpecToken reports whether tok (one whitespace-delimited word from
// a keyword spec string) selects the given alias, honoring its
// case-sensitivity rule.
func (a alias) matchesSpecToken(tok string) bool {
	if a.caseSensitive {
		return tok == a.name
	}
	return strings.EqualFold(tok, a.name)
}

// isSpecWhitespace reports whether b is one of the ASCII whitespace bytes
// used to delimit tokens in a keyword spec string: space, tab, vertical
// tab, newline, backspace, carriage return, form feed.
func isSpecWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\n', '\b', '\r', '\f':
		return true
	default:
		return false
	}
}

// splitSpec tokenizes a keyword spec string on ASCII whitespace, discarding
// empty tokens.
func splitSpec(spec string) []string {
	var toks []string
	start := -1
	for i := 0; i < len(spec); i++ {
		if isSpecWhitespace(spec[i]) {
			if start >= 0 {
				toks = append(toks, spec[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, spec[start:])
	}
	return toks
}

// Values holds the revision metadata fed to Build and to Render.
type Values struct {
	Revision string // empty means "absent"
	URL      string // empty means "absent"
	Date     time.Time
	Author   string // empty means "absent"
}

// Build parses spec (e.g. "Revision Date Author URL Id") and returns a
// Table mapping every recognized alias of every selected logical keyword
// to that keyword's rendered value. Tokens that match no known alias are
// silently ignored. An empty or all-unmatched spec yields an empty Table.
func Build(spec string, vals Values) Table {
	table := Table{}
	for _, tok := range splitSpec(spec) {
		logical := matchLogical(tok)
		if logical == "" {
			continue
		}
		if _, already := renderedFor(table, logical); already {
			continue
		}
		value := Render(formatFor(logical), vals)
		for _, a := range aliases[logical] {
			table[a.name] = value
		}
	}
	return table
}

func matchLogical(tok string) string {
	for _, logical := range logicalOrder {
		for _, a := range aliases[logical] {
			if a.matchesSpecToken(tok) {
				return logical
			}
		}
	}
	return ""
}

// renderedFor reports whether logical's canonical alias is already present
// in table, so repeated spec tokens for the same keyword don't re-render.
func renderedFor(table Table, logical string) (string, bool) {
	canonical := aliases[logical][0].name
	v, ok := table[canonical]
	return v, ok
}

func formatFor(logical string) string {
	switch logical {
	case Revision:
		return "%r"
	case Date:
		return "%D"
	case Author:
		return "%a"
	case URL:
		return "%u"
	case ID:
		return "%b %r %d %a"
	default:
		return ""
	}
}

// Equal compares two tables for change detection. A nil or empty table is
// equal to another nil or empty table. Otherwise both tables must have
// values for exactly the same set of logical keywords; if compareValues is
// set, the string value under each present keyword's canonical alias must
// also match. Only the canonical alias of each logical keyword is examined.
func Equal(a, b Table, compareValues bool) bool {
	aEmpty, bEmpty := len(a) == 0, len(b) == 0
	if aEmpty && bEmpty {
		return true
	}
	if aEmpty != bEmpty {
		return false
	}

	for _, logical := range logicalOrder {
		canonical := aliases[logical][0].name
		av, aok := a[canonical]
		bv, bok := b[canonical]
		if aok != bok {
			return false
		}
		if aok && compareValues && av != bv {
			return false
		}
	}
	return true
}

// Fields is a fixed-field facade over the five canonical keywords, for
// callers that prefer named fields to a map.
type Fields struct {
	Revision string
	Date     string
	Author   string
	URL      string
	ID       string
}

// ToFields reads the canonical alias of each logical keyword out of table.
func ToFields(table Table) Fields {
	return Fields{
		Revision: table[aliases[Revision][0].name],
		Date:     table[aliases[Date][0].name],
		Author:   table[aliases[Author][0].name],
		URL:      table[aliases[URL][0].name],
		ID:       table[aliases[ID][0].name],
	}
}

// FromFields installs each non-empty field of f under every alias of its
// logical keyword.
func FromFields(f Fields) Table {
	table := Table{}
	install := func(logical, value string) {
		if value == "" {
			return
		}
		for _, a := range aliases[logical] {
			table[a.name] = value
		}
	}
	install(Revision, f.Revision)
	install(Date, f.Date)
	install(Author, f.Author)
	install(URL, f.URL)
	install(ID, f.ID)
	return table
}
