package translate

import "github.com/aretext/wcxlate/keyword"

// MaxTokenLen is the maximum length in bytes of a keyword token (including
// both '$' delimiters). Tokens longer than this never match.
const MaxTokenLen = keyword.MaxTokenLen

// Rewrite attempts to rewrite the candidate token buf[:l] in place
// (buf[0] must be '$' and buf[l-1] must be '$'). On success it returns the
// new length and true; the caller must write buf[:newLen] to the output.
// On failure (the token is malformed, or its name is not in table) it
// returns l and false, leaving buf untouched so the caller can emit the
// original bytes verbatim.
//
// buf must have spare capacity up to MaxTokenLen: an expand of a bare
// token can grow the token, and the rewritten result never exceeds
// MaxTokenLen.
func Rewrite(buf []byte, l int, direction Direction, table keyword.Table) (int, bool) {
	if l < 2 || l > MaxTokenLen || buf[0] != '$' || buf[l-1] != '$' {
		return l, false
	}

	// Extract the keyword name: runs from buf[1] until the first ':' or
	// '$' (which, given the invariant that buf contains exactly two '$'
	// bytes, is equivalent to running until buf[l-2] if no ':' appears).
	i := 1
	for i < l-1 && buf[i] != ':' && buf[i] != '$' {
		i++
	}
	name := string(buf[1:i])

	value, ok := table[name]
	if !ok {
		return l, false
	}

	return rewriteShape(buf, l, i, value, direction)
}

// rewriteShape dispatches on the bytes following the keyword name (at
// bufPtr = 1+len(name)) to the fixed-width, bare, or expanded shape.
func rewriteShape(buf []byte, l, bufPtr int, value string, direction Direction) (int, bool) {
	nameLen := bufPtr - 1

	if isFixedWidth(buf, l, bufPtr, nameLen) {
		return rewriteFixedWidth(buf, l, bufPtr, value, direction), true
	}

	if isBare(buf, l, bufPtr) {
		return rewriteBareOrExpanded(buf, bufPtr, nameLen, value, direction)
	}

	if isExpanded(buf, l, bufPtr, nameLen) {
		return rewriteBareOrExpanded(buf, bufPtr, nameLen, value, direction)
	}

	return l, false
}

func isFixedWidth(buf []byte, l, bufPtr, nameLen int) bool {
	if bufPtr+2 >= l {
		return false
	}
	if buf[bufPtr] != ':' || buf[bufPtr+1] != ':' || buf[bufPtr+2] != ' ' {
		return false
	}
	if buf[l-2] != ' ' && buf[l-2] != '#' {
		return false
	}
	return 6+nameLen < l
}

func isBare(buf []byte, l, bufPtr int) bool {
	if bufPtr < l && buf[bufPtr] == '$' {
		return true
	}
	if bufPtr+1 < l && buf[bufPtr] == ':' && buf[bufPtr+1] == '$' {
		return true
	}
	return false
}

func isExpanded(buf []byte, l, bufPtr, nameLen int) bool {
	if l < 4+nameLen {
		return false
	}
	if bufPtr+1 >= l {
		return false
	}
	return buf[bufPtr] == ':' && buf[bufPtr+1] == ' ' && buf[l-2] == ' '
}

// rewriteFixedWidth rewrites the "::"-form token, whose total length is
// always preserved.
func rewriteFixedWidth(buf []byte, l, bufPtr int, value string, direction Direction) int {
	maxValueLen := l - (bufPtr + 5)

	if direction == Contract {
		for i := bufPtr + 2; i < l-1; i++ {
			buf[i] = ' '
		}
		return l
	}

	if len(value) <= maxValueLen {
		pos := bufPtr + 3
		pos += copy(buf[pos:l-1], value)
		for pos < l-1 {
			buf[pos] = ' '
			pos++
		}
		return l
	}

	copy(buf[bufPtr+3:l-2], value[:maxValueLen])
	buf[l-2] = '#'
	buf[l-1] = '$'
	return l
}

// rewriteBareOrExpanded implements the shared expand/contract logic for
// both the bare ("$name$"/"$name:$") and expanded ("$name: value $")
// shapes: both contract to the same "$name$" form regardless of which
// shape they started from.
func rewriteBareOrExpanded(buf []byte, bufPtr, nameLen int, value string, direction Direction) (int, bool) {
	if direction == Contract {
		buf[bufPtr] = '$'
		return 2 + nameLen, true
	}

	maxValueLen := MaxTokenLen - 5 - nameLen
	if maxValueLen < 0 {
		maxValueLen = 0
	}
	vallen := len(value)
	if vallen > maxValueLen {
		vallen = maxValueLen
	}

	buf[bufPtr] = ':'
	if vallen == 0 {
		buf[bufPtr+1] = ' '
		buf[bufPtr+2] = '$'
		return bufPtr + 3, true
	}

	buf[bufPtr+1] = ' '
	copy(buf[bufPtr+2:bufPtr+2+vallen], value[:vallen])
	buf[bufPtr+2+vallen] = ' '
	buf[bufPtr+2+vallen+1] = '$'
	return bufPtr + 2 + vallen + 2, true
}
