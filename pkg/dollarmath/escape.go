package dollarmath

// backslash is the escape character.
const backslash = '\\'

// IsEscaped reports whether the byte at pos is preceded by an odd number of
// consecutive backslashes. An even run escapes itself and leaves pos literal.
func IsEscaped(src []byte, pos int) bool {
	if pos > len(src) {
		pos = len(src)
	}
	count := 0
	for back := pos - 1; back >= 0 && src[back] == backslash; back-- {
		count++
	}
	return count%2 == 1
}
