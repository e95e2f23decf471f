package dollarmath

// LabelMatch is a trailing `$$ (label)` found by MatchLabel.
type LabelMatch struct {
	// Label is the raw label text in natural order, before normalization.
	Label string

	// ContentEnd is the adjusted end offset: the position of the first `$`
	// of the closing delimiter.
	ContentEnd int
}

// MatchLabel checks whether line ends with `$$`, optional whitespace, `(`,
// a label, `)` and optional whitespace. end is the absolute offset of the
// end of line (its last byte plus one) and anchors ContentEnd.
//
// Read right to left the grammar is: whitespace*, `)`, one or more bytes
// other than `)`, `$`, CR and LF (as few as possible), `(`, whitespace*,
// `$$`. The match must reach the end of the line; a label followed by
// other text does not count.
func MatchLabel(line []byte, end int) (LabelMatch, bool) {
	i := len(line) - 1
	for i >= 0 && isLabelSpace(line[i]) {
		i--
	}
	if i < 0 || line[i] != ')' {
		return LabelMatch{}, false
	}
	closeParen := i

	// Lazy label: try each '(' from the nearest one outward until the rest
	// of the grammar fits.
	for open := closeParen - 1; open >= 0; open-- {
		c := line[open]
		if c == ')' || c == dollar || c == '\r' || c == '\n' {
			return LabelMatch{}, false
		}
		if c != '(' || open == closeParen-1 {
			continue
		}
		j := open - 1
		for j >= 0 && isLabelSpace(line[j]) {
			j--
		}
		if j >= 1 && line[j] == dollar && line[j-1] == dollar {
			first := j - 1
			return LabelMatch{
				Label:      string(line[open+1 : closeParen]),
				ContentEnd: end - (len(line) - first),
			}, true
		}
	}
	return LabelMatch{}, false
}

// isLabelSpace matches the whitespace class allowed around the label.
func isLabelSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
