package source

import "sort"

// tabStop is the column multiple a tab advances to, as in CommonMark.
const tabStop = 4

// Lines is the line index of a document.
type Lines []LineInfo

// Len returns the number of lines.
func (ls Lines) Len() int {
	return len(ls)
}

// At returns the line at the 0-based index i.
func (ls Lines) At(i int) LineInfo {
	return ls[i]
}

// LineOf returns the 0-based index of the line containing offset,
// or -1 if the offset is out of range.
func (ls Lines) LineOf(offset int) int {
	if offset < 0 || len(ls) == 0 {
		return -1
	}
	idx := sort.Search(len(ls), func(i int) bool {
		return ls[i].EndOffset > offset
	})
	if idx >= len(ls) {
		last := len(ls) - 1
		if offset == ls[last].EndOffset {
			return last
		}
		return -1
	}
	return idx
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) Lines {
	if len(content) == 0 {
		return Lines{}
	}

	var lines Lines
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			// Check for CRLF.
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, newLineInfo(content, lineStart, newlineStart, idx+1))
			lineStart = idx + 1
		}
	}

	// Handle last line (may not have trailing newline).
	if lineStart < len(content) {
		lines = append(lines, newLineInfo(content, lineStart, len(content), len(content)))
	}

	return lines
}

func newLineInfo(content []byte, start, newlineStart, end int) LineInfo {
	info := LineInfo{
		StartOffset:  start,
		NewlineStart: newlineStart,
		EndOffset:    end,
	}
	for pos := start; pos < newlineStart; pos++ {
		switch content[pos] {
		case ' ':
			info.Indent++
		case '\t':
			info.Indent += tabStop - info.Indent%tabStop
		default:
			return info
		}
		info.IndentBytes++
	}
	return info
}

// LineCount returns the number of lines in the file.
func (s *Snapshot) LineCount() int {
	return len(s.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (s *Snapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(s.Lines) == 0 {
		return 0, 0
	}

	// Handle offset at or past end of content.
	if offset >= len(s.Content) {
		lastLine := s.Lines[len(s.Lines)-1]
		return len(s.Lines), offset - lastLine.StartOffset + 1
	}

	lineIdx := s.Lines.LineOf(offset)
	if lineIdx < 0 {
		return 0, 0
	}

	// 1-based line and column.
	return lineIdx + 1, offset - s.Lines[lineIdx].StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (s *Snapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(s.Lines) {
		return 0, false
	}

	lineInfo := s.Lines[line-1]

	// Column 1 is the first byte of the line.
	if col < 1 {
		return 0, false
	}

	offset := lineInfo.StartOffset + col - 1

	// Allow column to point to end of line (for cursor positioning).
	if offset > lineInfo.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (s *Snapshot) LineContent(line int) []byte {
	if line < 1 || line > len(s.Lines) {
		return nil
	}

	lineInfo := s.Lines[line-1]
	return s.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}

// Rebase returns the line with its start moved to offset, which must lie
// within the line. Indentation is recomputed from the new start.
func (l LineInfo) Rebase(content []byte, offset int) LineInfo {
	return newLineInfo(content, offset, l.NewlineStart, l.EndOffset)
}
