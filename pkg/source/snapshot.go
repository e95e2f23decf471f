// Package source provides an immutable view of a Markdown document:
// the raw bytes plus a line index that the math scanners address by offset.
package source

// Snapshot is an immutable view of a document at a specific time.
type Snapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines Lines
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int

	// Indent is the column width of the leading whitespace, with tab stops of 4.
	Indent int

	// IndentBytes is the number of bytes of leading whitespace.
	IndentBytes int
}

// ContentStart returns the offset of the first byte after the indentation.
func (l LineInfo) ContentStart() int {
	return l.StartOffset + l.IndentBytes
}

// IsBlank returns true if the line holds nothing but whitespace.
func (l LineInfo) IsBlank() bool {
	return l.ContentStart() >= l.NewlineStart
}

// NewSnapshot creates a new Snapshot from content and builds its line index.
// The content is copied so later mutation by the caller cannot leak in.
func NewSnapshot(path string, content []byte) *Snapshot {
	cp := copyContent(content)
	return &Snapshot{
		Path:    path,
		Content: cp,
		Lines:   BuildLines(cp),
	}
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
