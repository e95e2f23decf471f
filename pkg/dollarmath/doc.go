// Package dollarmath recognizes dollar-delimited math in Markdown source.
//
// Two stateless scanners operate over an immutable source buffer:
//
//   - ScanInline decides whether a `$...$` or `$$...$$` span starts at a
//     cursor position inside inline content.
//   - ScanBlock decides whether a line starting with `$$` opens a math block
//     that closes with `$$` (same line or later), optionally followed by a
//     parenthesized label such as `$$ (eq1)`.
//
// Both return a Token on success and ok == false otherwise; a failed scan is
// a normal grammar outcome that tells the host to try its other rules. The
// scanners never log, never allocate copies of the buffer beyond the token
// content, and never mutate shared state, so one Options value may be shared
// by every scan of every document.
//
// Bridge maps tokens to HTML through a pluggable Renderer and contains
// renderer faults per token.
package dollarmath
