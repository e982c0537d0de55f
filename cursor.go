package fasterparser

import "github.com/Kakikou/faster-parser/internal/scan"

// cursor walks a message buffer left to right. Every movement reports
// whether it stayed in bounds, so a walker aborts on the first failed lookup
// instead of reading past a truncated or malformed message.
type cursor struct {
	buf []byte
	pos int
}

// seek advances to the first occurrence of target at or after the current
// position.
func (c *cursor) seek(target byte) bool {
	off := scan.FindChar(c.buf[c.pos:], target)
	if off < 0 {
		return false
	}
	c.pos += off
	return true
}

// skip advances n bytes, the fixed width of a key plus its punctuation.
func (c *cursor) skip(n int) bool {
	if c.pos+n > len(c.buf) {
		return false
	}
	c.pos += n
	return true
}

// span returns the bytes from the current position up to the next occurrence
// of target, leaving the cursor on the terminator.
func (c *cursor) span(target byte) ([]byte, bool) {
	off := scan.FindChar(c.buf[c.pos:], target)
	if off < 0 {
		return nil, false
	}
	v := c.buf[c.pos : c.pos+off]
	c.pos += off
	return v, true
}

// rest returns everything from the current position to the end of the buffer.
func (c *cursor) rest() []byte {
	return c.buf[c.pos:]
}
