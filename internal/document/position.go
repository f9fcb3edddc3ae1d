package document

// Position is a zero-based (line, UTF-16 column) pair. Columns are UTF-16
// code units because that is what editors send and expect, regardless of
// the UTF-8 text held internally.
type Position struct {
	Line      uint32
	Character uint32
}

// Range is a half-open [Start, End) span.
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether pos falls inside the range, end-inclusive so a
// cursor sitting just after a token still hits it.
func (r Range) Contains(pos Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character > r.End.Character {
		return false
	}
	return true
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}

// UTF16Col converts a byte offset within line to a UTF-16 column. Offsets
// past the end of the line clamp to the line's full width.
func UTF16Col(line string, byteOff int) uint32 {
	if byteOff > len(line) {
		byteOff = len(line)
	}
	return UTF16Len(line[:byteOff])
}

// ByteOffset converts a UTF-16 column to a byte offset within line,
// clamping past-the-end columns to len(line).
func ByteOffset(line string, col uint32) int {
	var units uint32
	for i, r := range line {
		if units >= col {
			return i
		}
		units++
		if r > 0xFFFF {
			units++
		}
	}
	return len(line)
}
