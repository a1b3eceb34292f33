package logtail

import (
	"io"
	"slices"
)

// scan walks the file backwards chunk by chunk and collects up to maxLines
// lines. Line feeds close the current line, carriage returns are dropped and
// runs of terminators collapse, so blank lines never appear in the result.
func (r Reader) scan(src io.ReaderAt, size int64, maxLines int) ([]string, error) {
	if maxLines <= 0 || size <= 0 {
		return nil, nil
	}

	chunk := int64(r.chunkSize())
	buf := make([]byte, chunk)

	// Both slices are built newest first and reversed on the way out.
	lines := make([]string, 0, min(maxLines, 256))
	var acc []byte

	pos := size
scan:
	for pos > 0 {
		n := min(chunk, pos)
		pos -= n
		if _, err := src.ReadAt(buf[:n], pos); err != nil {
			return nil, err
		}

		for i := n - 1; i >= 0; i-- {
			switch c := buf[i]; c {
			case '\n':
				if len(acc) == 0 {
					continue
				}
				lines = append(lines, r.emit(acc))
				acc = acc[:0]
				if len(lines) >= maxLines {
					break scan
				}
			case '\r':
			default:
				acc = append(acc, c)
			}
		}
	}

	if len(acc) > 0 && len(lines) < maxLines {
		lines = append(lines, r.emit(acc))
	}
	slices.Reverse(lines)
	return lines, nil
}

// emit decodes a line whose bytes were accumulated in reverse order.
func (r Reader) emit(reversed []byte) string {
	line := make([]byte, len(reversed))
	for i, c := range reversed {
		line[len(reversed)-1-i] = c
	}
	return r.Decoder.Decode(line)
}
