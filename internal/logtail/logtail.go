package logtail

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

const (
	// DefaultChunkSize is the block size used when scanning a file backwards.
	DefaultChunkSize = 8 * 1024

	// DefaultMaxReadBytes caps a single forward delta read. Anything beyond
	// the cap is left for the next poll.
	DefaultMaxReadBytes int64 = 16 * 1024 * 1024
)

// ErrFileNotFound is returned when the tailed path does not exist at poll time.
var ErrFileNotFound = errors.New("log file not found")

// ReadError describes an I/O failure while reading the tailed file.
type ReadError struct {
	Op   string
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s log %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// PollResult is the outcome of a single poll.
//
// NewLines may begin or end with an empty string: a delta that starts with a
// line terminator yields an empty first segment and one that ends with a
// terminator yields an empty last segment. Both matter when the lines are
// merged into a buffer.
type PollResult struct {
	NewLines  []string
	NewOffset int64
	Truncated bool
	Rescanned bool
	Size      int64
}

// Reader reads new content from a log file. The zero value is ready to use
// with UTF-8 decoding and the default limits. Reader keeps no state between
// calls; callers carry the offset from one poll to the next.
type Reader struct {
	ChunkSize    int
	MaxReadBytes int64
	Decoder      Decoder
}

// ScanLastLines returns at most maxLines lines from the end of the file at
// path, oldest first, together with the file length at scan time.
func ScanLastLines(path string, maxLines int) ([]string, int64, error) {
	return Reader{}.ScanLastLines(path, maxLines)
}

// Poll reads whatever was appended to path since lastOffset using a default
// Reader.
func Poll(path string, lastOffset int64, maxLines int) (PollResult, error) {
	return Reader{}.Poll(path, lastOffset, maxLines)
}

// ScanLastLines returns at most maxLines lines from the end of the file at
// path, oldest first, together with the file length at scan time.
func (r Reader) ScanLastLines(path string, maxLines int) ([]string, int64, error) {
	file, size, err := open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	lines, err := r.scan(file, size, maxLines)
	if err != nil {
		return nil, 0, &ReadError{Op: "scan", Path: path, Err: err}
	}
	return lines, size, nil
}

// Poll decides between a full backward scan and a forward delta read.
//
// A zero offset means the caller has no position yet; an offset past the end
// of the file means the file shrank. Both cases rescan the last maxLines lines
// and report the file length as the new offset. Otherwise the bytes between
// lastOffset and the current end of file are read, capped at MaxReadBytes.
func (r Reader) Poll(path string, lastOffset int64, maxLines int) (PollResult, error) {
	file, size, err := open(path)
	if err != nil {
		return PollResult{NewOffset: lastOffset}, err
	}
	defer file.Close()

	truncated := lastOffset > size
	if lastOffset <= 0 || truncated {
		lines, err := r.scan(file, size, maxLines)
		if err != nil {
			return PollResult{NewOffset: lastOffset}, &ReadError{Op: "scan", Path: path, Err: err}
		}
		return PollResult{
			NewLines:  lines,
			NewOffset: size,
			Truncated: truncated,
			Rescanned: true,
			Size:      size,
		}, nil
	}

	delta := size - lastOffset
	if delta <= 0 {
		return PollResult{NewOffset: lastOffset, Size: size}, nil
	}
	if limit := r.maxReadBytes(); delta > limit {
		delta = limit
	}

	buf := make([]byte, delta)
	n, err := file.ReadAt(buf, lastOffset)
	if err != nil && !errors.Is(err, io.EOF) {
		return PollResult{NewOffset: lastOffset}, &ReadError{Op: "read", Path: path, Err: err}
	}
	if n == 0 {
		return PollResult{NewOffset: lastOffset, Size: size}, nil
	}

	content := r.Decoder.Decode(buf[:n])
	return PollResult{
		NewLines:  SplitLines(content),
		NewOffset: lastOffset + int64(n),
		Size:      size,
	}, nil
}

// SplitLines splits text on "\n" or "\r\n", keeping empty leading and
// trailing segments. A lone "\r" at the very end is kept since its "\n" may
// arrive with the next read.
func SplitLines(text string) []string {
	parts := strings.Split(text, "\n")
	for i := 0; i < len(parts)-1; i++ {
		parts[i] = strings.TrimSuffix(parts[i], "\r")
	}
	return parts
}

func open(path string) (*os.File, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, 0, &ReadError{Op: "open", Path: path, Err: err}
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, &ReadError{Op: "stat", Path: path, Err: err}
	}
	return file, info.Size(), nil
}

func (r Reader) chunkSize() int {
	if r.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return r.ChunkSize
}

func (r Reader) maxReadBytes() int64 {
	if r.MaxReadBytes <= 0 {
		return DefaultMaxReadBytes
	}
	return r.MaxReadBytes
}
