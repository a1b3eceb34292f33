package logtail

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding is returned by NewDecoder for unsupported encoding names.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Decoder converts raw file bytes to text. Malformed input never fails: it is
// replaced with U+FFFD. A multi-byte character split across two forward reads
// therefore shows up as replacement characters on both sides of the split.
type Decoder struct {
	enc      encoding.Encoding
	name     string
	stripNUL bool
}

// NewDecoder looks up an encoding by its WHATWG label (utf-8, utf-16le,
// iso-8859-1, shift_jis, ...). When stripNUL is set NUL characters are removed
// after decoding, which keeps UTF-16 files read as UTF-8 legible.
func NewDecoder(name string, stripNUL bool) (Decoder, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if label == "" {
		label = DefaultEncoding
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return Decoder{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = label
	}
	return Decoder{enc: enc, name: canonical, stripNUL: stripNUL}, nil
}

// Name returns the canonical encoding name.
func (d Decoder) Name() string {
	if d.name == "" {
		return DefaultEncoding
	}
	return d.name
}

// Decode converts b to a string.
func (d Decoder) Decode(b []byte) string {
	enc := d.enc
	if enc == nil {
		enc = unicode.UTF8
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		out = b
	}
	text := string(out)
	if d.stripNUL {
		text = strings.ReplaceAll(text, "\x00", "")
	}
	return text
}
