package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

var (
	// ErrEncoding is returned when no configured encoding can decode a file.
	ErrEncoding = errors.New("could not decode file with any encoding")
	// ErrMalformedRow is returned when a CSV row has more fields than its header.
	ErrMalformedRow = errors.New("malformed CSV row")

	errUnknownEncoding = errors.New("unknown encoding")
	errInvalidUTF8     = errors.New("invalid UTF-8")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// aliases covers the common spellings that the WHATWG and IANA indexes do
// not know, keyed by lower-case name without '-' or '_'.
var aliases = map[string]encoding.Encoding{
	"latin1":      charmap.ISO8859_1,
	"iso88591":    charmap.ISO8859_1,
	"cp1252":      charmap.Windows1252,
	"windows1252": charmap.Windows1252,
}

func isUTF8Name(name string) bool {
	return normalizeName(name) == "utf8"
}

func normalizeName(name string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(name)))
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if enc, ok := aliases[normalizeName(name)]; ok {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w '%s'", errUnknownEncoding, name)
}

// decode converts raw file bytes to UTF-8 text using the named encoding.
// UTF-8 is validated strictly; a leading byte-order mark is dropped.
func decode(data []byte, name string) ([]byte, error) {
	if isUTF8Name(name) {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return nil, errInvalidUTF8
		}
		return data, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return bytes.TrimPrefix(out, utf8BOM), nil
}
