package tokenizer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// codingCookie matches a PEP 263 encoding declaration inside a comment,
// e.g. "# -*- coding: latin-1 -*-".
var codingCookie = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)

// encodingAliases maps Python codec spellings that the IANA index does not
// know to their registered names.
var encodingAliases = map[string]string{
	"latin":       "ISO-8859-1",
	"latin-1":     "ISO-8859-1",
	"latin1":      "ISO-8859-1",
	"iso-latin-1": "ISO-8859-1",
}

// decodeSource converts src to UTF-8 according to the coding cookie found in
// its first two lines. Sources without a cookie are assumed UTF-8 already.
func decodeSource(src []byte) ([]byte, error) {
	src = bytes.TrimPrefix(src, utf8BOM)

	name := cookieEncoding(src)
	if name == "" || isUTF8Name(name) {
		return src, nil
	}

	if alias, ok := encodingAliases[name]; ok {
		name = alias
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("tokenizer: unknown source encoding %q", name)
	}
	decoded, err := enc.NewDecoder().Bytes(src)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: decode %s source: %w", name, err)
	}
	return decoded, nil
}

// cookieEncoding returns the normalized declared encoding, or "" when the
// first two lines carry no declaration.
func cookieEncoding(src []byte) string {
	lines := bytes.SplitN(src, []byte("\n"), 3)
	for i := 0; i < len(lines) && i < 2; i++ {
		if m := codingCookie.FindSubmatch(lines[i]); m != nil {
			name := strings.ToLower(string(m[1]))
			return strings.ReplaceAll(name, "_", "-")
		}
	}
	return ""
}

func isUTF8Name(name string) bool {
	switch name {
	case "utf-8", "utf8", "ascii", "us-ascii":
		return true
	}
	return false
}
