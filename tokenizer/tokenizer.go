// Package tokenizer turns Python source into the lexical tokens that matter
// for size accounting: operators, names, numbers and string literals.
// Comments, whitespace and standalone docstrings never reach the caller.
package tokenizer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Kind classifies a retained lexical token.
type Kind int

const (
	Op Kind = iota
	Name
	Number
	String
)

// String returns a short label for the kind, used in test failures.
func (k Kind) String() string {
	switch k {
	case Op:
		return "op"
	case Name:
		return "name"
	case Number:
		return "number"
	case String:
		return "string"
	}
	return "unknown"
}

const docstringDelim = `"""`

// Token is a single lexical token with its 1-based inclusive line span.
// A token spanning lines 10-12 covers all three lines.
type Token struct {
	Kind      Kind
	Text      string
	StartLine int
	EndLine   int
}

// Tokenize lexes Python source and returns the retained tokens in source
// order. The bytes are decoded according to the file's PEP 263 coding cookie
// before parsing. A source that does not lex cleanly is a hard error; the
// caller must not produce a partial report from it.
func Tokenize(ctx context.Context, src []byte) ([]Token, error) {
	decoded, err := decodeSource(src)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, decoded)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("tokenizer: source contains syntax errors")
	}

	lines := strings.Split(string(decoded), "\n")
	var tokens []Token
	collect(root, decoded, lines, &tokens)
	return tokens, nil
}

// collect walks the parse tree depth-first and appends retained tokens.
// String literals are emitted whole rather than as their delimiter and
// content pieces, mirroring how a flat lexer would report them.
func collect(n *sitter.Node, src []byte, lines []string, out *[]Token) {
	switch n.Type() {
	case "comment":
		return
	case "string":
		tok := newToken(String, n, src)
		if !isDocstring(tok, lines) {
			*out = append(*out, tok)
		}
		return
	}

	count := int(n.ChildCount())
	if count == 0 {
		*out = append(*out, newToken(classify(n, src), n, src))
		return
	}
	for i := 0; i < count; i++ {
		collect(n.Child(i), src, lines, out)
	}
}

func newToken(kind Kind, n *sitter.Node, src []byte) Token {
	start := int(n.StartPoint().Row) + 1
	endPt := n.EndPoint()
	end := int(endPt.Row) + 1
	// An end point at column zero means the token stopped at the previous
	// line's newline; that line is not covered.
	if endPt.Column == 0 && end > start {
		end--
	}
	return Token{Kind: kind, Text: n.Content(src), StartLine: start, EndLine: end}
}

// classify maps a leaf node to a token kind. Keywords and the boolean/None
// literals count as names, matching how a whitelist-based lexer buckets them.
func classify(n *sitter.Node, src []byte) Kind {
	switch n.Type() {
	case "identifier":
		return Name
	case "integer", "float":
		return Number
	}
	r, _ := utf8.DecodeRuneInString(n.Content(src))
	if r == '_' || isLetter(r) {
		return Name
	}
	return Op
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// isDocstring reports whether tok is a standalone documentation string: the
// literal starts with the triple-quote delimiter AND the stripped source line
// holding the token's start also begins with that delimiter. A triple-quoted
// string used as a value on the same line as other code is kept.
func isDocstring(tok Token, lines []string) bool {
	if tok.Kind != String || !strings.HasPrefix(tok.Text, docstringDelim) {
		return false
	}
	if tok.StartLine < 1 || tok.StartLine > len(lines) {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(lines[tok.StartLine-1]), docstringDelim)
}
