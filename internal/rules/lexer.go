package rules

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokTrue
	tokFalse
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// tokenize splits a rule expression into tokens. Both symbolic (&, |, !) and
// word (and, or, not) operators are accepted, with or without surrounding
// whitespace, so "!X" and "! X" lex identically.
func tokenize(input string) ([]token, error) {
	toks := make([]token, 0, 16)
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '!':
			toks = append(toks, token{tokNot, "!", i})
			i++
		case c == '&':
			start := i
			i++
			if i < len(input) && input[i] == '&' {
				i++
			}
			toks = append(toks, token{tokAnd, input[start:i], start})
		case c == '|':
			start := i
			i++
			if i < len(input) && input[i] == '|' {
				i++
			}
			toks = append(toks, token{tokOr, input[start:i], start})
		case c == '0':
			toks = append(toks, token{tokFalse, "0", i})
			i++
		case c == '1':
			toks = append(toks, token{tokTrue, "1", i})
			i++
		case isIdentStart(c):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			word := input[start:i]
			switch strings.ToLower(word) {
			case "and":
				toks = append(toks, token{tokAnd, word, start})
			case "or":
				toks = append(toks, token{tokOr, word, start})
			case "not":
				toks = append(toks, token{tokNot, word, start})
			case "true":
				toks = append(toks, token{tokTrue, word, start})
			case "false":
				toks = append(toks, token{tokFalse, word, start})
			default:
				toks = append(toks, token{tokIdent, word, start})
			}
		default:
			return nil, fmt.Errorf("rules: unexpected character %q at position %d", c, i)
		}
	}
	toks = append(toks, token{tokEOF, "", len(input)})
	return toks, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '.'
}
