// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qa

import (
	"unicode"
	"unicode/utf8"
)

// Token scanners. Each inspects the start of s and returns the byte length
// of the token found there, or 0 when s does not start with that token.

// scanNumber matches a run of ASCII digits.
func scanNumber(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}

// scanParenthetical matches "(" followed by one or more characters that are
// not parentheses, then ")". The content may span lines.
func scanParenthetical(s string) int {
	if len(s) < 3 || s[0] != '(' {
		return 0
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '(':
			return 0
		case ')':
			if i == 1 {
				return 0
			}
			return i + 1
		}
	}
	return 0
}

// scanMarker matches an answer-option marker: one of a, b, c, d followed by ")".
func scanMarker(s string) int {
	if len(s) < 2 || s[0] < 'a' || s[0] > 'd' || s[1] != ')' {
		return 0
	}
	return 2
}

// scanSpace matches a single whitespace rune.
func scanSpace(s string) int {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsSpace(r) {
		return 0
	}
	return size
}

// spaceBefore reports whether the rune ending at byte offset i of s is whitespace.
func spaceBefore(s string, i int) bool {
	if i <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsSpace(r)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
