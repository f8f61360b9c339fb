// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1 (x)", 1},
		{"123(x)", 3},
		{"07", 2},
		{"a1", 0},
		{"", 0},
		{"１", 0}, // full-width digits are not ASCII
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, scanNumber(tt.in))
		})
	}
}

func TestScanParenthetical(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"simple", "(What is 2+2) rest", 13},
		{"spans lines", "(first\nsecond)", 14},
		{"empty content", "() a)", 0},
		{"nested open", "(a (b) c)", 0},
		{"unterminated", "(abc", 0},
		{"not at start", " (abc)", 0},
		{"single char", "(x)", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanParenthetical(tt.in))
		})
	}
}

func TestScanMarker(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"a) 4", 2},
		{"b)", 2},
		{"c)x", 2},
		{"d) ", 2},
		{"e)", 0},
		{"A)", 0},
		{"a", 0},
		{"a.", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, scanMarker(tt.in))
		})
	}
}

func TestScanSpace(t *testing.T) {
	assert.Equal(t, 1, scanSpace(" x"))
	assert.Equal(t, 1, scanSpace("\n"))
	assert.Equal(t, 1, scanSpace("\t\t"), "only one rune is consumed")
	assert.Equal(t, 2, scanSpace("\u00a0x"), "non-breaking space is two bytes")
	assert.Equal(t, 0, scanSpace("x"))
	assert.Equal(t, 0, scanSpace(""))
}

func TestSpaceBefore(t *testing.T) {
	s := "ab c"
	assert.False(t, spaceBefore(s, 0))
	assert.False(t, spaceBefore(s, 2))
	assert.True(t, spaceBefore(s, 3))
}
