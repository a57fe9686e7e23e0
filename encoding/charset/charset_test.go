// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package charset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rkeene-labs/smsmasque/encoding/charset"
)

func TestUnsupported(t *testing.T) {
	patterns := []struct {
		name string
		r    rune
		want bool
	}{
		{"NUL", 0x0000, true},
		{"LRE", 0x202A, true},
		{"RLO", 0x202E, true},
		{"PDI", 0x2069, true},
		{"LRM", 0x200E, true},
		{"RLM", 0x200F, true},
		{"ALM", 0x061C, true},
		{"ASCII a", 'a', false},
		{"BOM BE", charset.BOMBE, false},
		{"BOM LE", charset.BOMLE, false},
		{"emoji", '💩', false},
	}
	for _, p := range patterns {
		p := p
		t.Run(p.name, func(t *testing.T) {
			assert.Equal(t, p.want, charset.Unsupported(p.r))
		})
	}
}

func TestHasUnsupported(t *testing.T) {
	assert.False(t, charset.HasUnsupported(""))
	assert.False(t, charset.HasUnsupported("hello"))
	assert.True(t, charset.HasUnsupported("hel lo"))
	assert.True(t, charset.HasUnsupported("a‪b"))
}

func TestConstants(t *testing.T) {
	assert.Equal(t, 63, charset.PageLen)
	assert.Equal(t, 70, charset.SinglePageLen)
	assert.Equal(t, rune(0xFEFF), rune(charset.BOMBE))
	assert.Equal(t, rune(0xFFFE), rune(charset.BOMLE))
	assert.Equal(t, rune(0xFFFD), rune(charset.ReplacementBE))
	assert.Equal(t, rune(0xFDFF), rune(charset.ReplacementLE))
}
