// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package plaintext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rkeene-labs/smsmasque/plaintext"
)

func TestCoerceUnencodableBecomesQuestionMark(t *testing.T) {
	tests := []string{"﻿", "￾", "✔", "✔️", "💩"}
	for _, in := range tests {
		assert.Equal(t, "?", plaintext.Coerce(in), "input %q", in)
	}
}

func TestCoerceRepeatedBOM(t *testing.T) {
	assert.Equal(t, strings.Repeat("?", 100), plaintext.Coerce(strings.Repeat("﻿", 100)))
}

func TestCoerceDiacritics(t *testing.T) {
	assert.Equal(t, "Aeiou", plaintext.Coerce("Åéïôu"))
}

func TestCoerceDropsNUL(t *testing.T) {
	assert.Equal(t, "1234567890", plaintext.Coerce("1234567890\x00"))
}

func TestCoerceTrailingAstral(t *testing.T) {
	assert.Equal(t, strings.Repeat("a", 100)+"?", plaintext.Coerce(strings.Repeat("a", 100)+"💩"))
}

func TestCoerceCJK(t *testing.T) {
	assert.Equal(t, "Qiu ?Sheng ", plaintext.Coerce("邱𣿭聖"))
}

func TestCoerceASCIIFixedPoint(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog 0123456789"
	assert.Equal(t, text, plaintext.Coerce(text))
}

func TestCoerceBacktick(t *testing.T) {
	assert.Equal(t, "'", plaintext.Coerce("`"))
}
