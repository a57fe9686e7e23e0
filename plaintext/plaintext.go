// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package plaintext coerces arbitrary unicode text down to a plain ASCII
// fallback, for gateways and handsets too old to render masqueraded UCS-2
// at all. Unlike masquerade, this coercion is lossy and one-directional:
// there is no round trip back to the original text.
package plaintext

import (
	"strings"
	"sync"

	"github.com/mozillazg/go-unidecode"
	"github.com/rivo/uniseg"

	"github.com/rkeene-labs/smsmasque/encoding/charset"
)

var (
	memoMu sync.RWMutex
	memo   = map[string]string{}
)

// Coerce transliterates text grapheme by grapheme: a grapheme containing an
// unsupported codepoint (NUL or a bidi control) is dropped outright;
// everything else is run through an ASCII transliterator, unprintable
// characters are stripped or normalized to a space, and a grapheme that
// transliterates to nothing becomes a literal "?" so the output never
// silently loses a character position.
func Coerce(text string) string {
	var b strings.Builder
	state := -1
	remaining := text
	for len(remaining) > 0 {
		var cluster string
		cluster, remaining, _, state = uniseg.FirstGraphemeClusterInString(remaining, state)
		b.WriteString(coerceGrapheme(cluster))
	}
	return b.String()
}

func coerceGrapheme(g string) string {
	memoMu.RLock()
	out, ok := memo[g]
	memoMu.RUnlock()
	if ok {
		return out
	}

	out = computeGrapheme(g)

	memoMu.Lock()
	memo[g] = out
	memoMu.Unlock()
	return out
}

func computeGrapheme(g string) string {
	if g == "" {
		return ""
	}
	if charset.HasUnsupported(g) {
		return ""
	}
	out := translate(unidecode.Unidecode(g))
	if out == "" {
		return "?"
	}
	return out
}

// translate mirrors the original transliterator's cleanup pass: a backtick
// becomes an apostrophe, tab/vertical-tab/form-feed become a space, and
// every other non-printable byte (backspace, the remaining C0 controls, and
// the C1/Latin-1 supplement range) is dropped. Newline and carriage return
// pass through unchanged.
func translate(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '`':
			b.WriteRune('\'')
		case '\t', '\v', '\f':
			b.WriteRune(' ')
		case '\b':
			continue
		case '\n', '\r':
			b.WriteRune(r)
		default:
			if r < 0x20 || (r >= 0x7F && r <= 0xFF) {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
