// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package masquerade implements the grapheme coercer: mapping one extended
// grapheme cluster to a pair of "UCS-2-masqueraded UTF-16" strings, one per
// byte order, such that each is safe to carry through a strict UTF-8
// gateway.
//
// The coercer is a pure function of (grapheme, policy); Coercer memoizes it,
// since real-world input repeats a small set of unique graphemes far more
// often than it introduces new ones.
package masquerade

import (
	"encoding/binary"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/rkeene-labs/smsmasque/encoding/charset"
	"github.com/rkeene-labs/smsmasque/encoding/ucs2"
)

// Policy controls how a grapheme containing an unsupported codepoint
// (charset.Unsupported) is handled.
type Policy int

const (
	// PolicyReplace substitutes the replacement pair and flags an error.
	// This is the default.
	PolicyReplace Policy = iota
	// PolicyIgnore drops the grapheme entirely, silently.
	PolicyIgnore
	// PolicyError reports the grapheme as unencodable on both sides,
	// leaving the decision of what to do to the caller.
	PolicyError
	// PolicyPass lets the grapheme through the normal encoding path
	// unchanged. The resulting masquerade may contain codepoints the
	// gateway is documented to drop (e.g. NUL); this is unspecified
	// upstream and kept only for parity with the source implementation.
	PolicyPass
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case PolicyReplace:
		return "replace"
	case PolicyIgnore:
		return "ignore"
	case PolicyError:
		return "error"
	case PolicyPass:
		return "pass"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses the policy names used by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "replace":
		return PolicyReplace, nil
	case "ignore":
		return PolicyIgnore, nil
	case "error":
		return PolicyError, nil
	case "pass":
		return PolicyPass, nil
	default:
		return 0, fmt.Errorf("masquerade: unknown policy %q", s)
	}
}

// Side is one endianness' masquerade of a grapheme: either Encodable, with
// Text holding the masquerade (a sequence of codepoints each <= U+FFFF,
// containing no surrogate value), or not Encodable at all, in which case
// Text is always empty. This tagged form replaces the source's sentinel
// "unencodable" string; there is no value of Side that is both Encodable
// and carries unencodable-marker text.
type Side struct {
	Text      string
	Encodable bool
}

// Coerced is the pair of per-endianness masquerades for one grapheme.
type Coerced struct {
	BE Side
	LE Side
	// Error is set when the grapheme could not be represented on either
	// side and was collapsed to the replacement pair, or when it
	// contained an unsupported codepoint handled by PolicyReplace.
	Error bool
}

// Unencodable reports whether neither side could represent the grapheme
// (only possible under PolicyError).
func (c Coerced) Unencodable() bool {
	return !c.BE.Encodable && !c.LE.Encodable
}

type memoKey struct {
	grapheme string
	policy   Policy
}

// Coercer memoizes Coerce results. The zero value is not usable; construct
// with NewCoercer. A Coercer is safe for concurrent use.
type Coercer struct {
	mu   sync.RWMutex
	memo map[memoKey]Coerced
}

// NewCoercer creates a Coercer with an empty memo.
func NewCoercer() *Coercer {
	return &Coercer{memo: make(map[memoKey]Coerced, 1024)}
}

// Coerce returns the masquerade pair for the single grapheme g under the
// given policy, computing and caching it if this is the first time (g,
// policy) has been seen.
func (c *Coercer) Coerce(g string, policy Policy) Coerced {
	key := memoKey{g, policy}
	c.mu.RLock()
	v, ok := c.memo[key]
	c.mu.RUnlock()
	if ok {
		return v
	}
	v = coerce(g, policy)
	c.mu.Lock()
	c.memo[key] = v
	c.mu.Unlock()
	return v
}

// replacement is the Coerced value substituted for a grapheme that cannot be
// represented on either side.
var replacement = Coerced{
	BE:    Side{Text: string(rune(charset.ReplacementBE)), Encodable: true},
	LE:    Side{Text: string(rune(charset.ReplacementLE)), Encodable: true},
	Error: true,
}

func coerce(g string, policy Policy) Coerced {
	if charset.HasUnsupported(g) {
		switch policy {
		case PolicyReplace:
			return replacement
		case PolicyIgnore:
			return Coerced{BE: Side{Encodable: true}, LE: Side{Encodable: true}}
		case PolicyError:
			return Coerced{}
		case PolicyPass:
			// fall through to normal encoding below
		}
	}

	candidates := normalizations(g)
	be := acceptSide(candidates, binary.BigEndian)
	le := acceptSide(candidates, binary.LittleEndian)
	if !be.Encodable && !le.Encodable {
		return replacement
	}
	return Coerced{BE: be, LE: le}
}

// normalizations returns the original grapheme plus its NFC, NFKC, NFD and
// NFKD forms, deduplicated (original first) and sorted by ascending UTF-16
// byte length with the original kept first among ties, so the shortest
// masquerade wins but an equally-short original is preferred over a
// normalized form that happens to be just as long.
func normalizations(g string) []string {
	forms := []norm.Form{norm.NFC, norm.NFKC, norm.NFD, norm.NFKD}
	candidates := make([]string, 0, len(forms)+1)
	seen := make(map[string]struct{}, len(forms)+1)
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		candidates = append(candidates, s)
	}
	add(g)
	for _, f := range forms {
		add(f.String(g))
	}
	lens := make(map[string]int, len(candidates))
	for _, c := range candidates {
		lens[c] = len(ucs2.Encode([]rune(c)))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return lens[candidates[i]] < lens[candidates[j]]
	})
	return candidates
}

// acceptSide finds the first candidate, in ascending-length order, whose
// UTF-16-BE byte sequence reinterpreted under order contains no surrogate
// values, and returns it as a Side. A candidate whose reinterpreted length
// would not fit a page is rejected without trying the next candidate, per
// the source algorithm: if the shortest valid masquerade does not fit, none
// of the longer ones will either.
func acceptSide(candidates []string, order binary.ByteOrder) Side {
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		units := ucs2.Reinterpret(ucs2.Encode([]rune(cand)), order)
		if !ucs2.Valid(units) {
			continue
		}
		if len(units) >= charset.PageLen {
			return Side{}
		}
		return Side{Text: ucs2.RuneString(units), Encodable: true}
	}
	return Side{}
}
