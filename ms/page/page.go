// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package page implements the single-page fast path and multi-page beam
// search that turn a sequence of coerced graphemes into a page-structured
// message: an ordered list of BE/LE pages, padded and concatenated into the
// final output string.
package page

import (
	"errors"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/rkeene-labs/smsmasque/encoding/charset"
	"github.com/rkeene-labs/smsmasque/encoding/masquerade"
)

// ErrInvalidMaxPages is returned when MaxPages < 1. This is a precondition
// violation: it is checked before any work is done.
var ErrInvalidMaxPages = errors.New("page: max pages must be at least 1")

// Planner turns text into a page-structured masquerade message.
//
// The zero value is not usable; construct with NewPlanner.
type Planner struct {
	coercer    *masquerade.Coercer
	maxPages   int
	multiplier int
	policy     masquerade.Policy
}

// Option configures a Planner at construction time.
type Option func(*Planner)

// WithCoercer supplies a pre-existing, possibly already-warmed, Coercer
// instead of letting NewPlanner create one. Useful when many Planners
// should share one memo.
func WithCoercer(c *masquerade.Coercer) Option {
	return func(p *Planner) { p.coercer = c }
}

// WithMaxPages bounds the number of pages the beam search may emit.
func WithMaxPages(n int) Option {
	return func(p *Planner) { p.maxPages = n }
}

// WithTruncatedTextErrorMultiplier weights truncated-grapheme loss relative
// to a single encoding-error unit.
func WithTruncatedTextErrorMultiplier(m int) Option {
	return func(p *Planner) { p.multiplier = m }
}

// WithPolicy sets the unsupported-codepoint handling policy forwarded to
// the grapheme coercer.
func WithPolicy(policy masquerade.Policy) Option {
	return func(p *Planner) { p.policy = policy }
}

// NewPlanner creates a Planner with the package defaults (5 pages, a
// truncation multiplier of 1, and masquerade.PolicyReplace), as modified by
// options.
func NewPlanner(options ...Option) *Planner {
	p := &Planner{
		coercer:    masquerade.NewCoercer(),
		maxPages:   5,
		multiplier: 1,
		policy:     masquerade.PolicyReplace,
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Plan returns the assembled, page-padded message for text.
func (p *Planner) Plan(text string) (string, error) {
	out, _, err := p.plan(text)
	return out, err
}

// PlanWithLoss is Plan, additionally reporting the total loss (encoding
// errors plus weighted truncation) of the chosen plan. It exists so callers
// can verify the monotone-error property: increasing MaxPages never
// increases the reported loss.
func (p *Planner) PlanWithLoss(text string) (string, int, error) {
	return p.plan(text)
}

func (p *Planner) plan(text string) (string, int, error) {
	if p.maxPages < 1 {
		return "", 0, ErrInvalidMaxPages
	}
	graphemes := segment(text)
	if len(graphemes) == 0 {
		return "", 0, nil
	}

	graphemesBE := make([]string, len(graphemes))
	graphemesLE := make([]string, len(graphemes))
	errorsBE := make([]bool, len(graphemes))
	errorsLE := make([]bool, len(graphemes))
	for i, g := range graphemes {
		c := p.coercer.Coerce(g, p.policy)
		if c.BE.Encodable {
			graphemesBE[i] = c.BE.Text
		} else {
			errorsBE[i] = true
			graphemesBE[i] = string(rune(charset.ReplacementBE))
		}
		if c.LE.Encodable {
			graphemesLE[i] = c.LE.Text
		} else {
			errorsLE[i] = true
			graphemesLE[i] = string(rune(charset.ReplacementLE))
		}
	}

	spBE, spBEErr := planSingleBE(graphemesBE, errorsBE, p.multiplier)
	spLE, spLEErr := planSingleLE(graphemesLE, errorsLE, p.multiplier)

	if !any(errorsBE) && runeLen(spBE) <= charset.SinglePageLen {
		return spBE, 0, nil
	}
	if !any(errorsLE) && runeLen(spLE) <= charset.SinglePageLen {
		return spLE, 0, nil
	}

	candidates := planBeam(graphemesBE, graphemesLE, errorsBE, errorsLE, p.maxPages)

	best := selectBest(candidates, len(graphemes), p.multiplier, spBE, spBEErr, spLE, spLEErr)
	return assemble(best.pages), best.loss, nil
}

func segment(text string) []string {
	var graphemes []string
	state := -1
	remaining := text
	for len(remaining) > 0 {
		var cluster string
		cluster, remaining, _, state = uniseg.FirstGraphemeClusterInString(remaining, state)
		graphemes = append(graphemes, cluster)
	}
	return graphemes
}

func any(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}
