// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package smsmasque re-encodes unicode text so it survives a strict UTF-8
// gateway that forwards it to a UCS-2 handset: graphemes that can't be
// represented as plain UCS-2 are masqueraded as valid standalone UTF-16
// code units (no surrogate pairs), choosing whichever of big- or
// little-endian byte order makes each grapheme representable, and the
// result is split into pages sized the way the gateway splits them.
package smsmasque

import (
	"github.com/rkeene-labs/smsmasque/encoding/masquerade"
	"github.com/rkeene-labs/smsmasque/ms/page"
)

// Option configures a Coerce call. See page.WithMaxPages, page.WithPolicy,
// page.WithTruncatedTextErrorMultiplier and page.WithCoercer.
type Option = page.Option

// Policy selects how a grapheme containing an unsupported codepoint is
// handled.
type Policy = masquerade.Policy

// The supported policies. PolicyReplace substitutes the replacement
// character, PolicyIgnore drops the grapheme, PolicyError marks it
// unencodable in both byte orders, and PolicyPass forwards it unchanged
// (the caller's problem from then on).
const (
	PolicyReplace = masquerade.PolicyReplace
	PolicyIgnore  = masquerade.PolicyIgnore
	PolicyError   = masquerade.PolicyError
	PolicyPass    = masquerade.PolicyPass
)

// ParsePolicy parses one of "replace", "ignore", "error" or "pass".
func ParsePolicy(s string) (Policy, error) { return masquerade.ParsePolicy(s) }

// WithMaxPages bounds the number of pages the planner may emit.
func WithMaxPages(n int) Option { return page.WithMaxPages(n) }

// WithPolicy sets how graphemes containing an unsupported codepoint (NUL or
// a bidi control) are handled.
func WithPolicy(policy Policy) Option { return page.WithPolicy(policy) }

// WithTruncatedTextErrorMultiplier weights truncated-grapheme loss relative
// to a single encoding-error unit when the planner compares candidate
// plans.
func WithTruncatedTextErrorMultiplier(m int) Option {
	return page.WithTruncatedTextErrorMultiplier(m)
}

// Coerce masquerades text into a page-structured message ready to be
// percent-encoded and delivered through the gateway.
func Coerce(text string, options ...Option) (string, error) {
	p := page.NewPlanner(options...)
	return p.Plan(text)
}
