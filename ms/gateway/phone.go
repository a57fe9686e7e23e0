// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package gateway

import (
	"encoding/binary"
	"strings"

	"github.com/rkeene-labs/smsmasque/encoding/charset"
	"github.com/rkeene-labs/smsmasque/encoding/ucs2"
)

// renderConfig holds Render options.
type renderConfig struct {
	noRStrip bool
}

// RenderOption configures Render's behaviour.
type RenderOption func(*renderConfig)

// WithoutRStrip disables stripping the trailing BOM padding each page
// accumulates, exposing the raw per-page decode.
func WithoutRStrip() RenderOption {
	return func(c *renderConfig) { c.noRStrip = true }
}

// Render models a handset reassembling the pages Deliver produced: each
// page is BOM-sniffed (a leading FE FF or FF FE marker selects BE or LE and
// is consumed; otherwise the page decodes as BE), decoded, and the pages
// are concatenated. By default the trailing BOM padding left on every
// non-final page is stripped from its decoded text, since a real handset's
// message view does not show it.
func Render(pages [][]byte, opts ...RenderOption) string {
	cfg := renderConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	var b strings.Builder
	for _, pg := range pages {
		var runes []rune
		switch {
		case hasPrefix(pg, beMarker):
			runes, _ = ucs2.Decode(pg[len(beMarker):])
		case hasPrefix(pg, leMarker):
			runes, _ = ucs2.DecodeOrder(pg[len(leMarker):], binary.LittleEndian)
		default:
			runes, _ = ucs2.Decode(pg)
		}
		text := string(runes)
		if !cfg.noRStrip {
			text = strings.TrimRight(text, string(rune(charset.BOMBE)))
		}
		b.WriteString(text)
	}
	return b.String()
}
