// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package gateway is the reference model of the secondary collaborator
// described in spec §6: a strict legacy SMS gateway that accepts
// percent-encoded UTF-8, pages it, and re-encodes each page as raw
// UTF-16-BE, and the handset that receives those pages and decodes them as
// BOM-sniffed UTF-16. It exists to define and test the encoder's round-trip
// correctness; it is not used by the encoder itself.
package gateway

import (
	"bytes"
	"errors"
	"net/url"
	"strings"

	"github.com/rkeene-labs/smsmasque/encoding/charset"
	"github.com/rkeene-labs/smsmasque/encoding/ucs2"
)

// ErrEmptyMessage indicates the gateway was asked to send an empty message.
// Sending just a BOM is the supported way to convey "nothing".
var ErrEmptyMessage = errors.New("gateway: message must not be empty")

// ErrNUL indicates the message contains a NUL, which the real gateway fails
// to deliver.
var ErrNUL = errors.New("gateway: message must not contain NUL")

// config holds gateway options.
type config struct {
	bomAwarePaging bool
}

// Option configures Deliver's behaviour.
type Option func(*config)

// WithBOMAwarePaging selects the gateway variant observed to size a page at
// 67 codepoints, rather than 63, when the page begins with a BOM (the
// leading BOM is counted separately from the page body). Implementations
// must pick whichever variant matches the real target gateway; the
// encoder's own output is unaffected by the choice, since every non-final
// page it emits is already exactly 63 units and only ever begins with a BOM
// on LE pages.
func WithBOMAwarePaging() Option {
	return func(c *config) { c.bomAwarePaging = true }
}

// Deliver models the gateway's handling of one outgoing message: percent-
// decode as UTF-8 (malformed sequences become U+FFFD), reject empty
// messages and NUL, replace any codepoint above U+FFFF with U+FFFD, split
// into pages, and encode each page as raw UTF-16-BE.
func Deliver(percentEncoded string, opts ...Option) ([][]byte, error) {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}

	text, err := url.QueryUnescape(percentEncoded)
	if err != nil {
		text = percentEncoded
	}
	text = strings.ToValidUTF8(text, string(rune(charset.ReplacementBE)))

	if text == "" {
		return nil, ErrEmptyMessage
	}
	if strings.ContainsRune(text, 0) {
		return nil, ErrNUL
	}

	var b strings.Builder
	for _, r := range text {
		if r > 0xFFFF {
			b.WriteRune(charset.ReplacementBE)
			continue
		}
		b.WriteRune(r)
	}
	replaced := b.String()

	pages := paginate(replaced, cfg.bomAwarePaging)
	encoded := make([][]byte, len(pages))
	for i, pg := range pages {
		encoded[i] = ucs2.Encode([]rune(pg))
	}
	return encoded, nil
}

func paginate(s string, bomAware bool) []string {
	runes := []rune(s)
	if len(runes) <= charset.SinglePageLen {
		return []string{s}
	}
	var pages []string
	cursor := 0
	for cursor < len(runes) {
		size := charset.PageLen
		if bomAware && (runes[cursor] == charset.BOMBE || runes[cursor] == charset.BOMLE) {
			size = charset.PageLen + 4
		}
		end := cursor + size
		if end > len(runes) {
			end = len(runes)
		}
		pages = append(pages, string(runes[cursor:end]))
		cursor = end
	}
	return pages
}

// bomPrefix reports the two raw bytes a UTF-16-BE encoding of r would
// produce, for use identifying a page's leading BOM marker.
func bomPrefix(r rune) []byte {
	return ucs2.Encode([]rune{r})
}

var (
	beMarker = bomPrefix(charset.BOMBE)
	leMarker = bomPrefix(charset.BOMLE)
)

func hasPrefix(b, prefix []byte) bool {
	return bytes.HasPrefix(b, prefix)
}
