// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package page

import (
	"strings"

	"github.com/rkeene-labs/smsmasque/encoding/charset"
)

// planSingleBE concatenates every grapheme's BE masquerade into a single
// candidate page, prefixing a BOMBE if the result would otherwise be
// mis-sniffed as an LE page (or confused by a leading BOMBE in the text
// itself), and computes the truncation-aware loss of fitting it in
// SinglePageLen units.
func planSingleBE(graphemesBE []string, errorsBE []bool, multiplier int) (string, int) {
	spBE := strings.Join(graphemesBE, "")
	if r, ok := firstRune(spBE); ok && (r == charset.BOMLE || r == charset.BOMBE) {
		spBE = string(rune(charset.BOMBE)) + spBE
	}

	messageLength := 0
	if strings.HasPrefix(spBE, string(rune(charset.BOMBE))+string(rune(charset.BOMLE))) {
		messageLength = 1
	}
	errs := 0
	for i, frag := range graphemesBE {
		fragLen := runeLen(frag)
		if messageLength+fragLen > charset.SinglePageLen {
			errs += fragLen * multiplier
			continue
		}
		messageLength += fragLen
		if errorsBE[i] {
			errs++
		}
	}
	return spBE, errs
}

// planSingleLE is planSingleBE's LE counterpart: the candidate is always
// prefixed with the mandatory BOMLE.
func planSingleLE(graphemesLE []string, errorsLE []bool, multiplier int) (string, int) {
	spLE := string(rune(charset.BOMLE)) + strings.Join(graphemesLE, "")

	messageLength := 1 // the BOMLE prefix
	errs := 0
	for i, frag := range graphemesLE {
		fragLen := runeLen(frag)
		if messageLength+fragLen > charset.SinglePageLen {
			errs += fragLen * multiplier
			continue
		}
		messageLength += fragLen
		if errorsLE[i] {
			errs++
		}
	}
	return spLE, errs
}
