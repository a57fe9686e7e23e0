// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package page

import (
	"strings"

	"github.com/rkeene-labs/smsmasque/encoding/charset"
)

// assemble right-pads every non-final page to exactly PageLen units with
// its own BOM, leaves the final page untouched, and concatenates.
func assemble(pages []string) string {
	if len(pages) == 0 {
		return ""
	}
	var b strings.Builder
	for i, pg := range pages {
		if i == len(pages)-1 {
			b.WriteString(pg)
			continue
		}
		b.WriteString(pad(pg))
	}
	return b.String()
}

func pad(pg string) string {
	bom := charset.BOMBE
	if r, ok := firstRune(pg); ok && r == charset.BOMLE {
		bom = charset.BOMLE
	}
	n := charset.PageLen - runeLen(pg)
	if n <= 0 {
		return pg
	}
	return pg + strings.Repeat(string(bom), n)
}
