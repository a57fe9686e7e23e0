// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package page

import (
	"github.com/rkeene-labs/smsmasque/encoding/charset"
)

// state is one partial solution in the beam: cursor is the index of the
// next grapheme to emit, errs the accumulated error count, pages the
// completed (unpadded) pages emitted so far.
type state struct {
	cursor int
	errs   int
	pages  []string
}

// planBeam runs the bounded beam search of spec §4.3 over the coerced
// graphemes, returning the surviving states after at most maxPages
// iterations.
//
// A state whose cursor has already reached the end of the graphemes is
// carried through unchanged rather than re-extended: re-extending it would
// produce no candidates (there is nothing left to emit), which would drop
// it from the beam the next time every other state's error count happens
// not to coincide with its own. Keeping it verbatim means a finished
// low-error state is never lost to an unrelated pruning decision.
func planBeam(graphemesBE, graphemesLE []string, errorsBE, errorsLE []bool, maxPages int) []state {
	n := len(graphemesBE)
	states := []state{{0, 0, nil}}
	for iter := 0; iter < maxPages; iter++ {
		var newStates []state
		var active []state
		for _, st := range states {
			if st.cursor >= n {
				newStates = append(newStates, st)
				continue
			}
			active = append(active, st)
		}
		for _, st := range active {
			newStates = append(newStates, extendBE(st, graphemesBE, errorsBE)...)
			newStates = append(newStates, extendLE(st, graphemesLE, errorsLE)...)
		}
		states = prune(newStates)
		if allFinished(states, n) {
			break
		}
	}
	return states
}

// prune groups states by error count and keeps, for each count, only the
// one with the largest cursor: with equal errors, more progress is always
// better, while different error counts are kept side by side because more
// errors now may still be cheaper than a worse truncation later.
func prune(states []state) []state {
	best := make(map[int]state, len(states))
	for _, s := range states {
		cur, ok := best[s.errs]
		if !ok || s.cursor > cur.cursor {
			best[s.errs] = s
		}
	}
	out := make([]state, 0, len(best))
	for _, s := range best {
		out = append(out, s)
	}
	return out
}

func allFinished(states []state, n int) bool {
	if len(states) == 0 {
		return false
	}
	for _, s := range states {
		if s.cursor < n {
			return false
		}
	}
	return true
}

// extendBE generates every BE-page extension of st: one page boundary per
// encoding error encountered plus a final page boundary at capacity or end
// of text. The accumulating page buffer is not reset across error
// boundaries, so a single starting state can yield several candidate
// extensions of increasing length and error count.
func extendBE(st state, graphemesBE []string, errorsBE []bool) []state {
	var out []state
	page := make([]rune, 0, charset.PageLen)
	totalLen := 0
	errs := st.errs
	n := len(graphemesBE)

	flush := func(idx int) {
		if len(page) == 0 {
			return
		}
		if page[0] == charset.BOMBE || page[0] == charset.BOMLE {
			if len(page) == 1 {
				return
			}
		}
		out = append(out, state{idx, errs, appendPage(st.pages, string(page))})
	}

	for idx := st.cursor; idx < n; idx++ {
		if errorsBE[idx] {
			flush(idx)
			errs++
		}
		frag := []rune(graphemesBE[idx])
		if len(page) == 0 && len(frag) > 0 && (frag[0] == charset.BOMLE || frag[0] == charset.BOMBE) {
			page = append(page, rune(charset.BOMBE))
			page = append(page, frag...)
			totalLen += 1 + len(frag)
		} else {
			page = append(page, frag...)
			totalLen += len(frag)
		}
		if idx+1 >= n {
			flush(idx + 1)
			return out
		}
		if len([]rune(graphemesBE[idx+1]))+totalLen > charset.PageLen {
			flush(idx + 1)
			return out
		}
	}
	return out
}

// extendLE is extendBE's LE counterpart. The page buffer is seeded with the
// mandatory BOMLE, so the "starts with a BOM" guard extendBE needs is
// unconditionally true here and is folded into flush's lone-BOM check.
func extendLE(st state, graphemesLE []string, errorsLE []bool) []state {
	var out []state
	page := []rune{charset.BOMLE}
	totalLen := 1
	errs := st.errs
	n := len(graphemesLE)

	flush := func(idx int) {
		if len(page) <= 1 {
			return
		}
		out = append(out, state{idx, errs, appendPage(st.pages, string(page))})
	}

	for idx := st.cursor; idx < n; idx++ {
		if errorsLE[idx] {
			flush(idx)
			errs++
		}
		frag := []rune(graphemesLE[idx])
		page = append(page, frag...)
		totalLen += len(frag)
		if idx+1 >= n {
			flush(idx + 1)
			return out
		}
		if len([]rune(graphemesLE[idx+1]))+totalLen > charset.PageLen {
			flush(idx + 1)
			return out
		}
	}
	return out
}

func appendPage(pages []string, pg string) []string {
	out := make([]string, len(pages)+1)
	copy(out, pages)
	out[len(pages)] = pg
	return out
}

// candidate is a fully-formed solution considered at final selection:
// either a beam state's pages, or one of the two degenerate single-page
// candidates.
type candidate struct {
	loss  int
	pages []string
}

// selectBest picks the lexicographically minimal (loss, pageCount,
// lastPageLen) candidate among the beam's surviving states and the two
// single-page fallbacks.
func selectBest(states []state, totalGraphemes, multiplier int, spBE string, spBEErr int, spLE string, spLEErr int) candidate {
	candidates := make([]candidate, 0, len(states)+2)
	for _, st := range states {
		truncated := 0
		if totalGraphemes > st.cursor {
			truncated = (totalGraphemes - st.cursor) * multiplier
		}
		candidates = append(candidates, candidate{loss: st.errs + truncated, pages: st.pages})
	}
	candidates = append(candidates, candidate{loss: spBEErr, pages: []string{spBE}})
	candidates = append(candidates, candidate{loss: spLEErr, pages: []string{spLE}})

	best := candidates[0]
	for _, c := range candidates[1:] {
		if better(c, best) {
			best = c
		}
	}
	return best
}

func better(a, b candidate) bool {
	if a.loss != b.loss {
		return a.loss < b.loss
	}
	if len(a.pages) != len(b.pages) {
		return len(a.pages) < len(b.pages)
	}
	return lastPageLen(a.pages) < lastPageLen(b.pages)
}

func lastPageLen(pages []string) int {
	if len(pages) == 0 {
		return 0
	}
	return runeLen(pages[len(pages)-1])
}
