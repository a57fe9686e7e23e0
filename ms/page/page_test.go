// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package page_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkeene-labs/smsmasque/encoding/masquerade"
	"github.com/rkeene-labs/smsmasque/ms/page"
)

func TestPlanEmpty(t *testing.T) {
	p := page.NewPlanner()
	out, err := p.Plan("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestPlanASCIIFixedPoint(t *testing.T) {
	p := page.NewPlanner()
	text := "the quick brown fox"
	out, err := p.Plan(text)
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestPlanCheckmarkSinglePage(t *testing.T) {
	p := page.NewPlanner()
	out, err := p.Plan("✔")
	require.NoError(t, err)
	assert.Equal(t, "✔", out)
}

func TestPlanAstralEmojiSinglePage(t *testing.T) {
	p := page.NewPlanner()
	out, loss, err := p.PlanWithLoss("💩")
	require.NoError(t, err)
	assert.Equal(t, 0, loss)
	assert.Equal(t, "￾㷘꧜", out)
}

func TestPlanBOMBEPrefixesItself(t *testing.T) {
	p := page.NewPlanner()
	out, err := p.Plan("﻿")
	require.NoError(t, err)
	assert.Equal(t, "﻿﻿", out)
}

func TestPlanBOMLEPrefixesWithBOMBE(t *testing.T) {
	p := page.NewPlanner()
	out, err := p.Plan("￾")
	require.NoError(t, err)
	assert.Equal(t, "﻿￾", out)
}

func TestPlanRepeatedBOMStaysBE(t *testing.T) {
	p := page.NewPlanner()
	out, err := p.Plan(strings.Repeat("﻿", 100))
	require.NoError(t, err)
	assert.Len(t, out, 102)
	for _, r := range out {
		assert.Equal(t, rune(0xFEFF), r)
	}
}

func TestPlanLongASCIIFillsPagesExactly(t *testing.T) {
	p := page.NewPlanner()
	text := strings.Repeat("a", 100)
	out, err := p.Plan(text)
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestPlanInvalidMaxPages(t *testing.T) {
	p := page.NewPlanner(page.WithMaxPages(0))
	_, err := p.Plan("hi")
	assert.ErrorIs(t, err, page.ErrInvalidMaxPages)
}

func TestPlanMonotoneLossWithMaxPages(t *testing.T) {
	text := strings.Repeat("a", 60) + strings.Repeat("💩", 20)
	_, loss1, err := page.NewPlanner(page.WithMaxPages(1)).PlanWithLoss(text)
	require.NoError(t, err)
	_, loss5, err := page.NewPlanner(page.WithMaxPages(5)).PlanWithLoss(text)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, loss1, loss5)
}

func TestPlanTruncationMultiplierIncreasesLoss(t *testing.T) {
	text := strings.Repeat("a", 60) + strings.Repeat("💩", 20)
	_, lossLow, err := page.NewPlanner(page.WithMaxPages(1), page.WithTruncatedTextErrorMultiplier(1)).PlanWithLoss(text)
	require.NoError(t, err)
	_, lossHigh, err := page.NewPlanner(page.WithMaxPages(1), page.WithTruncatedTextErrorMultiplier(10)).PlanWithLoss(text)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, lossHigh, lossLow)
}

func TestPlanTwoPageSplit(t *testing.T) {
	p := page.NewPlanner()
	text := strings.Repeat("a", 80) + "💩"
	out, err := p.Plan(text)
	require.NoError(t, err)
	assert.Greater(t, len([]rune(out)), 80)
	assert.True(t, strings.HasPrefix(out, strings.Repeat("a", 63)))
}

func TestPlanPolicyReplaceSubstitutesReplacementChar(t *testing.T) {
	p := page.NewPlanner()
	out, err := p.Plan("a‪b")
	require.NoError(t, err)
	assert.Equal(t, "a�b", out)
}

func TestPlanPolicyIgnoreDropsUnsupported(t *testing.T) {
	p := page.NewPlanner(page.WithPolicy(masquerade.PolicyIgnore))
	out, err := p.Plan("a‪b")
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}
