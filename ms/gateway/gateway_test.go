// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package gateway_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkeene-labs/smsmasque/ms/gateway"
)

func TestDeliverRejectsEmpty(t *testing.T) {
	_, err := gateway.Deliver(url.QueryEscape(""))
	assert.ErrorIs(t, err, gateway.ErrEmptyMessage)
}

func TestDeliverRejectsNUL(t *testing.T) {
	_, err := gateway.Deliver(url.QueryEscape("a\x00b"))
	assert.ErrorIs(t, err, gateway.ErrNUL)
}

func TestDeliverSinglePage(t *testing.T) {
	pages, err := gateway.Deliver(url.QueryEscape("hello"))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "hello", gateway.Render(pages))
}

func TestDeliverReplacesAstral(t *testing.T) {
	pages, err := gateway.Deliver(url.QueryEscape("💩"))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "�", gateway.Render(pages))
}

func TestDeliverPaginatesLongMessage(t *testing.T) {
	text := strings.Repeat("a", 100)
	pages, err := gateway.Deliver(url.QueryEscape(text))
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, text, gateway.Render(pages))
}

func TestDeliverBOMAwarePaging(t *testing.T) {
	text := "﻿" + strings.Repeat("a", 99)
	withoutOpt, err := gateway.Deliver(url.QueryEscape(text))
	require.NoError(t, err)
	withOpt, err := gateway.Deliver(url.QueryEscape(text), gateway.WithBOMAwarePaging())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(withOpt[0]), len(withoutOpt[0]))
}

func TestRenderRStripsPadding(t *testing.T) {
	text := strings.Repeat("a", 63) + "bcdef"
	pages, err := gateway.Deliver(url.QueryEscape(text))
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, text, gateway.Render(pages))

	raw := gateway.Render(pages, gateway.WithoutRStrip())
	assert.True(t, strings.HasPrefix(raw, text))
}
