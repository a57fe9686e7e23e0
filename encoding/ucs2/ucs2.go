// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package ucs2 provides conversions between UCS-2/UTF-16 code units and
// Unicode scalar values, plus the raw 16-bit reinterpretation primitives the
// masquerade codec uses to byte-swap a UTF-16 encoding into a different,
// still UTF-8-transportable, sequence of codepoints.
package ucs2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"
)

// Decode converts a big-endian UTF-16 byte stream into runes, pairing
// surrogates as required by UTF-16. This is what a phone does when it
// receives a page with no BOM, or a BOMBE-prefixed page.
//
// As the bytes are packed pairs, the length of src must be even.
func Decode(src []byte) ([]rune, error) {
	return DecodeOrder(src, binary.BigEndian)
}

// DecodeOrder is Decode generalised over byte order, so the same surrogate
// pairing logic serves both UTF-16-BE and UTF-16-LE pages.
func DecodeOrder(src []byte, order binary.ByteOrder) ([]rune, error) {
	if len(src) == 0 {
		return nil, nil
	}
	if len(src)&0x01 == 0x01 {
		return nil, ErrInvalidLength
	}
	l := len(src) / 2
	dst := make([]rune, 0, l)
	for ri := 0; ri < len(src)-1; ri = ri + 2 {
		r := rune(order.Uint16(src[ri:]))
		if utf16.IsSurrogate(r) {
			if ri >= len(src)-3 {
				return dst, ErrDanglingSurrogate(src[ri:])
			}
			ri += 2
			r2 := rune(order.Uint16(src[ri:]))
			r = utf16.DecodeRune(r, r2)
		}
		dst = append(dst, r)
	}
	return dst, nil
}

// Encode converts runes into their UTF-16-BE byte representation, encoding
// any rune above U+FFFF as a surrogate pair.
func Encode(src []rune) []byte {
	if len(src) == 0 {
		return nil
	}
	u := utf16.Encode(src)
	dst := make([]byte, len(u)*2)
	wi := 0
	for _, r := range u {
		binary.BigEndian.PutUint16(dst[wi:], uint16(r))
		wi += 2
	}
	return dst
}

// Reinterpret slices a byte sequence into 16-bit code units under the given
// byte order, without attempting to pair surrogates. This is the masquerade
// primitive: a UTF-16-BE byte sequence reinterpreted under LittleEndian
// byte-swaps every code unit, which can turn an unpaired-surrogate-producing
// sequence into one that contains no surrogate values at all.
//
// If src has odd length, the trailing byte is dropped.
func Reinterpret(src []byte, order binary.ByteOrder) []uint16 {
	if len(src) == 0 {
		return nil
	}
	n := len(src) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = order.Uint16(src[i*2:])
	}
	return units
}

// Valid reports whether every code unit is a valid Unicode scalar value on
// its own, i.e. none of them falls in the surrogate range. A masquerade
// candidate containing a surrogate value cannot be carried by a strict UTF-8
// gateway.
func Valid(units []uint16) bool {
	for _, u := range units {
		if u >= 0xD800 && u <= 0xDFFF {
			return false
		}
	}
	return true
}

// RuneString converts a slice of already-Valid code units directly into a
// string, one rune per unit. The caller must have checked Valid first;
// RuneString does not itself reject surrogate values.
func RuneString(units []uint16) string {
	if len(units) == 0 {
		return ""
	}
	runes := make([]rune, len(units))
	for i, u := range units {
		runes[i] = rune(u)
	}
	return string(runes)
}

// ErrDanglingSurrogate indicates only half of a surrogate pair is provided at
// the end of the byte array being decoded.
type ErrDanglingSurrogate []byte

func (e ErrDanglingSurrogate) Error() string {
	return fmt.Sprintf("ucs2: dangling surrogate: %#v", []byte(e))
}

// ErrInvalidLength indicates the binary provided has an invalid (odd) length.
var ErrInvalidLength = errors.New("ucs2: length must be even")
