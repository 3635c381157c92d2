/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package size provides a byte-count type with binary-unit constants, used
// throughout ioutils to size buffers without scattering raw magic numbers.
package size

import (
	"fmt"
	"math"
	"strconv"
)

// Size counts a number of bytes. Arithmetic saturates at math.MaxUint64
// instead of wrapping.
type Size uint64

const (
	SizeNul  Size = 0
	SizeUnit Size = 1
	SizeKilo Size = SizeUnit << 10
	SizeMega Size = SizeKilo << 10
	SizeGiga Size = SizeMega << 10
	SizeTera Size = SizeGiga << 10

	// KiB, MiB and GiB are the short aliases call sites reach for most.
	KiB = SizeKilo
	MiB = SizeMega
	GiB = SizeGiga
)

// Int returns the Size as an int, saturating at math.MaxInt.
func (s Size) Int() int {
	if uint64(s) > math.MaxInt {
		return math.MaxInt
	}
	return int(s)
}

// Int64 returns the Size as an int64, saturating at math.MaxInt64.
func (s Size) Int64() int64 {
	if uint64(s) > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(s)
}

// Uint64 returns the Size as a uint64.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// String renders the raw byte count.
func (s Size) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Code renders a human-readable "<value><unit>" string, picking the
// largest binary unit the value divides into cleanly (e.g. "4KiB"). sep,
// if non-zero, is inserted between the value and the unit.
func (s Size) Code(sep byte) string {
	units := []struct {
		sz   Size
		name string
	}{
		{SizeTera, "TiB"},
		{SizeGiga, "GiB"},
		{SizeMega, "MiB"},
		{SizeKilo, "KiB"},
	}

	for _, u := range units {
		if s >= u.sz && s%u.sz == 0 {
			if sep == 0 {
				return fmt.Sprintf("%d%s", uint64(s/u.sz), u.name)
			}
			return fmt.Sprintf("%d%c%s", uint64(s/u.sz), sep, u.name)
		}
	}

	if sep == 0 {
		return fmt.Sprintf("%dB", uint64(s))
	}
	return fmt.Sprintf("%d%cB", uint64(s), sep)
}

// Mul multiplies the Size in place by f, rounding up and saturating on
// overflow.
func (s *Size) Mul(f float64) {
	_ = s.MulErr(f)
}

// MulErr is Mul but reports an error instead of silently saturating.
func (s *Size) MulErr(f float64) error {
	if f <= 0 {
		*s = SizeNul
		return nil
	}

	r := math.Ceil(float64(*s) * f)
	if r >= math.MaxUint64 {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size: multiplication overflow")
	}
	*s = Size(r)
	return nil
}

// Div divides the Size in place by f, saturating at zero when f <= 0.
func (s *Size) Div(f float64) {
	_ = s.DivErr(f)
}

// DivErr is Div but reports an error on a non-positive divisor.
func (s *Size) DivErr(f float64) error {
	if f <= 0 {
		*s = SizeNul
		return fmt.Errorf("size: division by non-positive value")
	}
	*s = Size(float64(*s) / f)
	return nil
}
