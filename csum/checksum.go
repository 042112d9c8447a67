// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package csum implements a running content checksum used to fingerprint
// model entities. The same accumulator serves attribute deduplication and
// whole-model comparison.
package csum

import (
	"encoding/binary"
	"hash/crc32"
	"math"
)

// CheckSum accumulates integers, floats and strings into a 32-bit digest.
// When Precision > 0, float values are rounded to that many significant
// digits before folding, so that representation noise below the precision
// (e.g. from unit conversions) does not change the digest.
type CheckSum struct {
	Precision int // number of significant digits; 0 means exact folding

	crc uint32
	buf [8]byte
}

// New returns a new checksum accumulator
func New(precision int) *CheckSum {
	return &CheckSum{Precision: precision}
}

// Reset restarts the accumulation, keeping the precision
func (o *CheckSum) Reset() {
	o.crc = 0
}

// AddInt folds one integer
func (o *CheckSum) AddInt(v int) {
	binary.LittleEndian.PutUint64(o.buf[:], uint64(int64(v)))
	o.crc = crc32.Update(o.crc, crc32.IEEETable, o.buf[:])
}

// AddInts folds a sequence of integers
func (o *CheckSum) AddInts(vals []int) {
	for _, v := range vals {
		o.AddInt(v)
	}
}

// AddFloat folds one float, rounded to Precision significant digits if set
func (o *CheckSum) AddFloat(v float64) {
	binary.LittleEndian.PutUint64(o.buf[:], math.Float64bits(o.Round(v)))
	o.crc = crc32.Update(o.crc, crc32.IEEETable, o.buf[:])
}

// AddFloats folds a sequence of floats
func (o *CheckSum) AddFloats(vals []float64) {
	for _, v := range vals {
		o.AddFloat(v)
	}
}

// AddString folds a string
func (o *CheckSum) AddString(s string) {
	o.crc = crc32.Update(o.crc, crc32.IEEETable, []byte(s))
}

// Sum returns the current digest
func (o *CheckSum) Sum() uint32 {
	return o.crc
}

// Round rounds v to Precision significant digits. With Precision == 0 (or
// non-finite v) the value is returned unchanged.
func (o *CheckSum) Round(v float64) float64 {
	if o.Precision <= 0 || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	exp := math.Floor(math.Log10(math.Abs(v)))
	scale := math.Pow(10, float64(o.Precision-1)-exp)
	return math.Round(v*scale) / scale
}
