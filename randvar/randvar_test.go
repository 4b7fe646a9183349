// Copyright (c) 2024, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package randvar

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"

	"github.com/lnsim/lnsim/prng"
)

func sample(s Stream, n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = s.GetValue()
	}
	return res
}

func TestNormalMoments(t *testing.T) {
	prng.Init(3, 1)
	n, err := NewNormal(-2.0, 4.0)
	assert.Nil(t, err)
	n.SetStream(1)

	mean, variance := stat.MeanVariance(sample(n, 20000), nil)
	assert.InDelta(t, -2.0, mean, 0.1)
	assert.InDelta(t, 4.0, variance, 0.2)
}

func TestNormalZeroVariance(t *testing.T) {
	n, err := NewNormal(1.5, 0)
	assert.Nil(t, err)
	for _, v := range sample(n, 100) {
		assert.Equal(t, 1.5, v)
	}
}

func TestNormalBound(t *testing.T) {
	prng.Init(3, 1)
	n, err := NewBoundedNormal(0, 100, 1.0)
	assert.Nil(t, err)
	for _, v := range sample(n, 1000) {
		assert.True(t, math.Abs(v) <= 1.0)
	}
}

func TestNormalInvalid(t *testing.T) {
	_, err := NewNormal(0, -1)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewNormal(math.NaN(), 1)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewBoundedNormal(0, 1, 0)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	n, _ := NewNormal(1, 2)
	assert.NotNil(t, n.SetParams(0, math.Inf(1), DefaultNormalBound))
	assert.Equal(t, 1.0, n.Mean())
	assert.Equal(t, 2.0, n.Variance())
}

func TestStreamReplay(t *testing.T) {
	prng.Init(3, 1)
	n1, _ := NewNormal(0, 1)
	n2, _ := NewNormal(0, 1)
	n1.SetStream(5)
	n2.SetStream(5)
	assert.Equal(t, sample(n1, 50), sample(n2, 50))

	// rebinding restarts the sequence
	first := sample(n1, 10)
	n1.SetStream(5)
	n2.SetStream(5)
	assert.Equal(t, sample(n2, 10), sample(n1, 10))
	assert.NotEqual(t, first, sample(n2, 10))
}

func TestAutoStream(t *testing.T) {
	prng.Init(3, 1)
	n, _ := NewNormal(0, 1)
	assert.Equal(t, AutoStream, n.GetStream())
	n.GetValue()
	assert.Equal(t, prng.AutoStreamBase, n.GetStream())

	n.SetStream(AutoStream)
	assert.Equal(t, prng.AutoStreamBase+1, n.GetStream())

	n.SetStream(12)
	assert.Equal(t, int64(12), n.GetStream())
}

func TestUniform(t *testing.T) {
	prng.Init(3, 1)
	u, err := NewUniform(20, 100)
	assert.Nil(t, err)
	samples := sample(u, 10000)
	for _, v := range samples {
		assert.True(t, v >= 20 && v < 100)
	}
	assert.InDelta(t, 60.0, stat.Mean(samples, nil), 1.0)

	_, err = NewUniform(2, 1)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestConstant(t *testing.T) {
	c := NewConstant(42)
	c.SetStream(3)
	assert.Equal(t, 42.0, c.GetValue())
	assert.Equal(t, int64(3), c.GetStream())
}
