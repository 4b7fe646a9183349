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
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// DefaultNormalBound is the default bound of a Normal variable, large enough to not truncate the distribution.
const DefaultNormalBound = 1e307

// Normal is a normal (Gaussian) random variable. Samples further than Bound away from Mean are discarded and
// redrawn.
type Normal struct {
	streamBinding
	mean     float64
	variance float64
	bound    float64
}

func NewNormal(mean, variance float64) (*Normal, error) {
	return NewBoundedNormal(mean, variance, DefaultNormalBound)
}

func NewBoundedNormal(mean, variance, bound float64) (*Normal, error) {
	n := &Normal{}
	if err := n.SetParams(mean, variance, bound); err != nil {
		return nil, err
	}
	return n, nil
}

// SetParams changes the distribution; the stream position is kept.
func (n *Normal) SetParams(mean, variance, bound float64) error {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return errors.Wrapf(ErrInvalidParameter, "normal mean %v", mean)
	}
	if !(variance >= 0) || math.IsInf(variance, 0) {
		return errors.Wrapf(ErrInvalidParameter, "normal variance %v must be >= 0", variance)
	}
	if !(bound > 0) {
		return errors.Wrapf(ErrInvalidParameter, "normal bound %v must be > 0", bound)
	}
	n.mean, n.variance, n.bound = mean, variance, bound
	return nil
}

func (n *Normal) Mean() float64 {
	return n.mean
}

func (n *Normal) Variance() float64 {
	return n.variance
}

func (n *Normal) Bound() float64 {
	return n.bound
}

func (n *Normal) GetValue() float64 {
	rnd := n.generator()
	stddev := math.Sqrt(n.variance)
	for {
		v := n.mean + rnd.NormFloat64()*stddev
		if math.Abs(v-n.mean) <= n.bound {
			return v
		}
	}
}

func (n *Normal) String() string {
	s := fmt.Sprintf("Normal[Mean=%s|Variance=%s", formatFloat(n.mean), formatFloat(n.variance))
	if n.bound != DefaultNormalBound {
		s += "|Bound=" + formatFloat(n.bound)
	}
	return s + "]"
}
