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
	"strconv"

	"github.com/pkg/errors"
)

// Uniform is a random variable uniformly distributed in [Min, Max).
type Uniform struct {
	streamBinding
	min, max float64
}

func NewUniform(min, max float64) (*Uniform, error) {
	u := &Uniform{}
	if err := u.SetParams(min, max); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *Uniform) SetParams(min, max float64) error {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return errors.Wrapf(ErrInvalidParameter, "uniform range [%v, %v)", min, max)
	}
	if min > max {
		return errors.Wrapf(ErrInvalidParameter, "uniform min %v > max %v", min, max)
	}
	u.min, u.max = min, max
	return nil
}

func (u *Uniform) Min() float64 {
	return u.min
}

func (u *Uniform) Max() float64 {
	return u.max
}

func (u *Uniform) GetValue() float64 {
	return u.min + u.generator().Float64()*(u.max-u.min)
}

func (u *Uniform) String() string {
	return fmt.Sprintf("Uniform[Min=%s|Max=%s]", formatFloat(u.min), formatFloat(u.max))
}

// Constant always returns the same value. It still can be bound to a stream, but draws nothing from it.
type Constant struct {
	streamBinding
	value float64
}

func NewConstant(value float64) *Constant {
	return &Constant{value: value}
}

func (c *Constant) GetValue() float64 {
	return c.value
}

func (c *Constant) String() string {
	return fmt.Sprintf("Constant[Constant=%s]", formatFloat(c.value))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
