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

package radiomodel

import (
	"github.com/pkg/errors"

	"github.com/lnsim/lnsim/randvar"
	. "github.com/lnsim/lnsim/types"
)

// RandomLoss is a distance-independent model: the loss (dB) is drawn from a random variable on every
// evaluation.
type RandomLoss struct {
	variable randvar.Stream
}

// NewRandomLoss creates a RandomLoss drawing from v; a nil v selects a constant 1 dB loss.
func NewRandomLoss(v randvar.Stream) (*RandomLoss, error) {
	if v == nil {
		v = randvar.NewConstant(1.0)
	}
	return &RandomLoss{variable: v}, nil
}

func (m *RandomLoss) Evaluate(txPowerDbm DbValue, a, b Vector) DbValue {
	return txPowerDbm - m.variable.GetValue()
}

func (m *RandomLoss) AssignStreams(stream int64) int64 {
	m.variable.SetStream(stream)
	return 1
}

func (m *RandomLoss) GetName() string {
	return RandomModelName
}

func (m *RandomLoss) GetVariable() randvar.Stream {
	return m.variable
}

func (m *RandomLoss) SetVariable(v randvar.Stream) error {
	if v == nil {
		return errors.Wrapf(ErrInvalidConfiguration, "random loss variable is nil")
	}
	m.variable = v
	return nil
}
