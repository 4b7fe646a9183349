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
	"strings"
	"sync"

	. "github.com/lnsim/lnsim/types"
)

// Chain applies a sequence of models: the received power of each model is the transmit power of the next.
type Chain struct {
	models []LossModel
}

func NewChain(models ...LossModel) *Chain {
	return &Chain{models: models}
}

func (c *Chain) Add(model LossModel) {
	c.models = append(c.models, model)
}

func (c *Chain) Models() []LossModel {
	return c.models
}

func (c *Chain) Evaluate(txPowerDbm DbValue, a, b Vector) DbValue {
	p := txPowerDbm
	for _, m := range c.models {
		p = m.Evaluate(p, a, b)
	}
	return p
}

// AssignStreams gives each model of the chain its own contiguous range of streams, in chain order.
func (c *Chain) AssignStreams(stream int64) int64 {
	var total int64
	for _, m := range c.models {
		if stream < 0 {
			total += m.AssignStreams(stream)
		} else {
			total += m.AssignStreams(stream + total)
		}
	}
	return total
}

func (c *Chain) GetName() string {
	names := make([]string, len(c.models))
	for i, m := range c.models {
		names[i] = m.GetName()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// Synchronized wraps a model such that it can be evaluated from multiple goroutines. Draw order between
// concurrent callers is then undefined, so sequences are only reproducible per caller if callers are ordered.
type Synchronized struct {
	mutex sync.Mutex
	model LossModel
}

func NewSynchronized(model LossModel) *Synchronized {
	return &Synchronized{model: model}
}

func (s *Synchronized) Evaluate(txPowerDbm DbValue, a, b Vector) DbValue {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.model.Evaluate(txPowerDbm, a, b)
}

func (s *Synchronized) AssignStreams(stream int64) int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.model.AssignStreams(stream)
}

func (s *Synchronized) GetName() string {
	return s.model.GetName()
}

// Configure runs f on the wrapped model while holding the lock.
func (s *Synchronized) Configure(f func(model LossModel) error) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return f(s.model)
}
