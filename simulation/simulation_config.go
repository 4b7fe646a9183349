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

package simulation

import (
	"github.com/lnsim/lnsim/radiomodel"
	. "github.com/lnsim/lnsim/types"
)

const (
	DefaultSeed       int64   = 1
	DefaultRun        uint64  = 1
	DefaultModel              = radiomodel.LogNormalModelName
	DefaultTxPowerDbm DbValue = 15.0
)

type Config struct {
	Seed  int64
	Run   uint64
	Model ModelConfig
	Sweep SweepConfig
}

// ModelConfig selects and parameterizes the propagation loss model.
type ModelConfig struct {
	Type     string
	Params   radiomodel.LogNormalParams // Exponent and reference also apply to the log-distance model
	Variable string                     // random variable for the random model, or shadowing variable override
	Stream   *int64                     // first stream to assign; automatic streams if nil
}

// SweepConfig defines a series of evaluations at regularly spaced distances.
type SweepConfig struct {
	TxPowerDbm DbValue
	Start      float64 // first distance (m)
	Stop       float64 // last distance (m), inclusive
	Step       float64 // distance increment (m)
	Samples    int     // evaluations per distance
}

func DefaultConfig() *Config {
	return &Config{
		Seed: DefaultSeed,
		Run:  DefaultRun,
		Model: ModelConfig{
			Type:   DefaultModel,
			Params: radiomodel.DefaultLogNormalParams(),
		},
		Sweep: DefaultSweepConfig(),
	}
}

func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		TxPowerDbm: DefaultTxPowerDbm,
		Start:      50.0,
		Stop:       200.0,
		Step:       50.0,
		Samples:    1000,
	}
}
