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
	"github.com/pkg/errors"

	. "github.com/lnsim/lnsim/types"
)

var (
	ErrInvalidSweep = errors.New("invalid sweep configuration")
)

// Sample is the outcome of a single model evaluation.
type Sample struct {
	Distance   float64 `yaml:"distance"`
	TxPowerDbm DbValue `yaml:"tx"`
	RxPowerDbm DbValue `yaml:"rx"`
}

// SampleSink consumes samples in the order they were produced. Returning an error stops the sweep.
type SampleSink func(sample Sample) error

// YamlConfigFile is the structure of a YAML experiment file.
type YamlConfigFile struct {
	RngConfig   YamlRngConfig   `yaml:"rng"`
	ModelConfig YamlModelConfig `yaml:"model"`
	SweepConfig YamlSweepConfig `yaml:"sweep"`
}

type YamlRngConfig struct {
	Seed *int64  `yaml:"seed,omitempty"`
	Run  *uint64 `yaml:"run,omitempty"`
}

type YamlModelConfig struct {
	Type              string   `yaml:"type,omitempty"`
	Exponent          *float64 `yaml:"exponent,omitempty"`
	ReferenceDistance *float64 `yaml:"reference-distance,omitempty"`
	ReferenceLoss     *float64 `yaml:"reference-loss,omitempty"`
	ShadowingMean     *float64 `yaml:"shadowing-mean,omitempty"`
	ShadowingVariance *float64 `yaml:"shadowing-variance,omitempty"`
	Variable          *string  `yaml:"variable,omitempty"`
	Stream            *int64   `yaml:"stream,omitempty"`
}

type YamlSweepConfig struct {
	TxPower *float64 `yaml:"tx-power,omitempty"`
	Start   *float64 `yaml:"start,omitempty"`
	Stop    *float64 `yaml:"stop,omitempty"`
	Step    *float64 `yaml:"step,omitempty"`
	Samples *int     `yaml:"samples,omitempty"`
}
