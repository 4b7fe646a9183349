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

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/lnsim/lnsim/simulation"
)

var testYamlFile = `
rng:
    seed: 3
model:
    type: random
    variable: "ns3::UniformRandomVariable[Min=20|Max=100]"
sweep:
    samples: 10
`

func TestYamlConfigUnmarshall(t *testing.T) {
	cfgFile := simulation.YamlConfigFile{}
	err := yaml.Unmarshal([]byte(testYamlFile), &cfgFile)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), *cfgFile.RngConfig.Seed)
	assert.Nil(t, cfgFile.RngConfig.Run)
	assert.Equal(t, "random", cfgFile.ModelConfig.Type)
	assert.Equal(t, "ns3::UniformRandomVariable[Min=20|Max=100]", *cfgFile.ModelConfig.Variable)
	assert.Nil(t, cfgFile.ModelConfig.Stream)
	assert.Equal(t, 10, *cfgFile.SweepConfig.Samples)
}

func TestOutputItemsAsYaml(t *testing.T) {
	rt := newTestRunner(t)
	output := runCommand(t, rt, "sweep 10 10 1 samples 1")
	var samples []simulation.Sample
	assert.Nil(t, yaml.Unmarshal([]byte(output[:len(output)-len("Done\n")]), &samples))
	assert.Equal(t, 1, len(samples))
	assert.Equal(t, 10.0, samples[0].Distance)
	assert.Equal(t, simulation.DefaultTxPowerDbm, samples[0].TxPowerDbm)
}
