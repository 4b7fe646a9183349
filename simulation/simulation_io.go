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
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ParseConfig decodes a YAML experiment file. Entries not present keep their default values.
func ParseConfig(data []byte) (*Config, error) {
	var yc YamlConfigFile
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, errors.Wrapf(err, "parsing YAML config")
	}
	cfg := DefaultConfig()
	cfg.Import(yc)
	return cfg, nil
}

func LoadConfigFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file '%s'", filename)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "in '%s'", filename)
	}
	return cfg, nil
}

// Import overlays the entries present in yc onto cfg.
func (cfg *Config) Import(yc YamlConfigFile) {
	if yc.RngConfig.Seed != nil {
		cfg.Seed = *yc.RngConfig.Seed
	}
	if yc.RngConfig.Run != nil {
		cfg.Run = *yc.RngConfig.Run
	}

	ym := yc.ModelConfig
	if len(ym.Type) > 0 {
		cfg.Model.Type = ym.Type
	}
	setFloat(&cfg.Model.Params.Exponent, ym.Exponent)
	setFloat(&cfg.Model.Params.ReferenceDistance, ym.ReferenceDistance)
	setFloat(&cfg.Model.Params.ReferenceLoss, ym.ReferenceLoss)
	setFloat(&cfg.Model.Params.ShadowingMean, ym.ShadowingMean)
	setFloat(&cfg.Model.Params.ShadowingVariance, ym.ShadowingVariance)
	if ym.Variable != nil {
		cfg.Model.Variable = *ym.Variable
	}
	if ym.Stream != nil {
		stream := *ym.Stream
		cfg.Model.Stream = &stream
	}

	ys := yc.SweepConfig
	setFloat(&cfg.Sweep.TxPowerDbm, ys.TxPower)
	setFloat(&cfg.Sweep.Start, ys.Start)
	setFloat(&cfg.Sweep.Stop, ys.Stop)
	setFloat(&cfg.Sweep.Step, ys.Step)
	if ys.Samples != nil {
		cfg.Sweep.Samples = *ys.Samples
	}
}

// Export converts cfg to a YAML-friendly object.
func (cfg *Config) Export() YamlConfigFile {
	p := cfg.Model.Params
	seed, run := cfg.Seed, cfg.Run
	res := YamlConfigFile{
		RngConfig: YamlRngConfig{
			Seed: &seed,
			Run:  &run,
		},
		ModelConfig: YamlModelConfig{
			Type:              cfg.Model.Type,
			Exponent:          &p.Exponent,
			ReferenceDistance: &p.ReferenceDistance,
			ReferenceLoss:     &p.ReferenceLoss,
			ShadowingMean:     &p.ShadowingMean,
			ShadowingVariance: &p.ShadowingVariance,
		},
		SweepConfig: YamlSweepConfig{
			TxPower: floatPtr(cfg.Sweep.TxPowerDbm),
			Start:   floatPtr(cfg.Sweep.Start),
			Stop:    floatPtr(cfg.Sweep.Stop),
			Step:    floatPtr(cfg.Sweep.Step),
		},
	}
	samples := cfg.Sweep.Samples
	res.SweepConfig.Samples = &samples

	// variable and stream only if set
	if len(cfg.Model.Variable) > 0 {
		v := cfg.Model.Variable
		res.ModelConfig.Variable = &v
	}
	if cfg.Model.Stream != nil {
		stream := *cfg.Model.Stream
		res.ModelConfig.Stream = &stream
	}
	return res
}

// ExportConfig exports the active configuration of the simulation to a YAML-friendly object.
func (s *Simulation) ExportConfig() YamlConfigFile {
	return s.cfg.Export()
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
