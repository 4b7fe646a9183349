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
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/lnsim/lnsim/logger"
	"github.com/lnsim/lnsim/prng"
	"github.com/lnsim/lnsim/radiomodel"
	"github.com/lnsim/lnsim/randvar"
	. "github.com/lnsim/lnsim/types"
)

// Simulation owns one configured loss model and drives evaluations of it.
type Simulation struct {
	cfg   *Config
	model radiomodel.LossModel
}

func NewSimulation(cfg *Config) (*Simulation, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	prng.Init(cfg.Seed, cfg.Run)
	cfg.Seed = prng.GetSeed()

	model, err := cfg.BuildModel()
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:   cfg,
		model: model,
	}
	logger.Debugf("simulation: seed=%d run=%d model=%s", cfg.Seed, cfg.Run, model.GetName())
	return s, nil
}

// BuildModel constructs the configured loss model and assigns its random streams.
func (cfg *Config) BuildModel() (radiomodel.LossModel, error) {
	var model radiomodel.LossModel
	p := cfg.Model.Params

	switch cfg.Model.Type {
	case radiomodel.LogNormalModelName:
		m, err := radiomodel.NewLogNormalShadowing(p)
		if err != nil {
			return nil, err
		}
		if len(cfg.Model.Variable) > 0 {
			v, err := randvar.Parse(cfg.Model.Variable)
			if err != nil {
				return nil, err
			}
			if err = m.SetShadowingVariable(v); err != nil {
				return nil, err
			}
		}
		model = m
	case radiomodel.LogDistanceModelName:
		m, err := radiomodel.NewLogDistance(p.Exponent, p.ReferenceDistance, p.ReferenceLoss)
		if err != nil {
			return nil, err
		}
		model = m
	case radiomodel.RandomModelName:
		var v randvar.Stream
		if len(cfg.Model.Variable) > 0 {
			var err error
			if v, err = randvar.Parse(cfg.Model.Variable); err != nil {
				return nil, err
			}
		}
		m, err := radiomodel.NewRandomLoss(v)
		if err != nil {
			return nil, err
		}
		model = m
	default:
		return nil, errors.Wrapf(radiomodel.ErrInvalidConfiguration, "unknown model type '%s'", cfg.Model.Type)
	}

	stream := randvar.AutoStream
	if cfg.Model.Stream != nil {
		stream = *cfg.Model.Stream
	}
	model.AssignStreams(stream)
	return model, nil
}

func (s *Simulation) Model() radiomodel.LossModel {
	return s.model
}

func (s *Simulation) GetConfig() *Config {
	return s.cfg
}

func (s *Simulation) Evaluate(txPowerDbm DbValue, a, b Vector) DbValue {
	return s.model.Evaluate(txPowerDbm, a, b)
}

// AssignStreams rebinds the model to streams starting at stream and returns the number used.
func (s *Simulation) AssignStreams(stream int64) int64 {
	if stream >= 0 {
		s.cfg.Model.Stream = &stream
	} else {
		s.cfg.Model.Stream = nil
	}
	n := s.model.AssignStreams(stream)
	logger.Debugf("simulation: model %s assigned %d stream(s) from %d", s.model.GetName(), n, stream)
	return n
}

// SetSeed re-initializes the root seed and restarts all model streams under it.
func (s *Simulation) SetSeed(seed int64, run uint64) {
	prng.Init(seed, run)
	s.cfg.Seed = prng.GetSeed()
	s.cfg.Run = run
	s.reassignStreams()
	logger.Debugf("simulation: seed=%d run=%d", s.cfg.Seed, s.cfg.Run)
}

// SetModelType replaces the model with a new one of the given type, built from the current parameters.
func (s *Simulation) SetModelType(name string) error {
	cfg := *s.cfg
	cfg.Model.Type = name
	if name != s.cfg.Model.Type {
		cfg.Model.Variable = ""
	}
	model, err := cfg.BuildModel()
	if err != nil {
		return err
	}
	*s.cfg = cfg
	s.model = model
	logger.Debugf("simulation: model set to %s", model.GetName())
	return nil
}

func (s *Simulation) SetExponent(n float64) error {
	var err error
	switch m := s.model.(type) {
	case *radiomodel.LogNormalShadowing:
		err = m.SetPathLossExponent(n)
	case *radiomodel.LogDistance:
		err = m.SetPathLossExponent(n)
	default:
		return errors.Errorf("model %s has no path loss exponent", s.model.GetName())
	}
	if err != nil {
		return err
	}
	s.cfg.Model.Params.Exponent = n
	return nil
}

func (s *Simulation) SetReference(distance float64, loss DbValue) error {
	var err error
	switch m := s.model.(type) {
	case *radiomodel.LogNormalShadowing:
		err = m.SetReference(distance, loss)
	case *radiomodel.LogDistance:
		err = m.SetReference(distance, loss)
	default:
		return errors.Errorf("model %s has no reference point", s.model.GetName())
	}
	if err != nil {
		return err
	}
	s.cfg.Model.Params.ReferenceDistance = distance
	s.cfg.Model.Params.ReferenceLoss = loss
	return nil
}

func (s *Simulation) SetShadowing(mean DbValue, variance float64) error {
	m, ok := s.model.(*radiomodel.LogNormalShadowing)
	if !ok {
		return errors.Errorf("model %s has no shadowing", s.model.GetName())
	}
	if err := m.SetShadowing(mean, variance); err != nil {
		return err
	}
	s.cfg.Model.Params.ShadowingMean = mean
	s.cfg.Model.Params.ShadowingVariance = variance
	if len(s.cfg.Model.Variable) > 0 {
		s.cfg.Model.Variable = m.GetShadowingVariable().String()
	}
	return nil
}

// SetVariable replaces the random variable of the model with one parsed from spec.
// The new variable continues on the model's configured stream.
func (s *Simulation) SetVariable(spec string) error {
	v, err := randvar.Parse(spec)
	if err != nil {
		return err
	}
	switch m := s.model.(type) {
	case *radiomodel.LogNormalShadowing:
		err = m.SetShadowingVariable(v)
	case *radiomodel.RandomLoss:
		err = m.SetVariable(v)
	default:
		return errors.Errorf("model %s has no random variable", s.model.GetName())
	}
	if err != nil {
		return err
	}
	s.cfg.Model.Variable = v.String()
	s.reassignStreams()
	return nil
}

func (s *Simulation) reassignStreams() {
	stream := randvar.AutoStream
	if s.cfg.Model.Stream != nil {
		stream = *s.cfg.Model.Stream
	}
	s.model.AssignStreams(stream)
}

// Sweep evaluates the model sweep.Samples times at each distance from sweep.Start to sweep.Stop.
// Endpoint A is at the origin, endpoint B on the positive x axis.
func (s *Simulation) Sweep(ctx context.Context, sweep SweepConfig, sink SampleSink) error {
	if err := sweep.Validate(); err != nil {
		return err
	}
	origin := NewVector(0, 0, 0)
	steps := sweep.NumDistances()
	logger.Debugf("simulation: sweep %d distance(s) x %d sample(s), tx=%g dBm", steps, sweep.Samples, sweep.TxPowerDbm)

	for i := 0; i < steps; i++ {
		dist := sweep.Start + float64(i)*sweep.Step
		b := NewVector(dist, 0, 0)
		for j := 0; j < sweep.Samples; j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			sample := Sample{
				Distance:   dist,
				TxPowerDbm: sweep.TxPowerDbm,
				RxPowerDbm: s.model.Evaluate(sweep.TxPowerDbm, origin, b),
			}
			if err := sink(sample); err != nil {
				return err
			}
		}
	}
	return nil
}

func (sc SweepConfig) Validate() error {
	switch {
	case !(sc.Step > 0) || math.IsInf(sc.Step, 0):
		return errors.Wrapf(ErrInvalidSweep, "step must be positive (%g)", sc.Step)
	case sc.Samples <= 0:
		return errors.Wrapf(ErrInvalidSweep, "samples must be positive (%d)", sc.Samples)
	case !(sc.Start >= 0) || math.IsInf(sc.Start, 0):
		return errors.Wrapf(ErrInvalidSweep, "start must be non-negative (%g)", sc.Start)
	case !(sc.Stop >= sc.Start) || math.IsInf(sc.Stop, 0):
		return errors.Wrapf(ErrInvalidSweep, "stop (%g) must not be below start (%g)", sc.Stop, sc.Start)
	case math.IsNaN(sc.TxPowerDbm) || math.IsInf(sc.TxPowerDbm, 0):
		return errors.Wrapf(ErrInvalidSweep, "tx power must be finite (%g)", sc.TxPowerDbm)
	}
	return nil
}

// NumDistances returns the number of distances visited, including both Start and Stop when Stop is on the grid.
func (sc SweepConfig) NumDistances() int {
	const eps = 1e-9
	return int(math.Floor((sc.Stop-sc.Start)/sc.Step+eps)) + 1
}
