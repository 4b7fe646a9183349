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

	"github.com/lnsim/lnsim/logger"
	"github.com/lnsim/lnsim/randvar"
	. "github.com/lnsim/lnsim/types"
)

// LogNormalShadowing is the log-normal shadowing model: a log-distance path loss law anchored at a reference
// distance and loss, plus a normally distributed shadowing loss (dB) drawn anew on every evaluation.
//
// For a distance d <= ReferenceDistance, only the reference loss and shadowing apply.
type LogNormalShadowing struct {
	params    LogNormalParams
	shadowing randvar.Stream
}

func NewLogNormalShadowing(params LogNormalParams) (*LogNormalShadowing, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	sh, err := randvar.NewNormal(params.ShadowingMean, params.ShadowingVariance)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "shadowing: %v", err)
	}
	return &LogNormalShadowing{
		params:    params,
		shadowing: sh,
	}, nil
}

func (m *LogNormalShadowing) Evaluate(txPowerDbm DbValue, a, b Vector) DbValue {
	// exactly one draw per evaluation, for both distance branches.
	rxcRandom := -m.shadowing.GetValue()

	dist := a.DistanceTo(b)
	if dist <= m.params.ReferenceDistance {
		return txPowerDbm - m.params.ReferenceLoss - rxcRandom
	}

	pathLossDb := logDistanceLoss(dist, m.params.Exponent, m.params.ReferenceDistance)
	rxc := -m.params.ReferenceLoss - pathLossDb + rxcRandom
	logger.Tracef("distance=%vm, reference-attenuation=%vdB, attenuation coefficient=%vdB",
		dist, -m.params.ReferenceLoss, rxc)
	return txPowerDbm + rxc
}

// AssignStreams binds the shadowing variable to stream; it always uses a single stream.
func (m *LogNormalShadowing) AssignStreams(stream int64) int64 {
	m.shadowing.SetStream(stream)
	return 1
}

func (m *LogNormalShadowing) GetName() string {
	return LogNormalModelName
}

// GetParams returns a copy of the current parameters. If the shadowing variable was replaced using
// SetShadowingVariable, the shadowing fields hold the values last configured by SetShadowing.
func (m *LogNormalShadowing) GetParams() LogNormalParams {
	return m.params
}

func (m *LogNormalShadowing) GetPathLossExponent() float64 {
	return m.params.Exponent
}

func (m *LogNormalShadowing) SetPathLossExponent(n float64) error {
	if err := validateLogDistance(n, m.params.ReferenceDistance, m.params.ReferenceLoss); err != nil {
		return err
	}
	m.params.Exponent = n
	logger.Debugf("lognormal: exponent=%v", n)
	return nil
}

// SetReference sets the reference distance (m) and the loss (dB) at that distance.
func (m *LogNormalShadowing) SetReference(referenceDistance float64, referenceLoss DbValue) error {
	if err := validateLogDistance(m.params.Exponent, referenceDistance, referenceLoss); err != nil {
		return err
	}
	m.params.ReferenceDistance = referenceDistance
	m.params.ReferenceLoss = referenceLoss
	logger.Debugf("lognormal: reference-distance=%vm, reference-loss=%vdB", referenceDistance, referenceLoss)
	return nil
}

// SetShadowing sets the normal shadowing distribution. The stream binding and position of the shadowing variable
// are kept.
func (m *LogNormalShadowing) SetShadowing(mean DbValue, variance float64) error {
	if err := validateShadowing(mean, variance); err != nil {
		return err
	}
	if n, ok := m.shadowing.(*randvar.Normal); ok {
		if err := n.SetParams(mean, variance, n.Bound()); err != nil {
			return errors.Wrapf(ErrInvalidConfiguration, "shadowing: %v", err)
		}
	} else {
		n, err := randvar.NewNormal(mean, variance)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfiguration, "shadowing: %v", err)
		}
		if stream := m.shadowing.GetStream(); stream != randvar.AutoStream {
			n.SetStream(stream)
		}
		m.shadowing = n
	}
	m.params.ShadowingMean = mean
	m.params.ShadowingVariance = variance
	logger.Debugf("lognormal: shadowing %v", m.shadowing)
	return nil
}

// SetShadowingVariable replaces the shadowing random variable.
func (m *LogNormalShadowing) SetShadowingVariable(v randvar.Stream) error {
	if v == nil {
		return errors.Wrapf(ErrInvalidConfiguration, "shadowing variable is nil")
	}
	m.shadowing = v
	logger.Debugf("lognormal: shadowing %v", v)
	return nil
}

func (m *LogNormalShadowing) GetShadowingVariable() randvar.Stream {
	return m.shadowing
}

// LogDistance is the deterministic log-distance path loss model.
type LogDistance struct {
	exponent          float64
	referenceDistance float64
	referenceLoss     DbValue
}

func NewLogDistance(exponent float64, referenceDistance float64, referenceLoss DbValue) (*LogDistance, error) {
	if err := validateLogDistance(exponent, referenceDistance, referenceLoss); err != nil {
		return nil, err
	}
	return &LogDistance{
		exponent:          exponent,
		referenceDistance: referenceDistance,
		referenceLoss:     referenceLoss,
	}, nil
}

func (m *LogDistance) Evaluate(txPowerDbm DbValue, a, b Vector) DbValue {
	dist := a.DistanceTo(b)
	if dist <= m.referenceDistance {
		return txPowerDbm - m.referenceLoss
	}
	return txPowerDbm - m.referenceLoss - logDistanceLoss(dist, m.exponent, m.referenceDistance)
}

// AssignStreams uses no streams.
func (m *LogDistance) AssignStreams(stream int64) int64 {
	return 0
}

func (m *LogDistance) GetName() string {
	return LogDistanceModelName
}

func (m *LogDistance) GetPathLossExponent() float64 {
	return m.exponent
}

func (m *LogDistance) SetPathLossExponent(n float64) error {
	if err := validateLogDistance(n, m.referenceDistance, m.referenceLoss); err != nil {
		return err
	}
	m.exponent = n
	return nil
}

func (m *LogDistance) GetReference() (float64, DbValue) {
	return m.referenceDistance, m.referenceLoss
}

func (m *LogDistance) SetReference(referenceDistance float64, referenceLoss DbValue) error {
	if err := validateLogDistance(m.exponent, referenceDistance, referenceLoss); err != nil {
		return err
	}
	m.referenceDistance = referenceDistance
	m.referenceLoss = referenceLoss
	return nil
}
