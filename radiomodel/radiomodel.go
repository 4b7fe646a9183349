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

// Package radiomodel implements propagation loss models: functions from a transmit power and the positions of
// transmitter and receiver to a received power, optionally perturbed by random shadowing.
package radiomodel

import (
	"github.com/pkg/errors"

	. "github.com/lnsim/lnsim/types"
)

const (
	LogNormalModelName   = "lognormal"
	LogDistanceModelName = "logdistance"
	RandomModelName      = "random"
)

var ErrInvalidConfiguration = errors.New("invalid propagation model configuration")

// LossModel computes the received power of a radio signal between two positions. A LossModel owns its random
// sources, if any, and is not safe for concurrent use; see NewSynchronized.
type LossModel interface {
	// Evaluate returns the received power (dBm) at position b for a signal transmitted at a with txPowerDbm.
	// Each call draws the same, fixed, number of samples from the model's random sources.
	Evaluate(txPowerDbm DbValue, a, b Vector) DbValue

	// AssignStreams binds the model's random sources to consecutive stream numbers starting at stream, and
	// returns the number of streams used. A negative stream selects automatic stream numbers.
	AssignStreams(stream int64) int64

	// GetName returns the name of the model.
	GetName() string
}

// NewLossModel creates a new LossModel with given name, using default parameters. Returns nil if the name refers
// to no known model.
func NewLossModel(modelName string) LossModel {
	var model LossModel
	var err error

	switch modelName {
	case LogNormalModelName, "LogNormal", "LogNormalPropagationLossModel":
		model, err = NewLogNormalShadowing(DefaultLogNormalParams())
	case LogDistanceModelName, "LogDistance", "LogDistancePropagationLossModel":
		p := DefaultLogNormalParams()
		model, err = NewLogDistance(p.Exponent, p.ReferenceDistance, p.ReferenceLoss)
	case RandomModelName, "Random", "RandomPropagationLossModel":
		model, err = NewRandomLoss(nil)
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return model
}
