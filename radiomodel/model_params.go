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
	"math"

	"github.com/pkg/errors"

	. "github.com/lnsim/lnsim/types"
)

// default model parameters
const (
	defaultExponent                  = 3.0
	defaultReferenceDistance         = 1.0     // meters
	defaultReferenceLoss     DbValue = 46.6777 // Friis loss at 1 m for 5.15 GHz
)

// LogNormalParams stores the parameters of the log-normal shadowing model.
type LogNormalParams struct {
	Exponent          float64 `yaml:"exponent"`           // path loss exponent (dimensionless)
	ReferenceDistance float64 `yaml:"reference-distance"` // distance (m) at which ReferenceLoss applies
	ReferenceLoss     DbValue `yaml:"reference-loss"`     // loss (dB) at ReferenceDistance
	ShadowingMean     DbValue `yaml:"shadowing-mean"`     // mean (dB) of the normal shadowing loss
	ShadowingVariance float64 `yaml:"shadowing-variance"` // variance (dB^2) of the normal shadowing loss
}

// DefaultLogNormalParams gets a new set of parameters with default values, as a basis to configure further.
func DefaultLogNormalParams() LogNormalParams {
	return LogNormalParams{
		Exponent:          defaultExponent,
		ReferenceDistance: defaultReferenceDistance,
		ReferenceLoss:     defaultReferenceLoss,
		ShadowingMean:     0.0,
		ShadowingVariance: 0.0,
	}
}

func (p LogNormalParams) Validate() error {
	if err := validateLogDistance(p.Exponent, p.ReferenceDistance, p.ReferenceLoss); err != nil {
		return err
	}
	return validateShadowing(p.ShadowingMean, p.ShadowingVariance)
}

func validateLogDistance(exponent float64, referenceDistance float64, referenceLoss DbValue) error {
	if !isFinite(exponent) {
		return errors.Wrapf(ErrInvalidConfiguration, "exponent %v", exponent)
	}
	if !(referenceDistance > 0) || math.IsInf(referenceDistance, 0) {
		return errors.Wrapf(ErrInvalidConfiguration, "reference distance %v must be > 0", referenceDistance)
	}
	if !isFinite(referenceLoss) {
		return errors.Wrapf(ErrInvalidConfiguration, "reference loss %v", referenceLoss)
	}
	return nil
}

func validateShadowing(mean DbValue, variance float64) error {
	if !isFinite(mean) {
		return errors.Wrapf(ErrInvalidConfiguration, "shadowing mean %v", mean)
	}
	if !(variance >= 0) || math.IsInf(variance, 0) {
		return errors.Wrapf(ErrInvalidConfiguration, "shadowing variance %v must be >= 0", variance)
	}
	return nil
}
