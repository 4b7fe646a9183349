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

// Package randvar implements random variable streams: stateful generators of successive samples of a
// distribution, each bound to a numbered prng stream so that sample sequences are reproducible.
package randvar

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/lnsim/lnsim/prng"
)

// AutoStream requests an automatically numbered stream from SetStream.
const AutoStream int64 = -1

var ErrInvalidParameter = errors.New("invalid random variable parameter")

// Stream is a random variable producing one sample per GetValue call. A Stream is not safe for concurrent use;
// draw order determines the sample sequence.
type Stream interface {
	// GetValue draws the next sample.
	GetValue() float64

	// SetStream binds the variable to the given stream number (or to an automatic one if stream < 0) and
	// restarts its sequence at the beginning of that stream.
	SetStream(stream int64)

	// GetStream returns the bound stream number, or AutoStream if not bound yet.
	GetStream() int64

	String() string
}

type streamBinding struct {
	stream int64
	rnd    *rand.Rand
}

func (sb *streamBinding) SetStream(stream int64) {
	if stream < 0 {
		stream = prng.NextAutoStream()
	}
	sb.stream = stream
	sb.rnd = rand.New(prng.NewStreamSource(stream))
}

func (sb *streamBinding) GetStream() int64 {
	if sb.rnd == nil {
		return AutoStream
	}
	return sb.stream
}

// generator returns the bound generator; a variable that was never bound gets an automatic stream here.
func (sb *streamBinding) generator() *rand.Rand {
	if sb.rnd == nil {
		sb.SetStream(AutoStream)
	}
	return sb.rnd
}
