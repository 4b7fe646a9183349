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

// Package prng manages the root seed and run number of a simulation, and derives from these an independent,
// reproducible pseudo-random source for every numbered stream.
package prng

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// AutoStreamBase is the first stream number handed out by NextAutoStream. Streams numbered explicitly by the
// user are expected to stay below it.
const AutoStreamBase int64 = 1 << 62

// salt for generators that are not bound to a numbered stream
const unnumberedSalt uint64 = 0x5851f42d4c957f2d

var (
	mutex             sync.Mutex
	rootSeed          int64
	runNumber         uint64
	nextAutoStream    int64
	unitRandGenerator *rand.Rand
)

func init() {
	Init(1, 1)
}

// Init initializes the prng package, either with a fixed root seed (seed != 0) or a 'random' time-based
// seed (if seed == 0). The run number selects an independent replication for the same seed. Any automatic
// stream numbering restarts.
func Init(seed int64, run uint64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mutex.Lock()
	defer mutex.Unlock()

	rootSeed = seed
	runNumber = run
	atomic.StoreInt64(&nextAutoStream, AutoStreamBase)
	unitRandGenerator = rand.New(newSource(seed, run, -1))
}

// GetSeed returns the root seed.
func GetSeed() int64 {
	mutex.Lock()
	defer mutex.Unlock()
	return rootSeed
}

// GetRun returns the run number.
func GetRun() uint64 {
	mutex.Lock()
	defer mutex.Unlock()
	return runNumber
}

// NewStreamSource creates the source for a given stream number. Sources for the same (seed, run, stream)
// produce the same sequence; sources for different streams are independent.
func NewStreamSource(stream int64) rand.Source {
	mutex.Lock()
	defer mutex.Unlock()
	return newSource(rootSeed, runNumber, stream)
}

// NextAutoStream allocates a stream number for a random source that nobody numbered explicitly.
func NextAutoStream() int64 {
	return atomic.AddInt64(&nextAutoStream, 1) - 1
}

// NewUnitRandom generates a new random unit [0, 1) float, which can be used as a random probability.
func NewUnitRandom() float64 {
	mutex.Lock()
	defer mutex.Unlock()
	return unitRandGenerator.Float64()
}

func newSource(seed int64, run uint64, stream int64) rand.Source {
	h := mix64(uint64(seed))
	h = mix64(h ^ run)
	h = mix64(h ^ uint64(stream))
	if stream < 0 {
		h = mix64(h ^ unnumberedSalt)
	}
	return rand.NewSource(int64(h))
}

// mix64 is the splitmix64 finalizer.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
