// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fec

import (
	"math"
	"math/rand"
)

// mersenneTwister is an MT19937 PRNG (32-bit variant), used so that the set
// of source-symbol indices an encoder XORs together for a given repair
// symbol is reproducible from the symbol's index alone, with no extra
// shared state between encoder and decoder. Satisfies math/rand.Source.
type mersenneTwister struct {
	mt          [624]uint32
	index       int
	initialized bool
}

// newMersenneTwister creates a new MT19937 source seeded deterministically
// from seed.
func newMersenneTwister(seed int64) rand.Source {
	t := &mersenneTwister{}
	t.Seed(seed)
	return t
}

func (t *mersenneTwister) Seed(seed int64) {
	t.initialize(uint32(((seed >> 32) ^ seed) & math.MaxUint32))
}

func (t *mersenneTwister) Int63() int64 {
	a := t.Uint32()
	b := t.Uint32()
	return (int64(a) << 31) ^ int64(b)
}

func (t *mersenneTwister) Uint32() uint32 {
	if !t.initialized {
		t.initialize(4357)
	}

	if t.index == 0 {
		t.generateUntempered()
	}

	y := t.mt[t.index]
	t.index++
	if t.index >= len(t.mt) {
		t.index = 0
	}
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18

	return y
}

func (t *mersenneTwister) initialize(seed uint32) {
	t.index = 0
	t.mt[0] = seed

	for i := 1; i < len(t.mt); i++ {
		t.mt[i] = (1812433253*(t.mt[i-1]^(t.mt[i-1]>>30)) + uint32(i)) & math.MaxUint32
	}
	t.initialized = true
}

func (t *mersenneTwister) generateUntempered() {
	mag01 := [2]uint32{0x0, 0x9908b0df}
	for i := 0; i < len(t.mt); i++ {
		y := (t.mt[i] & 0x80000000) | (t.mt[(i+1)%len(t.mt)] & 0x7fffffff)
		t.mt[i] = (t.mt[(i+397)%len(t.mt)] ^ (y >> 1)) ^ mag01[y&0x01]
	}
}
