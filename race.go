// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package llq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent lock-free tests: the epoch collector
// and length counters synchronize through atomix orderings the detector
// cannot observe, and pooled node reuse looks like a race to it even
// after the epoch protocol has proven the node unreachable.
const RaceEnabled = true
