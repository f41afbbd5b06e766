// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package llq_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/llq"
)

// variants returns every queue variant under its public name.
// All of them share the same external contract.
func variants() []struct {
	name string
	q    llq.Queue[int]
} {
	return []struct {
		name string
		q    llq.Queue[int]
	}{
		{"Mutex", llq.NewMutex[int]()},
		{"Unsafe", llq.NewUnsafe[int]()},
		{"Epoch", llq.NewEpoch[int]()},
		{"EpochWalk", llq.NewEpochWalk[int]()},
	}
}

// =============================================================================
// Basic Operations
// =============================================================================

// TestEmptyQueue tests the contract of a freshly constructed queue:
// Dequeue reports ErrWouldBlock, IsEmpty is true, Len is 0.
func TestEmptyQueue(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			if !v.q.IsEmpty() {
				t.Fatal("IsEmpty on fresh queue: got false, want true")
			}
			if n := v.q.Len(); n != 0 {
				t.Fatalf("Len on fresh queue: got %d, want 0", n)
			}
			if _, err := v.q.Dequeue(); !errors.Is(err, llq.ErrWouldBlock) {
				t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
			}
		})
	}
}

// TestSingleProducerFIFO pushes a fixed vector from one goroutine and
// pops it back: delivery order must equal link order exactly.
func TestSingleProducerFIFO(t *testing.T) {
	input := []int{1, 1, 4, 5, 1, 4}

	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			for i := range input {
				v.q.Enqueue(&input[i])
			}
			if n := v.q.Len(); n != len(input) {
				t.Fatalf("Len after %d pushes: got %d", len(input), n)
			}

			for i, want := range input {
				got, err := v.q.Dequeue()
				if err != nil {
					t.Fatalf("Dequeue(%d): %v", i, err)
				}
				if got != want {
					t.Fatalf("Dequeue(%d): got %d, want %d", i, got, want)
				}
			}

			if !v.q.IsEmpty() {
				t.Fatal("IsEmpty after drain: got false, want true")
			}
			if _, err := v.q.Dequeue(); !errors.Is(err, llq.ErrWouldBlock) {
				t.Fatalf("Dequeue after drain: got %v, want ErrWouldBlock", err)
			}
		})
	}
}

// TestInterleavedPushPop alternates pushes and pops so every variant
// exercises the sentinel transition repeatedly.
func TestInterleavedPushPop(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			for round := range 1000 {
				x := round
				v.q.Enqueue(&x)
				y := round + 1
				v.q.Enqueue(&y)

				got, err := v.q.Dequeue()
				if err != nil || got != round {
					t.Fatalf("round %d: got (%d, %v), want (%d, nil)", round, got, err, round)
				}
				got, err = v.q.Dequeue()
				if err != nil || got != round+1 {
					t.Fatalf("round %d: got (%d, %v), want (%d, nil)", round, got, err, round+1)
				}
			}
			if n := v.q.Len(); n != 0 {
				t.Fatalf("Len after balanced rounds: got %d, want 0", n)
			}
		})
	}
}

// TestPointerPayload round-trips a pointer payload.
func TestPointerPayload(t *testing.T) {
	q := llq.NewEpoch[*string]()

	s := "payload"
	p := &s
	q.Enqueue(&p)

	got, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got != p {
		t.Fatal("Dequeue: payload pointer mismatch")
	}
}

// =============================================================================
// Builder
// =============================================================================

// TestBuilderSelection tests the builder's variant selection.
func TestBuilderSelection(t *testing.T) {
	if _, ok := llq.Build[int](llq.New()).(*llq.Epoch[int]); !ok {
		t.Fatal("Build default: want *Epoch")
	}
	if _, ok := llq.Build[int](llq.New().LocalWalk()).(*llq.EpochWalk[int]); !ok {
		t.Fatal("Build LocalWalk: want *EpochWalk")
	}
	if _, ok := llq.Build[int](llq.New().Locked()).(*llq.Mutex[int]); !ok {
		t.Fatal("Build Locked: want *Mutex")
	}
	if _, ok := llq.Build[int](llq.New().Unreclaimed()).(*llq.Unsafe[int]); !ok {
		t.Fatal("Build Unreclaimed: want *Unsafe")
	}
}

// TestBuilderConflictPanics tests that contradictory configurations are
// rejected at build time.
func TestBuilderConflictPanics(t *testing.T) {
	mustPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		f()
	}

	mustPanic("Locked+LocalWalk", func() {
		llq.Build[int](llq.New().Locked().LocalWalk())
	})
	mustPanic("Locked+Unreclaimed", func() {
		llq.Build[int](llq.New().Locked().Unreclaimed())
	})
	mustPanic("Unreclaimed+LocalWalk", func() {
		llq.Build[int](llq.New().Unreclaimed().LocalWalk())
	})
	mustPanic("BuildLocked with LocalWalk", func() {
		llq.BuildLocked[int](llq.New().LocalWalk())
	})
	mustPanic("BuildEpoch with Locked", func() {
		llq.BuildEpoch[int](llq.New().Locked())
	})
}

// TestBuildEpochFlavors tests the typed epoch build helper.
func TestBuildEpochFlavors(t *testing.T) {
	if _, ok := llq.BuildEpoch[int](llq.New()).(*llq.Epoch[int]); !ok {
		t.Fatal("BuildEpoch default: want *Epoch")
	}
	if _, ok := llq.BuildEpoch[int](llq.New().LocalWalk()).(*llq.EpochWalk[int]); !ok {
		t.Fatal("BuildEpoch LocalWalk: want *EpochWalk")
	}
}

// TestErrorClassification tests the iox delegations on the pop-empty
// signal.
func TestErrorClassification(t *testing.T) {
	q := llq.NewEpoch[int]()
	_, err := q.Dequeue()

	if !llq.IsWouldBlock(err) {
		t.Fatal("IsWouldBlock(empty dequeue): got false")
	}
	if !llq.IsSemantic(err) {
		t.Fatal("IsSemantic(empty dequeue): got false")
	}
	if !llq.IsNonFailure(err) {
		t.Fatal("IsNonFailure(empty dequeue): got false")
	}
	if llq.IsWouldBlock(nil) {
		t.Fatal("IsWouldBlock(nil): got true")
	}
}
