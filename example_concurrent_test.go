// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples that run producers and consumers
// concurrently over pooled nodes. The epoch protocol makes them
// correct, but node reuse looks like a race to the detector, so they
// are excluded from race testing.

package llq_test

import (
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/llq"
)

// Example_mpmc demonstrates multiple producers and consumers sharing an
// epoch-reclaimed queue.
func Example_mpmc() {
	q := llq.NewEpoch[int]()

	const (
		producers = 3
		perProd   = 1000
	)

	var wg sync.WaitGroup
	var remaining atomix.Int32
	remaining.Add(producers)

	for p := range producers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range perProd {
				v := id*perProd + i
				q.Enqueue(&v)
			}
			remaining.Add(-1)
		}(p)
	}

	var sum atomix.Int64
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			backoff := iox.Backoff{}
			for remaining.Load() != 0 || !q.IsEmpty() {
				v, err := q.Dequeue()
				if err != nil {
					backoff.Wait()
					continue
				}
				sum.Add(int64(v))
				backoff.Reset()
			}
		}()
	}

	wg.Wait()
	fmt.Println(sum.Load())

	// Output:
	// 4498500
}
