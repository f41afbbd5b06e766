// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command llq-bench drives the queue variants side by side and reports
// sampled throughput. It is an external collaborator of the queues: it
// only calls Enqueue/Dequeue in a loop and records counters, and it
// treats Len/IsEmpty as advisory only.
package main

import (
	"fmt"
	"os"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"github.com/spf13/cobra"

	"code.hybscloud.com/llq"
)

var (
	flagDuration  time.Duration
	flagInterval  time.Duration
	flagProducers int
	flagConsumers int
)

// variant couples a queue constructor with its display name. Unsafe is
// driven with a single consumer only, per its contract.
type variant struct {
	name string
	make func() llq.Queue[uint64]
	spsc bool
}

func allVariants() []variant {
	return []variant{
		{name: "mutex", make: func() llq.Queue[uint64] { return llq.NewMutex[uint64]() }},
		{name: "unsafe", make: func() llq.Queue[uint64] { return llq.NewUnsafe[uint64]() }, spsc: true},
		{name: "epoch", make: func() llq.Queue[uint64] { return llq.NewEpoch[uint64]() }},
		{name: "epoch-walk", make: func() llq.Queue[uint64] { return llq.NewEpochWalk[uint64]() }},
	}
}

func main() {
	root := &cobra.Command{
		Use:   "llq-bench",
		Short: "Throughput comparison driver for the llq queue variants",
		Long: `llq-bench runs the unbounded queue variants under sustained load and
prints sampled push throughput per variant. Counters are advisory by
nature; the driver never uses queue length for synchronization.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().DurationVar(&flagDuration, "duration", 10*time.Second, "total run time per variant")
	root.PersistentFlags().DurationVar(&flagInterval, "interval", time.Second, "sampling interval")

	throughput := &cobra.Command{
		Use:   "throughput",
		Short: "Concurrent push/pop throughput for every variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagProducers < 1 || flagConsumers < 1 {
				return fmt.Errorf("need at least one producer and one consumer")
			}
			for _, v := range allVariants() {
				runThroughput(v)
			}
			return nil
		},
	}
	throughput.Flags().IntVar(&flagProducers, "producers", 1, "producer goroutines per variant")
	throughput.Flags().IntVar(&flagConsumers, "consumers", 1, "consumer goroutines per variant")

	insert := &cobra.Command{
		Use:   "insert",
		Short: "Push-only throughput for every variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagProducers < 1 {
				return fmt.Errorf("need at least one producer")
			}
			for _, v := range allVariants() {
				runInsertOnly(v)
			}
			return nil
		},
	}
	insert.Flags().IntVar(&flagProducers, "producers", 1, "producer goroutines per variant")

	root.AddCommand(throughput, insert)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runThroughput drives one variant with flagProducers pushers and
// flagConsumers poppers for flagDuration, sampling the push counter
// every flagInterval.
func runThroughput(v variant) {
	q := v.make()
	var pushed atomix.Int64
	var stop atomix.Bool

	producers := flagProducers
	consumers := flagConsumers
	if v.spsc {
		producers, consumers = 1, 1
	}

	for range producers {
		go func() {
			for i := uint64(0); !stop.LoadAcquire(); i++ {
				q.Enqueue(&i)
				pushed.Add(1)
			}
		}()
	}
	for range consumers {
		go func() {
			backoff := iox.Backoff{}
			for !stop.LoadAcquire() {
				if _, err := q.Dequeue(); err != nil {
					backoff.Wait()
					continue
				}
				backoff.Reset()
			}
		}()
	}

	samples := sample(&pushed)
	stop.StoreRelease(true)

	report(v.name, producers, consumers, samples)
}

// runInsertOnly drives one variant with pushers only.
func runInsertOnly(v variant) {
	q := v.make()
	var pushed atomix.Int64
	var stop atomix.Bool

	producers := flagProducers
	if v.spsc {
		producers = 1
	}

	for range producers {
		go func() {
			for i := uint64(0); !stop.LoadAcquire(); i++ {
				q.Enqueue(&i)
				pushed.Add(1)
			}
		}()
	}

	samples := sample(&pushed)
	stop.StoreRelease(true)

	report(v.name+" (insert-only)", producers, 0, samples)
}

// sample reads the counter every flagInterval until flagDuration has
// elapsed and returns the per-interval deltas.
func sample(counter *atomix.Int64) []int64 {
	var samples []int64
	prev := int64(0)
	ticker := time.NewTicker(flagInterval)
	defer ticker.Stop()

	deadline := time.Now().Add(flagDuration)
	for now := range ticker.C {
		cur := counter.Load()
		samples = append(samples, cur-prev)
		prev = cur
		if now.After(deadline) {
			return samples
		}
	}
	return samples
}

func report(name string, producers, consumers int, samples []int64) {
	var total int64
	for _, s := range samples {
		total += s
	}
	elapsed := time.Duration(len(samples)) * flagInterval
	rate := float64(total) / elapsed.Seconds()

	fmt.Printf("%-22s %dP/%dC  %12d ops  %14.0f ops/s\n", name, producers, consumers, total, rate)
	fmt.Printf("%-22s per-interval: %v\n", "", samples)
}
