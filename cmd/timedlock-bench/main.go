package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mirkobrombin/go-timedlock/v1/timedlock"
)

var (
	concurrency = flag.Int("c", 50, "Concurrency")
	requests    = flag.Int("n", 100000, "Requests")
	target      = flag.String("target", "all", "Target: sync-mutex, timed-mutex, sync-rwlock, timed-rwlock")
)

func main() {
	flag.Parse()

	targets := strings.Split(*target, ",")
	if *target == "all" {
		targets = []string{"sync-mutex", "timed-mutex", "sync-rwlock", "timed-rwlock"}
	}

	fmt.Printf("| %-12s | %-10s | %-12s | %-12s |\n", "Lock", "Ops/sec", "Avg Latency", "P99 Latency")
	fmt.Println("|:---|:---|:---|:---|")

	for _, t := range targets {
		runBenchmark(strings.TrimSpace(t))
	}
}

func runBenchmark(name string) {
	ctx := context.Background()
	var opFn func() error

	switch name {
	case "sync-mutex":
		var mu sync.Mutex
		var n int
		opFn = func() error {
			mu.Lock()
			n++
			mu.Unlock()
			return nil
		}

	case "timed-mutex":
		m := timedlock.NewMutexWithTimeout(0, time.Minute)
		opFn = func() error {
			g, err := m.LockErr(ctx)
			if err != nil {
				return err
			}
			*g.Value()++
			g.Unlock()
			return nil
		}

	case "sync-rwlock":
		var mu sync.RWMutex
		var n int
		opFn = func() error {
			mu.RLock()
			_ = n
			mu.RUnlock()
			return nil
		}

	case "timed-rwlock":
		l := timedlock.NewRWLockWithTimeout(0, time.Minute)
		opFn = func() error {
			g, err := l.RLockErr(ctx)
			if err != nil {
				return err
			}
			_ = *g.Value()
			g.Unlock()
			return nil
		}

	default:
		log.Printf("Unknown target: %s", name)
		return
	}

	var wg sync.WaitGroup
	var ops int64
	totalReqs := *requests
	latencies := make([]int64, totalReqs)

	start := time.Now()
	chunk := totalReqs / *concurrency

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			offset := idx * chunk
			for j := 0; j < chunk; j++ {
				reqStart := time.Now()
				if err := opFn(); err == nil {
					atomic.AddInt64(&ops, 1)
					latencies[offset+j] = time.Since(reqStart).Nanoseconds()
				}
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	if ops == 0 {
		fmt.Printf("| %-12s | %-10s | %-12s | %-12s |\n", name, "ERROR", "-", "-")
		return
	}

	throughput := float64(ops) / elapsed.Seconds()
	avgLat := float64(elapsed.Nanoseconds()) / float64(ops)

	p99 := "-"
	validLats := make([]int64, 0, ops)
	for _, l := range latencies {
		if l > 0 {
			validLats = append(validLats, l)
		}
	}
	if len(validLats) > 0 {
		sort.Slice(validLats, func(i, j int) bool { return validLats[i] < validLats[j] })
		p99Idx := int(float64(len(validLats)) * 0.99)
		if p99Idx >= len(validLats) {
			p99Idx = len(validLats) - 1
		}
		p99 = fmt.Sprintf("%d", validLats[p99Idx])
	}

	fmt.Printf("| %-12s | %-10.0f | %-12.0f | %-12s |\n", name, throughput, avgLat, p99)
}
