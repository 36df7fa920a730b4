package main

import (
	"flag"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"git.fiblab.net/sim/transit/handler"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 1000, "the random path query count for benchmark")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 1, "the cpu count for benchmark")
)

type stopPair struct {
	from, to string
}

// randomStopPairs 在全部车站中随机抽取起终点
func randomStopPairs(stops []string, count int, seed int64) []stopPair {
	if len(stops) == 0 {
		return nil
	}
	e := rand.New(rand.NewSource(seed))
	return lo.Times(count, func(int) stopPair {
		return stopPair{from: stops[e.Intn(len(stops))], to: stops[e.Intn(len(stops))]}
	})
}

func runBenchmark(h *handler.RequestHandler) {
	logrus.SetLevel(logrus.WarnLevel)
	names := lo.Keys(h.Catalogue().GetAllStops())
	// map遍历顺序随机，排序后同一种子得到相同的请求序列
	sort.Strings(names)
	pairs := randomStopPairs(names, *benchmarkCount, *benchmarkSeed)
	if len(pairs) == 0 {
		log.Warn("benchmark skipped: empty catalogue")
		return
	}

	// 开始benchmark
	start := time.Now()
	var success atomic.Int32
	if *benchmarkCPU == 1 {
		for _, p := range pairs {
			if _, ok := h.GetPath(p.from, p.to); ok {
				success.Add(1)
			}
		}
	} else {
		// 设置cpu数量
		runtime.GOMAXPROCS(*benchmarkCPU)
		var wg sync.WaitGroup
		wg.Add(len(pairs))
		for _, p := range pairs {
			go func(p stopPair) {
				defer wg.Done()
				if _, ok := h.GetPath(p.from, p.to); ok {
					success.Add(1)
				}
			}(p)
		}
		wg.Wait()
	}
	timeCost := time.Since(start) * time.Duration(*benchmarkCPU)
	log.Warn(
		"benchmark finished", "\n",
		"count:", len(pairs), "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(len(pairs)), "\n",
		"success:", success.Load(), "\n",
	)
}
