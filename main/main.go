package main

import (
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rawbytedev/dynarray"
	"github.com/rawbytedev/dynarray/pkg/alloc"
	"go.uber.org/zap"
)

// Allocation profiling harness: churns heap- and pool-backed arrays and
// writes a heap profile to mem.prof.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	dynarray.SetLogger(logger)

	go func() {
		logger.Info("pprof", zap.Error(http.ListenAndServe("localhost:6060", nil)))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		logger.Fatal("create profile", zap.Error(err))
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	pool := alloc.NewPool(alloc.PoolOptions{})
	src := make([]float64, 2048)
	for i := range src {
		src[i] = float64(i) * 1.5
	}
	var sum float64
	for i := 0; i < 10000; i++ {
		a := dynarray.FromSlice(src)
		for v := range a.Values() {
			sum += v
		}

		u := dynarray.NewUninitIn[float64](len(src), pool)
		copy(u.Slots(), src)
		b := u.AssumeInit()
		sum -= b.At(len(src) - 1)
		b.Release()
	}
	logger.Info("done", zap.Float64("checksum", sum))
	if err := pprof.WriteHeapProfile(f); err != nil {
		logger.Fatal("write profile", zap.Error(err))
	}
}
