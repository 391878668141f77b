package observability

import (
	"fmt"
	"sync"

	"github.com/grafana/pyroscope-go"
)

var (
	profilerMu sync.Mutex
	profiler   *pyroscope.Profiler
)

// InitProfiling starts continuous profiling against a Pyroscope server
func InitProfiling(appName, endpoint string, tags map[string]string) error {
	profilerMu.Lock()
	defer profilerMu.Unlock()

	if profiler != nil {
		return nil
	}

	p, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   endpoint,
		Tags:            tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return fmt.Errorf("start pyroscope: %w", err)
	}
	profiler = p
	return nil
}

// StopProfiling flushes and stops the profiler if running
func StopProfiling() {
	profilerMu.Lock()
	defer profilerMu.Unlock()

	if profiler == nil {
		return
	}
	_ = profiler.Stop()
	profiler = nil
}
