package future

import (
	"os"
	"runtime"
	"strconv"
	"sync"
)

// EnvNumThreads is the environment variable that sets the default
// pool size. Absent, zero or unparsable values fall back to the
// hardware concurrency.
const EnvNumThreads = "LIBASYNC_NUM_THREADS"

// HardwareConcurrency reports the number of CPUs usable by the
// process. It never returns less than 1.
func HardwareConcurrency() int {
	if n := runtime.NumCPU(); n > 1 {
		return n
	}
	return 1
}

func numThreadsFromEnv() int {
	if s := os.Getenv(EnvNumThreads); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			return n
		}
	}
	return HardwareConcurrency()
}

var defaultPool = sync.OnceValue(func() *ThreadPool {
	return NewThreadPool(numThreadsFromEnv())
})

// DefaultScheduler returns the process-wide thread pool used by
// operations that are not given an explicit scheduler. It is built
// lazily, sized from LIBASYNC_NUM_THREADS or the CPU count, and lives
// for the rest of the process.
func DefaultScheduler() *ThreadPool {
	return defaultPool()
}
