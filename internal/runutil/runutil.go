// internal/runutil/runutil.go
package runutil

import "runtime"

// DefaultBatchSize is the number of sequences handed to ANARCI per call.
const DefaultBatchSize = 64

// EffectiveThreads maps the --threads value to a worker count:
// 0 means all CPUs.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// SplitCPU divides the CPU budget between pipeline workers and the ncpu
// each ANARCI process may use. An explicit ncpu wins.
func SplitCPU(threads, ncpu int) int {
	if ncpu > 0 {
		return ncpu
	}
	per := runtime.NumCPU() / EffectiveThreads(threads)
	if per < 1 {
		per = 1
	}
	return per
}

// ValidateBatching returns the effective batch size and any warnings.
// Rules:
//   - batch <= 0 falls back to DefaultBatchSize
//   - a single inline sequence needs no batching
func ValidateBatching(batch, inline int, haveFiles bool) (int, []string) {
	var warns []string
	if batch <= 0 {
		if batch < 0 {
			warns = append(warns, "warning: --batch-size must be > 0; using default")
		}
		batch = DefaultBatchSize
	}
	if !haveFiles && inline <= 1 {
		return 1, warns
	}
	return batch, warns
}
