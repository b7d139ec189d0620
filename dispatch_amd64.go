//go:build amd64

package semidex

import "github.com/klauspost/cpuid/v2"

// detectCPULevel resolves the host's usable feature level once via
// cpuid.CPU.Supports; the result is cached in dispatch.go's
// detectedLevel and never re-queried per call.
func detectCPULevel() cpuFeatureLevel {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX2):
		return levelAVX2
	case cpuid.CPU.Supports(cpuid.SSE42):
		return levelSSE42
	case cpuid.CPU.Supports(cpuid.SSE2):
		return levelSSE2
	default:
		return levelScalar
	}
}
