//go:build arm64

package semidex

import "github.com/klauspost/cpuid/v2"

// detectCPULevel reports NEON on arm64: the ISA guarantees it, so there is
// no lower tier to fall back to short of the portable scalar path, which
// resolveLevel already provides via DispatchForceScalar.
func detectCPULevel() cpuFeatureLevel {
	if cpuid.CPU.Supports(cpuid.ASIMD) {
		return levelNEON
	}
	return levelScalar
}
