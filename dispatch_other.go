//go:build !amd64 && !arm64

package semidex

// detectCPULevel has no vector ISA to probe on other architectures; the
// portable scalar backend is always correct here.
func detectCPULevel() cpuFeatureLevel {
	return levelScalar
}
