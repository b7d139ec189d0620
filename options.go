package semidex

// buildConfig holds every knob Build/BuildIndex accept, populated from
// defaults and then from the caller's Option values in order.
type buildConfig struct {
	selectSampleRate uint64
	bpBlockSize      int
	simdDispatch     SIMDDispatch
}

func defaultConfig() buildConfig {
	return buildConfig{
		selectSampleRate: defaultSelectSampleRate,
		bpBlockSize:      defaultBPBlockSize,
		simdDispatch:     DispatchAuto,
	}
}

// Option configures Build: each Option is a function that mutates a
// private config value, applied in the order given.
type Option func(*buildConfig)

// SelectSampleRate sets K, the interval between sampled one-bit positions
// in every BitVector's select index. Smaller K trades memory for faster
// Select1; spec default is 256.
func SelectSampleRate(k uint64) Option {
	return func(c *buildConfig) {
		if k == 0 {
			k = defaultSelectSampleRate
		}
		c.selectSampleRate = k
	}
}

// BPBlockSize sets the number of 64-bit words covered by one L1 min-excess
// block in the BalancedParens RangeMin index; spec default is 32.
func BPBlockSize(words int) Option {
	return func(c *buildConfig) {
		if words <= 0 {
			words = defaultBPBlockSize
		}
		c.bpBlockSize = words
	}
}

// WithSIMDDispatch overrides the auto-detected byte-classification
// backend used while scanning. Intended for tests that must exercise every backend
// on one machine and for working around a suspected backend bug in
// production by forcing DispatchForceScalar.
func WithSIMDDispatch(d SIMDDispatch) Option {
	return func(c *buildConfig) {
		c.simdDispatch = d
	}
}

func applyOptions(opts []Option) buildConfig {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
