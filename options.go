package paging

const (
	// DefaultPageSize is used when a call doesn't specify a limit and
	// no WithDefaultSize option overrides it.
	DefaultPageSize = 50

	// DefaultMaxPageSize caps limit when no WithMaxSize option overrides it.
	DefaultMaxPageSize = 1000
)

// PaginateOption configures page-size limits for a single Paginate call.
type PaginateOption func(*pageConfig)

type pageConfig struct {
	maxSize     int
	defaultSize int
}

// WithMaxSize caps the effective page size. Requests exceeding it are
// capped, not rejected — mirrors PageConfig.EffectiveLimit's silent-cap
// behavior in the teacher package.
func WithMaxSize(size int) PaginateOption {
	return func(c *pageConfig) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// WithDefaultSize sets the page size used when the call's limit is zero.
func WithDefaultSize(size int) PaginateOption {
	return func(c *pageConfig) {
		if size > 0 {
			c.defaultSize = size
		}
	}
}

func applyOptions(opts ...PaginateOption) pageConfig {
	cfg := pageConfig{maxSize: DefaultMaxPageSize, defaultSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// effectiveLimit resolves the requested limit against the config: zero
// or negative falls back to defaultSize, anything above maxSize is
// capped to maxSize.
func (c pageConfig) effectiveLimit(requested int) int {
	if requested <= 0 {
		return c.defaultSize
	}
	if requested > c.maxSize {
		return c.maxSize
	}
	return requested
}
