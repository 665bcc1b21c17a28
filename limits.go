package gotable

const (
	// NoLimit page size means the page holds the whole filtered set.
	NoLimit         = -1
	MaxPageSize     = 100
	DefaultPageSize = 10
)

// IsNormalizedPageSize returns the page size to use and whether the
// requested one was accepted unchanged. Non-positive sizes fall back to
// defaultSize, sizes above maxSize are clamped.
func IsNormalizedPageSize(size, defaultSize, maxSize int) (int, bool) {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}

	if size <= 0 {
		return min(defaultSize, maxSize), false
	} else if size > maxSize {
		return maxSize, false
	}

	return size, true
}

func NormalizePageSize(size, defaultSize, maxSize int) int {
	ret, _ := IsNormalizedPageSize(size, defaultSize, maxSize)
	return ret
}

// PageCount returns max(ceil(total/size), 1). NoLimit and non-positive
// sizes yield a single page.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}

	return (total + size - 1) / size
}
