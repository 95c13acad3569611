//go:build corewait_enable_padding

package opt

// Pad is force-enabled via the corewait_enable_padding build tag.
// Use: go build -tags=corewait_enable_padding
type Pad [CacheLineSize_]byte
