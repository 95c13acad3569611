//go:build corewait_disable_padding

package opt

// Pad is force-disabled via the corewait_disable_padding build tag.
// Use: go build -tags=corewait_disable_padding
type Pad [0]byte
