//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !corewait_disable_padding && !corewait_enable_padding

package opt

// Pad is disabled by default for amd64 and the 32-bit architectures; see
// padding_on.go.
type Pad [0]byte
