//go:build !(amd64 || 386 || arm || mips || mipsle || wasm) && !corewait_disable_padding && !corewait_enable_padding

package opt

// Pad is a trailing struct field sized to one cache line. Embedding it after
// a hot, frequently-written field (a wait-queue head pointer next to a
// counting semaphore's permit counter, for example) keeps that field from
// sharing a cache line with whatever the caller places after the struct.
//
// Padding is automatically enabled for architectures that are NOT:
//   - amd64 (x86_64): hardware prefetch/coherency often makes it less critical
//   - 32-bit architectures (386, arm, mips, mipsle, wasm): tighter memory budgets
//
// Enabled for: arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, mips64le, etc.
type Pad [CacheLineSize_]byte
