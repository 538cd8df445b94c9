// Package compute provides pluggable computation backends for the
// direct-summation N-body force law, so the solver package can hand
// large, non-deterministic pairwise workloads to a concurrent
// implementation without knowing how the work is actually
// parallelized.
//
// CPUBackend is the only backend shipped here: it runs the serial
// O(n^2) sum for small bodies counts and splits the work across
// runtime.NumCPU goroutines above that. Determinism is the caller's
// responsibility — solver only calls into this package when the
// active config has deterministic=false, since the chunked summation
// order here does not match the serial fixed-order path needed for
// byte-for-byte replay.
package compute
