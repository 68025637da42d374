package common

import (
	"cmp"
	"unsafe"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Clamp limits v to the inclusive range [lo, hi].
// When lo > hi the upper bound wins, matching sequential min/max checks.
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: the clamped value
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// Approach moves current toward target by at most step.
// Once the remaining distance is within step the target is returned exactly.
//
// Parameters:
//   - current: the value being moved
//   - target: the value to move toward
//   - step: the maximum change per call (must be >= 0)
//
// Returns:
//   - float32: the new value
func Approach(current, target, step float32) float32 {
	diff := target - current
	if diff <= step && diff >= -step {
		return target
	}
	if diff > 0 {
		return current + step
	}
	return current - step
}
