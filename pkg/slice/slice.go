// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the functional
helpers used by screen aggregation (Map, Filter, Sum).
*/
package slice

// Map maps a slice of type T to a slice of type U.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns the elements for which predicate is true. The result is never nil.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0)
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// Number is the constraint of [Sum].
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Sum adds up value(v) over input.
func Sum[T any, N Number](input []T, value func(T) N) N {
	var total N
	for _, v := range input {
		total += value(v)
	}
	return total
}
