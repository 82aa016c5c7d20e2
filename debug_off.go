//go:build !dynarray_debug

package dynarray

const debugAssertions = false
