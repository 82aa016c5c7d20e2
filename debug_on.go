//go:build dynarray_debug

package dynarray

// Built with -tags dynarray_debug: unchecked conversions verify their
// preconditions.
const debugAssertions = true
