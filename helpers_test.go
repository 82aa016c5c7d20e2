package dynarray

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// tracked records its id in log when dropped.
type tracked struct {
	id  int
	log *[]int
}

func (d tracked) Drop() { *d.log = append(*d.log, d.id) }

func trackedRange(n int, log *[]int) []tracked {
	out := make([]tracked, n)
	for i := range out {
		out[i] = tracked{id: i, log: log}
	}
	return out
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// requireContract runs fn and checks it panicked with a *ContractError
// wrapping target.
func requireContract(t testing.TB, target error, fn func()) *ContractError {
	t.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()
	require.NotNil(t, got, "expected a contract panic")
	ce, ok := got.(*ContractError)
	require.Truef(t, ok, "panic value is %T: %v", got, got)
	require.ErrorIs(t, ce, target)
	return ce
}
