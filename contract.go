package dynarray

import (
	"errors"
	"sync/atomic"

	"github.com/rawbytedev/dynarray/pkg/alloc"
	"go.uber.org/zap"
)

var (
	ErrLayout         = alloc.ErrLayout
	ErrProducerLength = errors.New("producer yielded a different count than reported")
	ErrAllocation     = errors.New("allocation failed")
	ErrPointerful     = errors.New("type holds pointers and cannot live outside the heap")
	ErrUninitialized  = errors.New("slot left uninitialized")
)

// ContractError is the panic value raised when a caller breaks a precondition.
// It unwraps to one of the Err* sentinels.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string { return "dynarray: " + e.Op + ": " + e.Err.Error() }

func (e *ContractError) Unwrap() error { return e.Err }

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger installs the logger used to report contract violations and
// allocator traffic. A nil logger silences the package.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func lg() *zap.Logger { return logger.Load() }

// fail never returns.
func fail(op string, err error) {
	lg().Error("contract violation", zap.String("op", op), zap.Error(err))
	panic(&ContractError{Op: op, Err: err})
}
