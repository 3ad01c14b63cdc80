package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ErrStorage matches every *StorageError through errors.Is.
var ErrStorage = errors.New("profile storage failure")

// FaultKind classifies a storage failure for callers and logs.
type FaultKind string

const (
	FaultUnavailable FaultKind = "unavailable"
	FaultFull        FaultKind = "full"
	FaultPermission  FaultKind = "permission"
	FaultCorrupt     FaultKind = "corrupt"
	FaultUnknown     FaultKind = "unknown"
)

// StorageError reports a load or save that failed in the underlying store.
type StorageError struct {
	Op   string
	Kind FaultKind
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("profile %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NewStorageError wraps err. When kind is empty it is derived from err.
func NewStorageError(op string, kind FaultKind, err error) *StorageError {
	if kind == "" {
		kind = ClassifyFault(err)
	}
	return &StorageError{Op: op, Kind: kind, Err: err}
}

// KindOf returns the fault kind of a storage error, or "" when err is not one.
func KindOf(err error) FaultKind {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// ClassifyFault maps operating system errors to a fault kind.
func ClassifyFault(err error) FaultKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, syscall.ENOSPC), errors.Is(err, syscall.EDQUOT):
		return FaultFull
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS):
		return FaultPermission
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return FaultUnavailable
	default:
		return FaultUnknown
	}
}
