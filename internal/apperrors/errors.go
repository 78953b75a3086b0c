package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal is returned when an unexpected internal failure occurred.
var ErrInternal = errors.New("internal error")

var (
	// ErrUnbalancedEntries is matched by every *UnbalancedEntriesError.
	ErrUnbalancedEntries = errors.New("entries do not balance")
	// ErrAccountProvisioning is matched by every *AccountProvisioningError.
	ErrAccountProvisioning = errors.New("account provisioning failed")
	// ErrPersistence is matched by every *PersistenceError.
	ErrPersistence = errors.New("persistence failure")
	// ErrDuplicateSourceEvent is raised by stores when the (source module, source transaction id)
	// pair already exists. The posting engine converts it into the existing-transaction result;
	// callers never observe it.
	ErrDuplicateSourceEvent = errors.New("source event already posted")
)

// AppError carries an HTTP-ish status code along with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// UnbalancedEntriesError reports the debit and credit totals of a rejected entry set.
type UnbalancedEntriesError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedEntriesError) Error() string {
	return fmt.Sprintf("%s: debits %s, credits %s", ErrUnbalancedEntries, e.Debits.String(), e.Credits.String())
}

func (e *UnbalancedEntriesError) Is(target error) bool { return target == ErrUnbalancedEntries }

// AccountProvisioningError wraps a failure to look up or create an account.
type AccountProvisioningError struct {
	Code string
	Err  error
}

func (e *AccountProvisioningError) Error() string {
	return fmt.Sprintf("%s for code %s: %v", ErrAccountProvisioning, e.Code, e.Err)
}

func (e *AccountProvisioningError) Is(target error) bool { return target == ErrAccountProvisioning }

func (e *AccountProvisioningError) Unwrap() error { return e.Err }

// PersistenceError wraps a storage failure of the named operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError wraps err unless it already is a persistence error.
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
