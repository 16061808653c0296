package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a transient transaction conflict (serialization failure,
// deadlock, timeout). The caller may retry with the same inputs.
var ErrConflict = errors.New("transaction conflict")

// ErrInvalidStateTransition indicates an action on a terminal or non-matching status.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrRateNotFound indicates that no active directed currency rate exists for a pair.
var ErrRateNotFound = errors.New("currency rate not found")

// ErrInsufficientBalance indicates that the available balance cannot cover a reservation.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrOutsideSubscriptionWindow indicates the IPO is not accepting subscriptions now.
var ErrOutsideSubscriptionWindow = errors.New("outside subscription window")

// ErrInvalidLotSize indicates a quantity that is not a positive multiple of the lot size.
var ErrInvalidLotSize = errors.New("invalid lot size")

// ErrPriceOutOfRange indicates a bid price outside the IPO price band.
var ErrPriceOutOfRange = errors.New("price out of range")

// ErrDuplicateSubscription indicates the user already holds an open subscription for the IPO.
var ErrDuplicateSubscription = errors.New("duplicate subscription")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrorCode is the stable, user-visible code attached to error responses.
type ErrorCode string

const (
	CodeInternal                  ErrorCode = "INTERNAL_ERROR"
	CodeNotFound                  ErrorCode = "NOT_FOUND"
	CodeValidation                ErrorCode = "VALIDATION_ERROR"
	CodeDuplicate                 ErrorCode = "DUPLICATE"
	CodeConflict                  ErrorCode = "CONFLICT"
	CodeForbidden                 ErrorCode = "FORBIDDEN"
	CodeInvalidStateTransition    ErrorCode = "INVALID_STATE_TRANSITION"
	CodeRateNotFound              ErrorCode = "RATE_NOT_FOUND"
	CodeInsufficientBalance       ErrorCode = "INSUFFICIENT_BALANCE"
	CodeOutsideSubscriptionWindow ErrorCode = "OUTSIDE_SUBSCRIPTION_WINDOW"
	CodeInvalidLotSize            ErrorCode = "INVALID_LOT_SIZE"
	CodePriceOutOfRange           ErrorCode = "PRICE_OUT_OF_RANGE"
	CodeDuplicateSubscription     ErrorCode = "DUPLICATE_SUBSCRIPTION"
)

// sentinelCodes is ordered: the more specific sentinels come first because
// several of them are also wrapped together with ErrValidation.
var sentinelCodes = []struct {
	err    error
	code   ErrorCode
	status int
}{
	{ErrRateNotFound, CodeRateNotFound, http.StatusUnprocessableEntity},
	{ErrInsufficientBalance, CodeInsufficientBalance, http.StatusUnprocessableEntity},
	{ErrOutsideSubscriptionWindow, CodeOutsideSubscriptionWindow, http.StatusUnprocessableEntity},
	{ErrInvalidLotSize, CodeInvalidLotSize, http.StatusBadRequest},
	{ErrPriceOutOfRange, CodePriceOutOfRange, http.StatusBadRequest},
	{ErrDuplicateSubscription, CodeDuplicateSubscription, http.StatusConflict},
	{ErrInvalidStateTransition, CodeInvalidStateTransition, http.StatusConflict},
	{ErrConflict, CodeConflict, http.StatusConflict},
	{ErrDuplicate, CodeDuplicate, http.StatusConflict},
	{ErrForbidden, CodeForbidden, http.StatusForbidden},
	{ErrNotFound, CodeNotFound, http.StatusNotFound},
	{ErrValidation, CodeValidation, http.StatusBadRequest},
}

// AppError carries an HTTP status and error code together with the underlying cause.
type AppError struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError. The code is derived from err when err wraps
// a known sentinel, otherwise it is CodeInternal.
func NewAppError(statusCode int, message string, err error) *AppError {
	code := CodeInternal
	if err != nil {
		if c, status, ok := lookup(err); ok {
			code = c
			if statusCode == 0 {
				statusCode = status
			}
		}
	}
	return &AppError{StatusCode: statusCode, Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: CodeNotFound, Message: message, Err: ErrNotFound}
}

// NewConflictError creates a retryable AppError wrapping ErrConflict.
func NewConflictError(message string, cause error) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: CodeConflict, Message: message, Err: errors.Join(ErrConflict, cause)}
}

// NewDuplicateError creates an AppError wrapping ErrDuplicate.
func NewDuplicateError(message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: CodeDuplicate, Message: message, Err: ErrDuplicate}
}

// Classify resolves the code and HTTP status for any error. Unknown errors are internal.
func Classify(err error) (ErrorCode, int) {
	if err == nil {
		return "", http.StatusOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != CodeInternal && appErr.Code != "" {
		status := appErr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return appErr.Code, status
	}
	if code, status, ok := lookup(err); ok {
		return code, status
	}
	return CodeInternal, http.StatusInternalServerError
}

// IsRetryable reports whether the failure is a transient infrastructure conflict.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

func lookup(err error) (ErrorCode, int, bool) {
	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			return s.code, s.status, true
		}
	}
	return "", 0, false
}
