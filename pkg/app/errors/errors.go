// Package errors classifies service failures so the HTTP layer can map them to
// status codes and safe client messages.
package errors

import (
	"errors"
	"net/http"
	"time"
)

// Category defines error category
type Category int

// Categories below CategoryDependencyFailure are caused by the client and are
// not logged as failures of the indexer itself.
const (
	// CategoryNoError is used for request tracking when a call returns no error.
	CategoryNoError Category = iota
	// CategoryDataError The client sent invalid data in the payload or parameters.
	CategoryDataError
	// CategoryUnauthorized The client did not present a valid admin token.
	CategoryUnauthorized
	// CategoryResourceNotFound The DAO, deploy or job does not exist (yet).
	CategoryResourceNotFound
	// CategoryNotSupported The operation is disabled by configuration.
	CategoryNotSupported
	// CategoryTooManyRequests The caller repeated an operation before its cooldown elapsed.
	CategoryTooManyRequests
	// CategoryDependencyFailure The chain node or database is failing.
	CategoryDependencyFailure
	// CategoryGeneralError The service failed in an unexpected way.
	CategoryGeneralError
)

var categoryNames = map[Category]string{
	CategoryNoError:           "CategoryNoError",
	CategoryDataError:         "CategoryDataError",
	CategoryUnauthorized:      "CategoryUnauthorized",
	CategoryResourceNotFound:  "CategoryResourceNotFound",
	CategoryNotSupported:      "CategoryNotSupported",
	CategoryTooManyRequests:   "CategoryTooManyRequests",
	CategoryDependencyFailure: "CategoryDependencyFailure",
	CategoryGeneralError:      "CategoryGeneralError",
}

var categoryStatus = map[Category]int{
	CategoryDataError:         http.StatusBadRequest,
	CategoryUnauthorized:      http.StatusUnauthorized,
	CategoryResourceNotFound:  http.StatusNotFound,
	CategoryNotSupported:      http.StatusMethodNotAllowed,
	CategoryTooManyRequests:   http.StatusTooManyRequests,
	CategoryDependencyFailure: http.StatusBadGateway,
	CategoryGeneralError:      http.StatusInternalServerError,
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryGeneralError]
}

// ServiceError carries a category, a client-safe message and the underlying cause.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
	// RetryAfter is set for CategoryTooManyRequests.
	RetryAfter time.Duration
}

// Error returns the underlying cause when there is one, the client message otherwise.
func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is matches a target whose text equals the client message.
func (err ServiceError) Is(target error) bool {
	return err.Message == target.Error()
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	if code, ok := categoryStatus[err.Category]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// Is checks that provided error is a ServiceError with desired Category
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

// IsInternalError reports whether err is the indexer's fault rather than the caller's.
// Errors that are not a ServiceError count as internal.
func IsInternalError(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Category >= CategoryDependencyFailure
	}
	return true
}

func newError(cat Category, err error, message, prefix string) error {
	if err == nil {
		err = errors.New(prefix + message)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError hides err behind "Internal Server Error"; err itself is only logged.
func GeneralError(err error) error {
	if err == nil {
		err = errors.New("internal server error")
	}
	return &ServiceError{
		Category: CategoryGeneralError,
		Message:  "Internal Server Error",
		Err:      err,
	}
}

// StoreError reports a failed store query as a 500 whose message carries the
// underlying cause.
func StoreError(err error) error {
	if err == nil {
		return GeneralError(nil)
	}
	return &ServiceError{
		Category: CategoryGeneralError,
		Message:  "Internal Server Error: " + err.Error(),
		Err:      err,
	}
}

// ResourceNotFoundError returns a 404 with message.
func ResourceNotFoundError(err error, message string) error {
	return newError(CategoryResourceNotFound, err, message, "resource not found: ")
}

// BadRequestError returns a 400 with message.
func BadRequestError(err error, message string) error {
	return newError(CategoryDataError, err, message, "bad request: ")
}

// NotSupportedError reports an operation this deployment has not enabled.
func NotSupportedError(err error, message string) error {
	return newError(CategoryNotSupported, err, message, "not supported: ")
}

// UnAuthorizedError returns a 401 with message.
func UnAuthorizedError(err error, message string) error {
	return newError(CategoryUnauthorized, err, message, "unauthorized: ")
}

// DependencyError reports a failing chain node or database. message is sent
// to the client, err is logged.
func DependencyError(err error, message string) error {
	return newError(CategoryDependencyFailure, err, message, "dependency failure: ")
}

// TooManyRequestsError returns a 429 that tells the client when to retry.
func TooManyRequestsError(err error, message string, retryAfter time.Duration) error {
	if err == nil {
		err = errors.New("too many requests")
	}
	return &ServiceError{
		Category:   CategoryTooManyRequests,
		Message:    message,
		Err:        err,
		RetryAfter: retryAfter,
	}
}
