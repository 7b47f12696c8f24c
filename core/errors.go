package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorBadInput          = "OAUTH1_BAD_INPUT"
	ErrorTokenUnknown      = "OAUTH1_TOKEN_UNKNOWN"
	ErrorProtocolViolation = "OAUTH1_PROTOCOL_VIOLATION"
	ErrorDependencyMissing = "OAUTH1_DEPENDENCY_MISSING"
	ErrorInternal          = "OAUTH1_INTERNAL_ERROR"
)

var ErrProtocolViolation = errors.New("core: protocol violation")

// ProtocolViolationError is fatal to the current exchange: a direct response
// arrived for a request shape that never receives one.
type ProtocolViolationError struct {
	Origin MessageShape
}

func (e *ProtocolViolationError) Error() string {
	if e == nil {
		return ErrProtocolViolation.Error()
	}
	return fmt.Sprintf("%s: unexpected direct response to %s", ErrProtocolViolation.Error(), e.Origin)
}

func (e *ProtocolViolationError) Unwrap() error {
	return ErrProtocolViolation
}

func (e *ProtocolViolationError) ToServiceError() *goerrors.Error {
	err := goerrors.New(e.Error(), goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorProtocolViolation)
	if e != nil {
		err.WithMetadata(map[string]any{"origin_shape": e.Origin.String()})
	}
	return err
}

// TokenLookupError reports a token the oracle does not know about. It is an
// input error for the caller.
type TokenLookupError struct {
	Token string
	Cause error
}

func (e *TokenLookupError) Error() string {
	if e == nil || e.Cause == nil {
		return ErrTokenNotFound.Error()
	}
	return "core: token lookup failed: " + e.Cause.Error()
}

func (e *TokenLookupError) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return ErrTokenNotFound
	}
	return errors.Join(ErrTokenNotFound, e.Cause)
}

func (e *TokenLookupError) ToServiceError() *goerrors.Error {
	return goerrors.New(e.Error(), goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorTokenUnknown)
}

func IsProtocolViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrProtocolViolation) {
		return true
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode == ErrorProtocolViolation
	}
	return false
}

func badInputError(message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func dependencyError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorDependencyMissing)
}

// factoryError builds the envelope through factory, then stamps the status and
// text code transport edges rely on.
func factoryError(factory ErrorFactory, message string, category goerrors.Category, status int, textCode string) *goerrors.Error {
	var err *goerrors.Error
	if factory != nil {
		err = factory(message, category)
	}
	if err == nil {
		err = goerrors.New(message, category)
	}
	return err.WithCode(status).WithTextCode(textCode)
}

func (c *Classifier) badInput(message string) *goerrors.Error {
	return factoryError(c.errorFactory, message, goerrors.CategoryBadInput, http.StatusBadRequest, ErrorBadInput)
}

func (c *Classifier) dependencyMissing(message string) *goerrors.Error {
	return factoryError(c.errorFactory, message, goerrors.CategoryInternal, http.StatusInternalServerError, ErrorDependencyMissing)
}

func oauthErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureErrorEnvelope(richErr)
	}
	var violation *ProtocolViolationError
	if errors.As(err, &violation) {
		return violation.ToServiceError()
	}
	var lookup *TokenLookupError
	if errors.As(err, &lookup) {
		return lookup.ToServiceError()
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case errors.Is(err, ErrTokenNotFound):
		return newOAuthError(err.Error(), goerrors.CategoryBadInput, ErrorTokenUnknown)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newOAuthError(err.Error(), goerrors.CategoryBadInput, ErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureErrorEnvelope(mapped)
}

func newOAuthError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = oauthHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryNotFound:
		return ErrorTokenUnknown
	default:
		return ErrorInternal
	}
}

func oauthHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
