package core

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMessageShape = errors.New("core: invalid message shape")

// MessageShape identifies one of the distinguishable OAuth 1.0 messages. The zero
// value ShapeNone means no match on the response path and an absent originating
// request when passed as context.
type MessageShape string

const (
	ShapeNone MessageShape = ""

	ShapeRequestTokenRequest      MessageShape = "request_token_request"
	ShapeAccessTokenRequest       MessageShape = "access_token_request"
	ShapeUserAuthorizationRequest MessageShape = "user_authorization_request"
	ShapeProtectedResourceRequest MessageShape = "protected_resource_request"

	ShapeUnauthorizedRequestTokenResponse MessageShape = "unauthorized_request_token_response"
	ShapeUserAuthorizationResponse        MessageShape = "user_authorization_response"
	ShapeGrantedAccessTokenResponse       MessageShape = "granted_access_token_response"
)

var requestShapes = []MessageShape{
	ShapeRequestTokenRequest,
	ShapeAccessTokenRequest,
	ShapeUserAuthorizationRequest,
	ShapeProtectedResourceRequest,
}

var responseShapes = []MessageShape{
	ShapeUnauthorizedRequestTokenResponse,
	ShapeUserAuthorizationResponse,
	ShapeGrantedAccessTokenResponse,
}

func RequestShapes() []MessageShape {
	return append([]MessageShape(nil), requestShapes...)
}

func ResponseShapes() []MessageShape {
	return append([]MessageShape(nil), responseShapes...)
}

func ParseMessageShape(value string) (MessageShape, error) {
	normalized := MessageShape(strings.TrimSpace(strings.ToLower(value)))
	if normalized == ShapeNone || normalized == "none" {
		return ShapeNone, nil
	}
	if normalized.Valid() {
		return normalized, nil
	}
	return ShapeNone, fmt.Errorf("%w: %q", ErrInvalidMessageShape, value)
}

func (s MessageShape) String() string {
	if s == ShapeNone {
		return "none"
	}
	return string(s)
}

// Valid reports whether s is exactly one of the declared shapes, ShapeNone
// included. No normalization is applied.
func (s MessageShape) Valid() bool {
	return s == ShapeNone || s.IsRequest() || s.IsResponse()
}

func (s MessageShape) IsNone() bool {
	return s == ShapeNone
}

func (s MessageShape) IsRequest() bool {
	switch s {
	case ShapeRequestTokenRequest,
		ShapeAccessTokenRequest,
		ShapeUserAuthorizationRequest,
		ShapeProtectedResourceRequest:
		return true
	default:
		return false
	}
}

func (s MessageShape) IsResponse() bool {
	switch s {
	case ShapeUnauthorizedRequestTokenResponse,
		ShapeUserAuthorizationResponse,
		ShapeGrantedAccessTokenResponse:
		return true
	default:
		return false
	}
}

// IsDirectResponse reports whether the shape travels back on the same HTTP
// exchange as its request rather than through an end-user redirect.
func (s MessageShape) IsDirectResponse() bool {
	return s == ShapeUnauthorizedRequestTokenResponse || s == ShapeGrantedAccessTokenResponse
}
