package core

import (
	"fmt"
	"strings"
)

// Message is the typed form of a classified payload.
type Message interface {
	Shape() MessageShape
	ExtraData() map[string]string
}

type RequestTokenRequest struct {
	ConsumerKey string
	Callback    string
	Extra       map[string]string
}

func (RequestTokenRequest) Shape() MessageShape            { return ShapeRequestTokenRequest }
func (m RequestTokenRequest) ExtraData() map[string]string { return m.Extra }

type AccessTokenRequest struct {
	ConsumerKey  string
	RequestToken string
	Verifier     string
	Extra        map[string]string
}

func (AccessTokenRequest) Shape() MessageShape            { return ShapeAccessTokenRequest }
func (m AccessTokenRequest) ExtraData() map[string]string { return m.Extra }

// UserAuthorizationRequest is the end-user redirect to the service provider. It
// has no required fields.
type UserAuthorizationRequest struct {
	RequestToken string
	Callback     string
	Extra        map[string]string
}

func (UserAuthorizationRequest) Shape() MessageShape            { return ShapeUserAuthorizationRequest }
func (m UserAuthorizationRequest) ExtraData() map[string]string { return m.Extra }

type ProtectedResourceRequest struct {
	ConsumerKey string
	AccessToken string
	Extra       map[string]string
}

func (ProtectedResourceRequest) Shape() MessageShape            { return ShapeProtectedResourceRequest }
func (m ProtectedResourceRequest) ExtraData() map[string]string { return m.Extra }

type UnauthorizedRequestTokenResponse struct {
	RequestToken      string
	TokenSecret       string
	CallbackConfirmed bool
	Extra             map[string]string
}

func (UnauthorizedRequestTokenResponse) Shape() MessageShape {
	return ShapeUnauthorizedRequestTokenResponse
}
func (m UnauthorizedRequestTokenResponse) ExtraData() map[string]string { return m.Extra }

type UserAuthorizationResponse struct {
	RequestToken string
	Verifier     string
	Extra        map[string]string
}

func (UserAuthorizationResponse) Shape() MessageShape            { return ShapeUserAuthorizationResponse }
func (m UserAuthorizationResponse) ExtraData() map[string]string { return m.Extra }

type GrantedAccessTokenResponse struct {
	AccessToken string
	TokenSecret string
	Extra       map[string]string
}

func (GrantedAccessTokenResponse) Shape() MessageShape            { return ShapeGrantedAccessTokenResponse }
func (m GrantedAccessTokenResponse) ExtraData() map[string]string { return m.Extra }

// DecodeMessage maps a classified payload onto its typed message.
func DecodeMessage(shape MessageShape, fields FieldMap) (Message, error) {
	if fields == nil {
		return nil, badInputError("core: message fields are required", nil)
	}
	if err := requireFields(shape, fields); err != nil {
		return nil, err
	}
	extra := fields.Extra()

	switch shape {
	case ShapeRequestTokenRequest:
		return RequestTokenRequest{
			ConsumerKey: fields.Get(FieldConsumerKey),
			Callback:    fields.Get(FieldCallback),
			Extra:       extra,
		}, nil
	case ShapeAccessTokenRequest:
		return AccessTokenRequest{
			ConsumerKey:  fields.Get(FieldConsumerKey),
			RequestToken: fields.Get(FieldToken),
			Verifier:     fields.Get(FieldVerifier),
			Extra:        extra,
		}, nil
	case ShapeUserAuthorizationRequest:
		return UserAuthorizationRequest{
			RequestToken: fields.Get(FieldToken),
			Callback:     fields.Get(FieldCallback),
			Extra:        extra,
		}, nil
	case ShapeProtectedResourceRequest:
		return ProtectedResourceRequest{
			ConsumerKey: fields.Get(FieldConsumerKey),
			AccessToken: fields.Get(FieldToken),
			Extra:       extra,
		}, nil
	case ShapeUnauthorizedRequestTokenResponse:
		return UnauthorizedRequestTokenResponse{
			RequestToken:      fields.Get(FieldToken),
			TokenSecret:       fields.Get(FieldTokenSecret),
			CallbackConfirmed: strings.EqualFold(fields.Get(FieldCallbackConfirmed), "true"),
			Extra:             extra,
		}, nil
	case ShapeUserAuthorizationResponse:
		return UserAuthorizationResponse{
			RequestToken: fields.Get(FieldToken),
			Verifier:     fields.Get(FieldVerifier),
			Extra:        extra,
		}, nil
	case ShapeGrantedAccessTokenResponse:
		return GrantedAccessTokenResponse{
			AccessToken: fields.Get(FieldToken),
			TokenSecret: fields.Get(FieldTokenSecret),
			Extra:       extra,
		}, nil
	default:
		return nil, badInputError(
			fmt.Sprintf("core: cannot decode message shape %s", shape),
			map[string]any{"shape": shape.String()},
		)
	}
}

func requireFields(shape MessageShape, fields FieldMap) error {
	var required []string
	switch shape {
	case ShapeRequestTokenRequest:
		required = []string{FieldConsumerKey}
	case ShapeAccessTokenRequest, ShapeProtectedResourceRequest:
		required = []string{FieldConsumerKey, FieldToken}
	case ShapeUserAuthorizationResponse:
		required = []string{FieldToken}
	case ShapeUnauthorizedRequestTokenResponse, ShapeGrantedAccessTokenResponse:
		required = []string{FieldToken, FieldTokenSecret}
	}
	for _, name := range required {
		if !fields.Has(name) {
			return badInputError(
				fmt.Sprintf("core: %s is required for %s", name, shape),
				map[string]any{"shape": shape.String(), "field": name},
			)
		}
	}
	return nil
}
