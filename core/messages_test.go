package core

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestDecodeMessage_TypedShapes(t *testing.T) {
	msg, err := DecodeMessage(ShapeAccessTokenRequest, FieldMap{
		FieldConsumerKey: "ck1",
		FieldToken:       "rt1",
		FieldVerifier:    "v1",
		"realm_hint":     "photos",
	})
	if err != nil {
		t.Fatalf("decode access token request: %v", err)
	}
	typed, ok := msg.(AccessTokenRequest)
	if !ok {
		t.Fatalf("expected AccessTokenRequest, got %T", msg)
	}
	if typed.ConsumerKey != "ck1" || typed.RequestToken != "rt1" || typed.Verifier != "v1" {
		t.Fatalf("unexpected decoded message: %#v", typed)
	}
	if typed.ExtraData()["realm_hint"] != "photos" {
		t.Fatalf("expected extra data to carry non-oauth parameters")
	}
	if typed.Shape() != ShapeAccessTokenRequest {
		t.Fatalf("expected shape round trip, got %s", typed.Shape())
	}

	msg, err = DecodeMessage(ShapeUnauthorizedRequestTokenResponse, FieldMap{
		FieldToken:             "rt1",
		FieldTokenSecret:       "s1",
		FieldCallbackConfirmed: "true",
	})
	if err != nil {
		t.Fatalf("decode request token response: %v", err)
	}
	response := msg.(UnauthorizedRequestTokenResponse)
	if !response.CallbackConfirmed || response.TokenSecret != "s1" {
		t.Fatalf("unexpected decoded response: %#v", response)
	}

	msg, err = DecodeMessage(ShapeUserAuthorizationRequest, FieldMap{})
	if err != nil {
		t.Fatalf("decode empty user authorization request: %v", err)
	}
	if msg.Shape() != ShapeUserAuthorizationRequest {
		t.Fatalf("expected user authorization request, got %s", msg.Shape())
	}
}

func TestDecodeMessage_MissingRequiredField(t *testing.T) {
	_, err := DecodeMessage(ShapeGrantedAccessTokenResponse, FieldMap{FieldToken: "at1"})
	if err == nil {
		t.Fatalf("expected missing token secret error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.TextCode != ErrorBadInput {
		t.Fatalf("expected %q text code, got %q", ErrorBadInput, rich.TextCode)
	}
	if rich.Metadata["field"] != FieldTokenSecret {
		t.Fatalf("expected field metadata, got %#v", rich.Metadata)
	}
}

func TestDecodeMessage_RejectsNoneShape(t *testing.T) {
	if _, err := DecodeMessage(ShapeNone, FieldMap{}); err == nil {
		t.Fatalf("expected error decoding none shape")
	}
	if _, err := DecodeMessage(ShapeRequestTokenRequest, nil); err == nil {
		t.Fatalf("expected error decoding nil fields")
	}
}
