package core

import (
	"errors"
	"testing"
)

func TestMessageShape_Partitions(t *testing.T) {
	for _, shape := range RequestShapes() {
		if !shape.IsRequest() || shape.IsResponse() {
			t.Fatalf("expected %s to be a request shape only", shape)
		}
	}
	for _, shape := range ResponseShapes() {
		if !shape.IsResponse() || shape.IsRequest() {
			t.Fatalf("expected %s to be a response shape only", shape)
		}
	}
	if ShapeNone.IsRequest() || ShapeNone.IsResponse() {
		t.Fatalf("expected none to be neither request nor response")
	}
	if ShapeUserAuthorizationResponse.IsDirectResponse() {
		t.Fatalf("expected user authorization response to be indirect")
	}
	if !ShapeGrantedAccessTokenResponse.IsDirectResponse() {
		t.Fatalf("expected granted access token response to be direct")
	}
}

func TestParseMessageShape(t *testing.T) {
	shape, err := ParseMessageShape(" Access_Token_Request ")
	if err != nil {
		t.Fatalf("parse shape: %v", err)
	}
	if shape != ShapeAccessTokenRequest {
		t.Fatalf("expected %s, got %s", ShapeAccessTokenRequest, shape)
	}
	if shape, err := ParseMessageShape(""); err != nil || shape != ShapeNone {
		t.Fatalf("expected empty input to parse as none, got %s %v", shape, err)
	}
	if _, err := ParseMessageShape("bogus"); !errors.Is(err, ErrInvalidMessageShape) {
		t.Fatalf("expected ErrInvalidMessageShape, got %v", err)
	}
	if ShapeNone.String() != "none" {
		t.Fatalf("expected none string, got %q", ShapeNone.String())
	}
	if shape, err := ParseMessageShape(ShapeNone.String()); err != nil || shape != ShapeNone {
		t.Fatalf("expected none string to round trip, got %s %v", shape, err)
	}
}

func TestMessageShape_ValidIsExact(t *testing.T) {
	for _, shape := range append(RequestShapes(), ResponseShapes()...) {
		if !shape.Valid() {
			t.Fatalf("expected %s to be valid", shape)
		}
	}
	if !ShapeNone.Valid() {
		t.Fatalf("expected none to be valid")
	}
	for _, raw := range []string{"Request_Token_Request", " access_token_request", "none", "bogus"} {
		if MessageShape(raw).Valid() {
			t.Fatalf("expected %q to be invalid", raw)
		}
	}
}

func TestParseTokenKind(t *testing.T) {
	kind, err := ParseTokenKind("ACCESS")
	if err != nil || kind != TokenKindAccess {
		t.Fatalf("expected access kind, got %q %v", kind, err)
	}
	if _, err := ParseTokenKind(""); !errors.Is(err, ErrInvalidTokenKind) {
		t.Fatalf("expected ErrInvalidTokenKind, got %v", err)
	}
}

func TestFieldMap_Helpers(t *testing.T) {
	var absent FieldMap
	if absent.Has(FieldToken) {
		t.Fatalf("expected nil field map to report no fields")
	}
	if absent.Clone() != nil {
		t.Fatalf("expected nil clone for nil field map")
	}

	fields := FieldMap{FieldToken: "t1", "scope": "photos", FieldNonce: "n"}
	extra := fields.Extra()
	if len(extra) != 1 || extra["scope"] != "photos" {
		t.Fatalf("expected only non-oauth extra data, got %#v", extra)
	}
	cloned := fields.Clone()
	cloned[FieldToken] = "changed"
	if fields.Get(FieldToken) != "t1" {
		t.Fatalf("expected clone to be independent")
	}
}
