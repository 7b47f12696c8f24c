package inbound

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-oauth1/core"
)

func TestParseAuthorizationHeader(t *testing.T) {
	fields, err := ParseAuthorizationHeader(`OAuth realm="Example",
		oauth_consumer_key="0685bd9184jfhq22",
		oauth_token="ad180jjd733klru7",
		oauth_signature="wOJIO9A2W5mFwDgiDvZbTSMK%2FPY%3D",
		oauth_version="1.0"`)
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if fields.Has(RealmParameter) {
		t.Fatalf("expected realm to be dropped")
	}
	if fields.Get(core.FieldConsumerKey) != "0685bd9184jfhq22" {
		t.Fatalf("unexpected consumer key %q", fields.Get(core.FieldConsumerKey))
	}
	if fields.Get(core.FieldSignature) != "wOJIO9A2W5mFwDgiDvZbTSMK/PY=" {
		t.Fatalf("expected percent-decoded signature, got %q", fields.Get(core.FieldSignature))
	}
}

func TestParseAuthorizationHeader_EmptyValueCountsAsPresent(t *testing.T) {
	fields, err := ParseAuthorizationHeader(`oauth oauth_consumer_key="ck1", oauth_token=""`)
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if !fields.Has(core.FieldToken) {
		t.Fatalf("expected empty oauth_token to be present")
	}
}

func TestParseAuthorizationHeader_OtherSchemesIgnored(t *testing.T) {
	fields, err := ParseAuthorizationHeader("Bearer abc.def")
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if len(fields) != 0 {
		t.Fatalf("expected no fields for bearer header, got %#v", fields)
	}
}

func TestParseAuthorizationHeader_MalformedReturnsRichError(t *testing.T) {
	_, err := ParseAuthorizationHeader(`OAuth oauth_consumer_key=ck1`)
	if err == nil {
		t.Fatalf("expected malformed header error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad_input category, got %q", rich.Category)
	}
	if rich.TextCode != core.ErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ErrorBadInput, rich.TextCode)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected %d code, got %d", http.StatusBadRequest, rich.Code)
	}
}

func TestExtractRequestFields_Precedence(t *testing.T) {
	req := httptest.NewRequest(
		http.MethodPost,
		"/oauth/access_token?oauth_token=from-query&oauth_nonce=n1&scope=photos",
		strings.NewReader("oauth_token=from-body&oauth_verifier=v1"),
	)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	req.Header.Set("Authorization", `OAuth oauth_consumer_key="ck1", oauth_token="from-header"`)

	fields, err := ExtractRequestFields(req)
	if err != nil {
		t.Fatalf("extract fields: %v", err)
	}
	if fields.Get(core.FieldToken) != "from-header" {
		t.Fatalf("expected header token to win, got %q", fields.Get(core.FieldToken))
	}
	if fields.Get(core.FieldVerifier) != "v1" || fields.Get(core.FieldNonce) != "n1" {
		t.Fatalf("expected body and query parameters to merge, got %#v", fields)
	}
	if fields.Get("scope") != "photos" {
		t.Fatalf("expected non-oauth query parameter to be kept")
	}

	restored, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("read restored body: %v", err)
	}
	if string(restored) != "oauth_token=from-body&oauth_verifier=v1" {
		t.Fatalf("expected body to be restored, got %q", restored)
	}
}

func TestExtractRequestFields_BodyOverQuery(t *testing.T) {
	req := httptest.NewRequest(
		http.MethodPost,
		"/oauth/request_token?oauth_consumer_key=from-query",
		strings.NewReader("oauth_consumer_key=from-body"),
	)
	req.Header.Set("Content-Type", FormContentType)

	fields, err := ExtractRequestFields(req)
	if err != nil {
		t.Fatalf("extract fields: %v", err)
	}
	if fields.Get(core.FieldConsumerKey) != "from-body" {
		t.Fatalf("expected body to win over query, got %q", fields.Get(core.FieldConsumerKey))
	}
}

func TestExtractRequestFields_IgnoresNonFormBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/resource", strings.NewReader(`{"oauth_token":"json"}`))
	req.Header.Set("Content-Type", "application/json")

	fields, err := ExtractRequestFields(req)
	if err != nil {
		t.Fatalf("extract fields: %v", err)
	}
	if fields.Has(core.FieldToken) {
		t.Fatalf("expected json body to be ignored")
	}
	if fields == nil {
		t.Fatalf("expected empty, non-nil field map")
	}
}

func TestExtractRequestFields_NilRequest(t *testing.T) {
	if _, err := ExtractRequestFields(nil); err == nil {
		t.Fatalf("expected nil request error")
	}
}

func TestExtractResponseFields(t *testing.T) {
	fields, err := ExtractResponseFields(strings.NewReader(
		"oauth_token=hh5s93j4hdidpola&oauth_token_secret=hdhd0244k9j7ao03&oauth_callback_confirmed=true\n",
	))
	if err != nil {
		t.Fatalf("extract response: %v", err)
	}
	if fields.Get(core.FieldTokenSecret) != "hdhd0244k9j7ao03" {
		t.Fatalf("unexpected token secret %q", fields.Get(core.FieldTokenSecret))
	}
	if fields.Get(core.FieldCallbackConfirmed) != "true" {
		t.Fatalf("expected trailing newline to be trimmed, got %q", fields.Get(core.FieldCallbackConfirmed))
	}

	if _, err := ExtractResponseFields(strings.NewReader("oauth_token=%zz")); err == nil {
		t.Fatalf("expected malformed body error")
	}
	if _, err := ExtractResponseFields(nil); err == nil {
		t.Fatalf("expected nil body error")
	}
}

func TestExtractResponseFields_TooLarge(t *testing.T) {
	body := strings.NewReader("oauth_token=" + strings.Repeat("a", int(MaxBodyBytes)))
	_, err := ExtractResponseFields(body)
	if err == nil {
		t.Fatalf("expected body too large error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != core.ErrorBadInput {
		t.Fatalf("expected bad input envelope, got %v", err)
	}
}
