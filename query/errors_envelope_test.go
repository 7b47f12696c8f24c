package query

import (
	"context"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-oauth1/core"
)

func TestClassifyRequestMessage_ValidateReturnsRichError(t *testing.T) {
	err := (ClassifyRequestMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.ErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ErrorBadInput, rich.TextCode)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected %d code, got %d", http.StatusBadRequest, rich.Code)
	}
	validation := rich.AllValidationErrors()
	if len(validation) == 0 {
		t.Fatalf("expected validation errors in envelope")
	}
	if validation[0].Field != "fields" {
		t.Fatalf("expected fields validation field, got %q", validation[0].Field)
	}
}

func TestClassifyResponseMessage_ValidateRejectsUnknownOrigin(t *testing.T) {
	err := (ClassifyResponseMessage{Origin: "bogus", Fields: core.FieldMap{}}).Validate()
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	validation := rich.AllValidationErrors()
	if len(validation) == 0 || validation[0].Field != "origin" {
		t.Fatalf("expected origin validation field, got %#v", validation)
	}

	if err := (ClassifyResponseMessage{Fields: core.FieldMap{}}).Validate(); err != nil {
		t.Fatalf("expected absent origin to be valid, got %v", err)
	}
}

func TestClassifyRequestQuery_NilClassifierReturnsRichError(t *testing.T) {
	var q *ClassifyRequestQuery
	_, err := q.Query(context.Background(), ClassifyRequestMessage{})
	if err == nil {
		t.Fatalf("expected dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.TextCode != core.ErrorDependencyMissing {
		t.Fatalf("expected %q text code, got %q", core.ErrorDependencyMissing, rich.TextCode)
	}
	if rich.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d code, got %d", http.StatusInternalServerError, rich.Code)
	}
}
