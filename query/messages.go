package query

import (
	"github.com/goliatone/go-oauth1/core"
)

const (
	TypeClassifyRequest  = "oauth1.query.classify_request"
	TypeClassifyResponse = "oauth1.query.classify_response"
)

type ClassifyRequestMessage struct {
	Fields core.FieldMap
}

func (ClassifyRequestMessage) Type() string { return TypeClassifyRequest }

func (m ClassifyRequestMessage) Validate() error {
	if m.Fields == nil {
		return queryValidationError("fields", "fields are required")
	}
	return nil
}

// ClassifyResponseMessage carries a response payload and the shape of the
// request it answers. Origin is core.ShapeNone for indirect responses.
type ClassifyResponseMessage struct {
	Origin core.MessageShape
	Fields core.FieldMap
}

func (ClassifyResponseMessage) Type() string { return TypeClassifyResponse }

func (m ClassifyResponseMessage) Validate() error {
	if m.Fields == nil {
		return queryValidationError("fields", "fields are required")
	}
	// origin is forwarded verbatim, so it must already be a declared constant
	if !m.Origin.Valid() {
		return queryValidationError("origin", "origin must be a known message shape")
	}
	return nil
}

type ClassificationResult struct {
	Shape   core.MessageShape
	Matched bool
	Message core.Message
}
