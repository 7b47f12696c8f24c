package inbound

import (
	"context"
	"io"
	"net/http"

	"github.com/goliatone/go-oauth1/core"
)

// Received is a classified inbound message. Message is nil when Shape is
// core.ShapeNone.
type Received struct {
	Shape   core.MessageShape
	Fields  core.FieldMap
	Message core.Message
}

func (r Received) Matched() bool {
	return !r.Shape.IsNone()
}

type Receiver struct {
	Classifier core.MessageClassifier
}

func NewReceiver(classifier core.MessageClassifier) *Receiver {
	return &Receiver{Classifier: classifier}
}

func (r *Receiver) ReceiveRequest(ctx context.Context, req *http.Request) (Received, error) {
	if r == nil || r.Classifier == nil {
		return Received{}, inboundDependencyMissing("inbound: classifier is required")
	}
	fields, err := ExtractRequestFields(req)
	if err != nil {
		return Received{}, err
	}
	shape, err := r.Classifier.ClassifyRequest(ctx, fields)
	if err != nil {
		return Received{Fields: fields}, err
	}
	return decodeReceived(shape, fields)
}

// ReceiveResponse classifies a direct response body. origin is the shape of
// the request that produced it, or core.ShapeNone for an indirect callback.
func (r *Receiver) ReceiveResponse(ctx context.Context, origin core.MessageShape, body io.Reader) (Received, error) {
	if r == nil || r.Classifier == nil {
		return Received{}, inboundDependencyMissing("inbound: classifier is required")
	}
	fields, err := ExtractResponseFields(body)
	if err != nil {
		return Received{}, err
	}
	return r.classifyResponse(ctx, origin, fields)
}

// ReceiveCallback classifies the query of a user authorization callback.
func (r *Receiver) ReceiveCallback(ctx context.Context, req *http.Request) (Received, error) {
	if r == nil || r.Classifier == nil {
		return Received{}, inboundDependencyMissing("inbound: classifier is required")
	}
	fields, err := ExtractRequestFields(req)
	if err != nil {
		return Received{}, err
	}
	return r.classifyResponse(ctx, core.ShapeNone, fields)
}

func (r *Receiver) classifyResponse(ctx context.Context, origin core.MessageShape, fields core.FieldMap) (Received, error) {
	shape, err := r.Classifier.ClassifyResponse(ctx, origin, fields)
	if err != nil {
		return Received{Fields: fields}, err
	}
	return decodeReceived(shape, fields)
}

func decodeReceived(shape core.MessageShape, fields core.FieldMap) (Received, error) {
	if shape.IsNone() {
		return Received{Shape: core.ShapeNone, Fields: fields}, nil
	}
	message, err := core.DecodeMessage(shape, fields)
	if err != nil {
		return Received{Shape: shape, Fields: fields}, err
	}
	return Received{Shape: shape, Fields: fields, Message: message}, nil
}
