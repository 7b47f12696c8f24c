package query

import (
	"context"

	"github.com/goliatone/go-oauth1/core"
)

type RequestClassifier interface {
	ClassifyRequest(ctx context.Context, fields core.FieldMap) (core.MessageShape, error)
}

type ResponseClassifier interface {
	ClassifyResponse(ctx context.Context, origin core.MessageShape, fields core.FieldMap) (core.MessageShape, error)
}

type ClassifyRequestQuery struct {
	classifier RequestClassifier
}

func NewClassifyRequestQuery(classifier RequestClassifier) *ClassifyRequestQuery {
	return &ClassifyRequestQuery{classifier: classifier}
}

func (q *ClassifyRequestQuery) Query(ctx context.Context, msg ClassifyRequestMessage) (ClassificationResult, error) {
	if q == nil || q.classifier == nil {
		return ClassificationResult{}, queryDependencyError("query: request classifier is required")
	}
	if err := msg.Validate(); err != nil {
		return ClassificationResult{}, err
	}
	shape, err := q.classifier.ClassifyRequest(ctx, msg.Fields)
	if err != nil {
		return ClassificationResult{}, err
	}
	return buildResult(shape, msg.Fields)
}

type ClassifyResponseQuery struct {
	classifier ResponseClassifier
}

func NewClassifyResponseQuery(classifier ResponseClassifier) *ClassifyResponseQuery {
	return &ClassifyResponseQuery{classifier: classifier}
}

func (q *ClassifyResponseQuery) Query(ctx context.Context, msg ClassifyResponseMessage) (ClassificationResult, error) {
	if q == nil || q.classifier == nil {
		return ClassificationResult{}, queryDependencyError("query: response classifier is required")
	}
	if err := msg.Validate(); err != nil {
		return ClassificationResult{}, err
	}
	shape, err := q.classifier.ClassifyResponse(ctx, msg.Origin, msg.Fields)
	if err != nil {
		return ClassificationResult{}, err
	}
	return buildResult(shape, msg.Fields)
}

func buildResult(shape core.MessageShape, fields core.FieldMap) (ClassificationResult, error) {
	if shape.IsNone() {
		return ClassificationResult{Shape: core.ShapeNone}, nil
	}
	message, err := core.DecodeMessage(shape, fields)
	if err != nil {
		return ClassificationResult{}, queryWrapValidation(err, "query: decode classified message")
	}
	return ClassificationResult{Shape: shape, Matched: true, Message: message}, nil
}
