package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// MessageClassifier is the contract consumed by inbound receivers and the
// command/query layer.
type MessageClassifier interface {
	ClassifyRequest(ctx context.Context, fields FieldMap) (MessageShape, error)
	ClassifyResponse(ctx context.Context, origin MessageShape, fields FieldMap) (MessageShape, error)
}
