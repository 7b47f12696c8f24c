package core

import (
	"context"
	"sort"
	"strings"
	"time"
)

const (
	statusMatched = "matched"
	statusNoMatch = "no_match"
	statusFailure = "failure"
)

func (c *Classifier) observe(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	shape MessageShape,
	err error,
) {
	if c == nil {
		return
	}
	status := statusMatched
	switch {
	case err != nil:
		status = statusFailure
	case shape == ShapeNone:
		status = statusNoMatch
	}

	tags := map[string]string{
		"operation": operation,
		"status":    status,
		"shape":     shape.String(),
	}
	prefix := c.metricPrefix()
	c.recordCounter(ctx, prefix+"."+operation+".total", 1, tags)
	c.recordHistogram(ctx, prefix+"."+operation+".duration_ms", durationMillis(startedAt), tags)
}

// durationMillis keeps sub-millisecond precision.
func durationMillis(startedAt time.Time) float64 {
	return float64(time.Since(startedAt).Microseconds()) / 1000
}

func (c *Classifier) metricPrefix() string {
	name := strings.TrimSpace(strings.ToLower(c.config.ServiceName))
	if name == "" {
		return "oauth1"
	}
	return strings.ReplaceAll(name, " ", "_")
}

func (c *Classifier) logError(ctx context.Context, message string, fields map[string]any) {
	c.logWithLevel(ctx, AnomalyLevelError, message, fields)
}

func (c *Classifier) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logger := c.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case AnomalyLevelError:
		logger.Error(message, args...)
	default:
		logger.Warn(message, args...)
	}
}

func (c *Classifier) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if c == nil || c.metricsRecorder == nil {
		return
	}
	c.metricsRecorder.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (c *Classifier) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if c == nil || c.metricsRecorder == nil {
		return
	}
	c.metricsRecorder.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
