// Package prometheus exports classifier metrics through client_golang.
package prometheus

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-oauth1/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Recorder implements core.MetricsRecorder. Metric names have dots and
// dashes replaced with underscores; tag keys become label names. A vector is
// created per name and label-key set on first use.
type Recorder struct {
	registerer prom.Registerer
	namespace  string
	buckets    []float64

	mu         sync.Mutex
	counters   map[string]*prom.CounterVec
	histograms map[string]*prom.HistogramVec
}

type Option func(*Recorder)

func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		r.namespace = sanitizeName(namespace)
	}
}

// WithBuckets overrides the histogram buckets, in milliseconds.
func WithBuckets(buckets ...float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = append([]float64(nil), buckets...)
		}
	}
}

func NewRecorder(registerer prom.Registerer, opts ...Option) *Recorder {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}
	recorder := &Recorder{
		registerer: registerer,
		buckets:    []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		counters:   map[string]*prom.CounterVec{},
		histograms: map[string]*prom.HistogramVec{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(recorder)
		}
	}
	return recorder
}

func (r *Recorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil || value < 0 {
		return
	}
	keys := labelKeys(tags)
	vec := r.counterVec(sanitizeName(name), keys)
	if vec == nil {
		return
	}
	vec.With(labels(keys, tags)).Add(float64(value))
}

func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	keys := labelKeys(tags)
	vec := r.histogramVec(sanitizeName(name), keys)
	if vec == nil {
		return
	}
	vec.With(labels(keys, tags)).Observe(value)
}

func (r *Recorder) counterVec(name string, keys []string) *prom.CounterVec {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := vecID(name, keys)
	if vec, ok := r.counters[id]; ok {
		return vec
	}
	vec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: r.namespace,
		Name:      name,
		Help:      "go-oauth1 counter " + name,
	}, keys)
	if err := r.registerer.Register(vec); err != nil {
		var already prom.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil
		}
		existing, ok := already.ExistingCollector.(*prom.CounterVec)
		if !ok {
			return nil
		}
		vec = existing
	}
	r.counters[id] = vec
	return vec
}

func (r *Recorder) histogramVec(name string, keys []string) *prom.HistogramVec {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := vecID(name, keys)
	if vec, ok := r.histograms[id]; ok {
		return vec
	}
	vec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: r.namespace,
		Name:      name,
		Help:      "go-oauth1 histogram " + name,
		Buckets:   r.buckets,
	}, keys)
	if err := r.registerer.Register(vec); err != nil {
		var already prom.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil
		}
		existing, ok := already.ExistingCollector.(*prom.HistogramVec)
		if !ok {
			return nil
		}
		vec = existing
	}
	r.histograms[id] = vec
	return vec
}

func labelKeys(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, sanitizeName(key))
	}
	sort.Strings(keys)
	return keys
}

func labels(keys []string, tags map[string]string) prom.Labels {
	out := make(prom.Labels, len(keys))
	for key, value := range tags {
		out[sanitizeName(key)] = value
	}
	return out
}

func vecID(name string, keys []string) string {
	return name + "|" + strings.Join(keys, ",")
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	return strings.NewReplacer(".", "_", "-", "_", " ", "_", ":", "_").Replace(name)
}

var _ core.MetricsRecorder = (*Recorder)(nil)
