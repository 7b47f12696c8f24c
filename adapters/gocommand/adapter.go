package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	"github.com/goliatone/go-oauth1/core"
	"github.com/goliatone/go-oauth1/query"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterQuery(qry any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(qry)
}

func (a *RegistryAdapter) AddResolver(key string, resolver command.Resolver) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.AddResolver(strings.TrimSpace(key), resolver)
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	if a == nil || a.registry == nil {
		return false
	}
	return a.registry.HasResolver(strings.TrimSpace(key))
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeQuery[T any, R any](qry command.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func SubscribeQueryFunc[T any, R any](qry command.QueryFunc[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

func RegisterAndSubscribeQuery[T any, R any](
	adapter *RegistryAdapter,
	qry command.Querier[T, R],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	subscription := SubscribeQuery(qry, runnerOpts...)
	if err := adapter.RegisterQuery(qry); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// ClassifierSubscriptions holds the dispatcher subscriptions for the
// classification queries.
type ClassifierSubscriptions struct {
	Request  commanddispatcher.Subscription
	Response commanddispatcher.Subscription
}

func (s ClassifierSubscriptions) Unsubscribe() {
	if s.Request != nil {
		s.Request.Unsubscribe()
	}
	if s.Response != nil {
		s.Response.Unsubscribe()
	}
}

// RegisterClassifierQueries registers and subscribes both classification
// queries against the same classifier.
func RegisterClassifierQueries(
	adapter *RegistryAdapter,
	classifier interface {
		query.RequestClassifier
		query.ResponseClassifier
	},
	runnerOpts ...runner.Option,
) (ClassifierSubscriptions, error) {
	if classifier == nil {
		return ClassifierSubscriptions{}, fmt.Errorf("gocommand: classifier is required")
	}
	requestSub, err := RegisterAndSubscribeQuery(adapter, query.NewClassifyRequestQuery(classifier), runnerOpts...)
	if err != nil {
		return ClassifierSubscriptions{}, err
	}
	responseSub, err := RegisterAndSubscribeQuery(adapter, query.NewClassifyResponseQuery(classifier), runnerOpts...)
	if err != nil {
		if requestSub != nil {
			requestSub.Unsubscribe()
		}
		return ClassifierSubscriptions{}, err
	}
	return ClassifierSubscriptions{Request: requestSub, Response: responseSub}, nil
}

func ClassifyRequest(ctx context.Context, fields core.FieldMap) (query.ClassificationResult, error) {
	return Query[query.ClassifyRequestMessage, query.ClassificationResult](ctx, query.ClassifyRequestMessage{
		Fields: fields,
	})
}

func ClassifyResponse(
	ctx context.Context,
	origin core.MessageShape,
	fields core.FieldMap,
) (query.ClassificationResult, error) {
	return Query[query.ClassifyResponseMessage, query.ClassificationResult](ctx, query.ClassifyResponseMessage{
		Origin: origin,
		Fields: fields,
	})
}
