package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

const (
	operationClassifyRequest  = "classify_request"
	operationClassifyResponse = "classify_response"
)

type ClassifierDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorFactory    ErrorFactory
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
	TokenOracle     TokenStateOracle
}

// Classifier resolves the message shape of inbound OAuth 1.0 payloads. It holds
// no mutable state and is safe for concurrent use.
type Classifier struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	tokenOracle     TokenStateOracle
}

func NewClassifier(cfg Config, opts ...Option) (*Classifier, error) {
	builder := defaultClassifierBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.tokenOracle == nil {
		return nil, factoryError(
			builder.errorFactory,
			"core: token state oracle is required",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			ErrorDependencyMissing,
		)
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	provider, logger := glog.Resolve(finalConfig.ServiceName, builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if builder.loggerProvider != nil {
		if named := provider.GetLogger(finalConfig.ServiceName); named != nil {
			logger = glog.Ensure(named)
		}
	}

	return &Classifier{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		tokenOracle:     builder.tokenOracle,
	}, nil
}

func Setup(cfg Config, opts ...Option) (*Classifier, error) {
	return NewClassifier(cfg, opts...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (c *Classifier) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.config
}

func (c *Classifier) Dependencies() ClassifierDependencies {
	if c == nil {
		return ClassifierDependencies{}
	}
	return ClassifierDependencies{
		Logger:          c.logger,
		LoggerProvider:  c.loggerProvider,
		MetricsRecorder: c.metricsRecorder,
		ErrorFactory:    c.errorFactory,
		ErrorMapper:     c.errorMapper,
		ConfigProvider:  c.configProvider,
		OptionsResolver: c.optionsResolver,
		TokenOracle:     c.tokenOracle,
	}
}

// MapError converts err into the go-errors envelope used at transport edges.
func (c *Classifier) MapError(err error) error {
	if err == nil {
		return nil
	}
	if c == nil || c.errorMapper == nil {
		return err
	}
	mapped := c.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

// ClassifyRequest resolves an inbound request payload. It never reports
// ShapeNone: every payload lands in exactly one request shape. The token
// oracle is consulted only when both a consumer key and a token are present.
func (c *Classifier) ClassifyRequest(ctx context.Context, fields FieldMap) (shape MessageShape, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		c.observe(ctx, startedAt, operationClassifyRequest, shape, err)
	}()

	if c == nil {
		return ShapeNone, dependencyError("core: classifier is not configured")
	}
	if fields == nil {
		return ShapeNone, c.badInput("core: request fields are required")
	}

	hasConsumerKey := fields.Has(FieldConsumerKey)
	hasToken := fields.Has(FieldToken)

	switch {
	case hasConsumerKey && !hasToken:
		// a consumer asking for fresh temporary credentials has no token yet
		return ShapeRequestTokenRequest, nil
	case hasConsumerKey && hasToken:
		kind, lookupErr := c.lookupToken(ctx, fields.Get(FieldToken))
		if lookupErr != nil {
			return ShapeNone, lookupErr
		}
		if kind == TokenKindAccess {
			return ShapeProtectedResourceRequest, nil
		}
		return ShapeAccessTokenRequest, nil
	default:
		return ShapeUserAuthorizationRequest, nil
	}
}

// ClassifyResponse resolves a response payload. origin is the shape of the
// request that produced it, or ShapeNone when the receiver did not send that
// request (an end-user redirect). ShapeNone with a nil error means the payload
// should be dropped; a ProtocolViolationError aborts the exchange.
func (c *Classifier) ClassifyResponse(ctx context.Context, origin MessageShape, fields FieldMap) (shape MessageShape, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		c.observe(ctx, startedAt, operationClassifyResponse, shape, err)
	}()

	if c == nil {
		return ShapeNone, dependencyError("core: classifier is not configured")
	}
	if fields == nil {
		return ShapeNone, c.badInput("core: response fields are required")
	}

	// every response carries a token
	if !fields.Has(FieldToken) {
		return ShapeNone, nil
	}
	if origin == ShapeNone {
		return ShapeUserAuthorizationResponse, nil
	}
	if !fields.Has(FieldTokenSecret) {
		c.logWithLevel(ctx, c.anomalyLevel(), "oauth1 direct response dropped: missing token secret", map[string]any{
			"operation":     operationClassifyResponse,
			"origin_shape":  origin.String(),
			"missing_field": FieldTokenSecret,
		})
		return ShapeNone, nil
	}

	switch origin {
	case ShapeRequestTokenRequest:
		return ShapeUnauthorizedRequestTokenResponse, nil
	case ShapeAccessTokenRequest:
		return ShapeGrantedAccessTokenResponse, nil
	default:
		c.logError(ctx, "oauth1 protocol violation: unexpected direct response", map[string]any{
			"operation":    operationClassifyResponse,
			"origin_shape": origin.String(),
		})
		return ShapeNone, &ProtocolViolationError{Origin: origin}
	}
}

func (c *Classifier) lookupToken(ctx context.Context, token string) (TokenKind, error) {
	if c.tokenOracle == nil {
		return "", c.dependencyMissing("core: token state oracle is required")
	}
	kind, err := c.tokenOracle.Classify(ctx, token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return "", &TokenLookupError{Token: token, Cause: err}
		}
		return "", err
	}
	if !kind.Valid() {
		return "", fmt.Errorf("%w: oracle reported %q", ErrInvalidTokenKind, kind)
	}
	return kind, nil
}

func (c *Classifier) anomalyLevel() string {
	level := strings.ToLower(strings.TrimSpace(c.config.Diagnostics.AnomalyLevel))
	if level == "" {
		return AnomalyLevelWarn
	}
	return level
}
