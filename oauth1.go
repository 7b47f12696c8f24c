// Package oauth1 resolves the message shape of OAuth 1.0 exchanges.
//
// The classifier lives in core; this package re-exports its entry points and
// wires the query and inbound layers around it.
package oauth1

import "github.com/goliatone/go-oauth1/core"

type Config = core.Config

type Option = core.Option

type Classifier = core.Classifier

type ClassifierDependencies = core.ClassifierDependencies

type FieldMap = core.FieldMap
type MessageShape = core.MessageShape
type TokenKind = core.TokenKind
type TokenStateOracle = core.TokenStateOracle
type TokenKindMap = core.TokenKindMap
type Message = core.Message
type MetricsRecorder = core.MetricsRecorder

const (
	ShapeNone                             = core.ShapeNone
	ShapeRequestTokenRequest              = core.ShapeRequestTokenRequest
	ShapeAccessTokenRequest               = core.ShapeAccessTokenRequest
	ShapeUserAuthorizationRequest         = core.ShapeUserAuthorizationRequest
	ShapeProtectedResourceRequest         = core.ShapeProtectedResourceRequest
	ShapeUnauthorizedRequestTokenResponse = core.ShapeUnauthorizedRequestTokenResponse
	ShapeUserAuthorizationResponse        = core.ShapeUserAuthorizationResponse
	ShapeGrantedAccessTokenResponse       = core.ShapeGrantedAccessTokenResponse

	TokenKindRequest = core.TokenKindRequest
	TokenKindAccess  = core.TokenKindAccess
)

var (
	WithLogger           = core.WithLogger
	WithLoggerProvider   = core.WithLoggerProvider
	WithMetricsRecorder  = core.WithMetricsRecorder
	WithErrorFactory     = core.WithErrorFactory
	WithErrorMapper      = core.WithErrorMapper
	WithConfigProvider   = core.WithConfigProvider
	WithOptionsResolver  = core.WithOptionsResolver
	WithTokenStateOracle = core.WithTokenStateOracle

	ErrTokenNotFound     = core.ErrTokenNotFound
	ErrProtocolViolation = core.ErrProtocolViolation
	IsProtocolViolation  = core.IsProtocolViolation
	DecodeMessage        = core.DecodeMessage
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewClassifier(cfg Config, opts ...Option) (*Classifier, error) {
	return core.NewClassifier(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Classifier, error) {
	return core.Setup(cfg, opts...)
}
