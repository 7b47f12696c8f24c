package oauth1

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-oauth1/core"
	"github.com/goliatone/go-oauth1/inbound"
	oauth1query "github.com/goliatone/go-oauth1/query"
)

type Queries struct {
	ClassifyRequest  *oauth1query.ClassifyRequestQuery
	ClassifyResponse *oauth1query.ClassifyResponseQuery
}

type Facade struct {
	classifier core.MessageClassifier
	queries    Queries
	receiver   *inbound.Receiver
}

func NewFacade(classifier core.MessageClassifier) (*Facade, error) {
	if classifier == nil {
		return nil, goerrors.New("oauth1: classifier is required", goerrors.CategoryInternal).
			WithCode(http.StatusInternalServerError).
			WithTextCode(core.ErrorDependencyMissing)
	}
	return &Facade{
		classifier: classifier,
		queries: Queries{
			ClassifyRequest:  oauth1query.NewClassifyRequestQuery(classifier),
			ClassifyResponse: oauth1query.NewClassifyResponseQuery(classifier),
		},
		receiver: inbound.NewReceiver(classifier),
	}, nil
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Receiver() *inbound.Receiver {
	if f == nil {
		return nil
	}
	return f.receiver
}

func (f *Facade) Classifier() core.MessageClassifier {
	if f == nil {
		return nil
	}
	return f.classifier
}
