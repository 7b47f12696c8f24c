package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-oauth1/core"
)

var (
	_ gocmd.Querier[ClassifyRequestMessage, ClassificationResult]  = (*ClassifyRequestQuery)(nil)
	_ gocmd.Querier[ClassifyResponseMessage, ClassificationResult] = (*ClassifyResponseQuery)(nil)

	_ RequestClassifier  = (*core.Classifier)(nil)
	_ ResponseClassifier = (*core.Classifier)(nil)
)
