package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ MessageClassifier = (*Classifier)(nil)
	_ TokenStateOracle  = TokenKindMap(nil)

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
