// Package inbound turns HTTP traffic into classified OAuth 1.0 messages.
//
// Protocol parameters are collected from the Authorization header, the
// form-encoded entity body and the request URI query, in that order of
// precedence, and handed to a core.MessageClassifier.
package inbound
