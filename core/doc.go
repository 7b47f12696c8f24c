// Package core contains the OAuth 1.0 message-shape contracts and the classifier
// that resolves which message a flat parameter payload represents. Adapter
// packages (inbound extraction, token state stores, command/query wiring) depend
// on this package; core must not depend on them.
package core
