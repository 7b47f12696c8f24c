package core

import "strings"

const (
	FieldConsumerKey       = "oauth_consumer_key"
	FieldToken             = "oauth_token"
	FieldTokenSecret       = "oauth_token_secret"
	FieldSignature         = "oauth_signature"
	FieldSignatureMethod   = "oauth_signature_method"
	FieldNonce             = "oauth_nonce"
	FieldTimestamp         = "oauth_timestamp"
	FieldCallback          = "oauth_callback"
	FieldCallbackConfirmed = "oauth_callback_confirmed"
	FieldVerifier          = "oauth_verifier"
	FieldVersion           = "oauth_version"

	// ParameterPrefix marks protocol parameters; anything else is extra data.
	ParameterPrefix = "oauth_"
)

// FieldMap is the flat name/value payload of a single message. A nil map is an
// absent payload.
type FieldMap map[string]string

func (f FieldMap) Has(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f[name]
	return ok
}

func (f FieldMap) Get(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// Extra returns the parameters outside the oauth_ namespace.
func (f FieldMap) Extra() map[string]string {
	out := map[string]string{}
	for key, value := range f {
		if strings.HasPrefix(key, ParameterPrefix) {
			continue
		}
		out[key] = value
	}
	return out
}

func (f FieldMap) Clone() FieldMap {
	if f == nil {
		return nil
	}
	out := make(FieldMap, len(f))
	for key, value := range f {
		out[key] = value
	}
	return out
}
