package inbound

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-oauth1/core"
)

const (
	AuthorizationScheme = "OAuth"
	FormContentType     = "application/x-www-form-urlencoded"
	RealmParameter      = "realm"

	// MaxBodyBytes bounds how much of a form body or direct response is read.
	MaxBodyBytes int64 = 1 << 20
)

var headerParamExp = regexp.MustCompile(`^\s*([A-Za-z0-9_.~%-]+)\s*=\s*"([^"]*)"\s*$`)

// ExtractRequestFields collects the parameters of an OAuth request. When the
// same parameter appears in more than one location the Authorization header
// wins over the body, and the body wins over the query string. The request
// body is restored after reading.
func ExtractRequestFields(r *http.Request) (core.FieldMap, error) {
	if r == nil {
		return nil, inboundBadInput("inbound: request is nil", nil)
	}

	fields := core.FieldMap{}
	if r.URL != nil {
		mergeValues(fields, r.URL.Query())
	}

	body, err := formBodyValues(r)
	if err != nil {
		return nil, err
	}
	mergeValues(fields, body)

	header, err := authorizationHeaderValues(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	for key, value := range header {
		fields[key] = value
	}
	return fields, nil
}

// ExtractResponseFields parses a form-encoded direct response body.
func ExtractResponseFields(body io.Reader) (core.FieldMap, error) {
	if body == nil {
		return nil, inboundBadInput("inbound: response body is nil", nil)
	}
	raw, err := readLimited(body)
	if err != nil {
		return nil, err
	}
	values, err := url.ParseQuery(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, inboundWrapError(
			err,
			goerrors.CategoryBadInput,
			"inbound: response body is not form encoded",
			http.StatusBadRequest,
			core.ErrorBadInput,
			nil,
		)
	}
	fields := core.FieldMap{}
	mergeValues(fields, values)
	return fields, nil
}

// ParseAuthorizationHeader returns the protocol parameters carried by an
// OAuth Authorization header value. The realm is dropped. Headers using any
// other scheme yield an empty map.
func ParseAuthorizationHeader(header string) (core.FieldMap, error) {
	values, err := authorizationHeaderValues(header)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = core.FieldMap{}
	}
	return values, nil
}

func authorizationHeaderValues(header string) (core.FieldMap, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, nil
	}
	scheme, params, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, AuthorizationScheme) {
		return nil, nil
	}

	fields := core.FieldMap{}
	params = strings.TrimSpace(params)
	if params == "" {
		return fields, nil
	}
	for _, part := range strings.Split(params, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		match := headerParamExp.FindStringSubmatch(part)
		if match == nil {
			return nil, inboundBadInput(
				"inbound: malformed authorization header parameter",
				map[string]any{"parameter": strings.TrimSpace(part)},
			)
		}
		name, err := url.PathUnescape(match[1])
		if err != nil {
			return nil, headerDecodeError(err, match[1])
		}
		if name == RealmParameter {
			continue
		}
		value, err := url.PathUnescape(match[2])
		if err != nil {
			return nil, headerDecodeError(err, name)
		}
		fields[name] = value
	}
	return fields, nil
}

func headerDecodeError(err error, name string) error {
	return inboundWrapError(
		err,
		goerrors.CategoryBadInput,
		fmt.Sprintf("inbound: authorization header parameter %q is not percent encoded", name),
		http.StatusBadRequest,
		core.ErrorBadInput,
		map[string]any{"parameter": name},
	)
}

func formBodyValues(r *http.Request) (url.Values, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != FormContentType {
		return nil, nil
	}

	raw, err := readLimited(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, inboundWrapError(
			err,
			goerrors.CategoryBadInput,
			"inbound: request body is not form encoded",
			http.StatusBadRequest,
			core.ErrorBadInput,
			nil,
		)
	}
	return values, nil
}

func readLimited(body io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes+1))
	if err != nil {
		return nil, inboundWrapError(
			err,
			goerrors.CategoryBadInput,
			"inbound: read body",
			http.StatusBadRequest,
			core.ErrorBadInput,
			nil,
		)
	}
	if int64(len(raw)) > MaxBodyBytes {
		return nil, inboundBadInput("inbound: body too large", map[string]any{"limit_bytes": MaxBodyBytes})
	}
	return raw, nil
}

// first value wins, matching url.Values.Get
func mergeValues(fields core.FieldMap, values url.Values) {
	for key, list := range values {
		value := ""
		if len(list) > 0 {
			value = list[0]
		}
		fields[key] = value
	}
}
