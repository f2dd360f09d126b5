// Package response maps raw Batch service responses to typed envelopes or typed errors.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// Build decodes raw into a Response when its status equals successCode.
// Any other status yields a *batch.ServiceError carrying the decoded error body;
// a body or header set that cannot be decoded yields a *batch.DecodingError.
func Build[B, H any](raw *http.Response, successCode int) (*batch.Response[B, H], error) {
	data, err := readBody(raw)
	if err != nil {
		return nil, &batch.DecodingError{Target: "response body", StatusCode: raw.StatusCode, Err: err}
	}

	if raw.StatusCode != successCode {
		return nil, serviceError(raw, data)
	}

	body, err := decodeBody[B](data)
	if err != nil {
		return nil, &batch.DecodingError{Target: typeName[B](), StatusCode: raw.StatusCode, Err: err}
	}

	headers, err := DecodeHeaders[H](raw.Header)
	if err != nil {
		return nil, &batch.DecodingError{Target: typeName[H](), StatusCode: raw.StatusCode, Err: err}
	}

	return &batch.Response[B, H]{
		Body:       body,
		Headers:    headers,
		StatusCode: raw.StatusCode,
		Raw:        raw,
	}, nil
}

// BuildPage decodes a list response into a Page.
func BuildPage[T any](raw *http.Response) (*batch.Page[T], error) {
	resp, err := Build[batch.ListResponse[T], batch.ResponseHeaders](raw, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return resp.Body.ToPage(), nil
}

func readBody(raw *http.Response) ([]byte, error) {
	if raw.Body == nil {
		return nil, nil
	}

	data, err := io.ReadAll(raw.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	_ = raw.Body.Close()
	raw.Body = io.NopCloser(bytes.NewReader(data))

	return data, nil
}

func serviceError(raw *http.Response, data []byte) error {
	svcErr := &batch.ServiceError{
		StatusCode: raw.StatusCode,
		RequestID:  raw.Header.Get(constants.HeaderRequestID),
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return svcErr
	}

	err := json.Unmarshal(data, &svcErr.Payload)
	if err != nil {
		return &batch.DecodingError{Target: "BatchError", StatusCode: raw.StatusCode, Err: err}
	}

	return svcErr
}

func decodeBody[B any](data []byte) (B, error) {
	var body B

	switch target := any(&body).(type) {
	case *batch.NoContent:
		return body, nil
	case *[]byte:
		*target = data

		return body, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return body, fmt.Errorf("empty body: %w", io.ErrUnexpectedEOF)
	}

	err := json.Unmarshal(data, &body)
	if err != nil {
		return body, fmt.Errorf("unmarshal: %w", err)
	}

	return body, nil
}

// DecodeHeaders decodes an HTTP header set into H using `header` struct tags.
// Header names are matched case-insensitively; RFC1123 dates decode into time.Time.
func DecodeHeaders[H any](header http.Header) (H, error) {
	var out H

	input := make(map[string]interface{}, len(header))
	for name, values := range header {
		if len(values) > 0 {
			input[strings.ToLower(name)] = values[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "header",
		WeaklyTypedInput: true,
		Result:           &out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(http.TimeFormat),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return out, fmt.Errorf("creating header decoder: %w", err)
	}

	err = decoder.Decode(input)
	if err != nil {
		return out, fmt.Errorf("decoding headers: %w", err)
	}

	return out, nil
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
