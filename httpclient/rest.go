package httpclient

import (
	"context"
	"encoding/json"
)

// TypedResponse wraps a response with a decoded body of type T.
type TypedResponse[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Data is the decoded response body.
	Data T
	// Raw is the undecoded response body.
	Raw []byte
}

// DoJSON executes req and decodes a JSON response body into T. An empty body
// leaves Data at its zero value. On a non-2xx status the classified *Error is
// returned together with the raw response so callers can inspect the remote
// error payload.
func DoJSON[T any](c *Client, ctx context.Context, req Request) (*TypedResponse[T], error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		if resp != nil {
			return &TypedResponse[T]{
				StatusCode: resp.StatusCode,
				Headers:    resp.Headers,
				Raw:        resp.Body,
			}, err
		}
		return nil, err
	}

	out := &TypedResponse[T]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Raw:        resp.Body,
	}
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &out.Data); err != nil {
			return out, NewDecodeError(resp.StatusCode, resp.Body, err)
		}
	}
	return out, nil
}
