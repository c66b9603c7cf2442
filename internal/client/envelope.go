package client

import (
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/sensibo/internal/constants"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

// envelope is the wrapper around every API payload.
type envelope struct {
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result"`
	Reason  string          `json:"reason"`
	Message string          `json:"message"`
}

// unwrapResult decodes body as an envelope and stores its result in out.
func unwrapResult(statusCode int, body []byte, out interface{}) error {
	var env envelope

	err := json.Unmarshal(body, &env)
	if err != nil {
		return &sensibo.APIError{
			Kind:       sensibo.ErrorKindDecode,
			StatusCode: statusCode,
			Message:    "response body is not a JSON object",
			Err:        err,
		}
	}

	if len(env.Result) == 0 || (env.Status == constants.EnvelopeStatusError && string(env.Result) == "null") {
		return &sensibo.APIError{
			Kind:       sensibo.ErrorKindEnvelope,
			StatusCode: statusCode,
			Status:     env.Status,
			Reason:     env.Reason,
			Message:    env.Message,
			Err:        sensibo.ErrMissingResult,
		}
	}

	err = json.Unmarshal(env.Result, out)
	if err != nil {
		return &sensibo.APIError{
			Kind:       sensibo.ErrorKindDecode,
			StatusCode: statusCode,
			Status:     env.Status,
			Message:    fmt.Sprintf("result has unexpected shape for %T", out),
			Err:        err,
		}
	}

	return nil
}
