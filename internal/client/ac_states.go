package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/sensibo/internal/constants"
	"github.com/fivetwenty-io/sensibo/internal/http"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

// ACStatesClient implements sensibo.ACStatesClient.
type ACStatesClient struct {
	httpClient *http.Client
}

// NewACStatesClient creates a new AC states client.
func NewACStatesClient(httpClient *http.Client) *ACStatesClient {
	return &ACStatesClient{
		httpClient: httpClient,
	}
}

// ACStatePatchRequest is the body of a property change.
type ACStatePatchRequest struct {
	CurrentACState sensibo.ACState `json:"currentAcState"`
	NewValue       interface{}     `json:"newValue"`
}

// GetACStates implements sensibo.ACStatesClient.GetACStates.
func (c *ACStatesClient) GetACStates(ctx context.Context, deviceID string, limit int) ([]sensibo.ACStateLog, error) {
	if deviceID == "" {
		return nil, sensibo.ErrDeviceIDRequired
	}

	if limit < 1 {
		limit = constants.DefaultACStateLimit
	}

	query := url.Values{
		constants.ParamLimit:  []string{strconv.Itoa(limit)},
		constants.ParamFields: []string{sensibo.ACStateFields},
	}

	var logs []sensibo.ACStateLog

	err := getResult(ctx, c.httpClient, podPath(deviceID, "acStates"), query, &logs)
	if err != nil {
		return nil, fmt.Errorf("listing AC states of %s: %w", deviceID, err)
	}

	return logs, nil
}

// GetACStateLog implements sensibo.ACStatesClient.GetACStateLog.
func (c *ACStatesClient) GetACStateLog(ctx context.Context, deviceID, logID string) (sensibo.ACStateLog, error) {
	if deviceID == "" {
		return nil, sensibo.ErrDeviceIDRequired
	}

	if logID == "" {
		return nil, sensibo.ErrLogIDRequired
	}

	var entry sensibo.ACStateLog

	err := getResult(ctx, c.httpClient, podPath(deviceID, "acStates", logID), fieldsQuery(sensibo.ACStateFields), &entry)
	if err != nil {
		return nil, fmt.Errorf("getting AC state log %s of %s: %w", logID, deviceID, err)
	}

	return entry, nil
}

// SetACStateProperty implements sensibo.ACStatesClient.SetACStateProperty.
func (c *ACStatesClient) SetACStateProperty(ctx context.Context, deviceID, name string, value interface{}, currentState sensibo.ACState) (interface{}, error) {
	if deviceID == "" {
		return nil, sensibo.ErrDeviceIDRequired
	}

	if name == "" {
		return nil, sensibo.ErrPropertyNameRequired
	}

	if currentState == nil {
		baseline, err := c.latestACState(ctx, deviceID)
		if err != nil {
			return nil, fmt.Errorf("setting %s on %s: %w", name, deviceID, err)
		}

		currentState = baseline
	}

	resp, err := c.httpClient.Patch(ctx, podPath(deviceID, "acStates", name), &ACStatePatchRequest{
		CurrentACState: currentState,
		NewValue:       value,
	})
	if err != nil {
		return nil, fmt.Errorf("setting %s on %s: %w", name, deviceID, err)
	}

	var result interface{}

	err = unwrapResult(resp.StatusCode, resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s change of %s: %w", name, deviceID, err)
	}

	return result, nil
}

// latestACState returns the acState of the newest log entry.
func (c *ACStatesClient) latestACState(ctx context.Context, deviceID string) (sensibo.ACState, error) {
	logs, err := c.GetACStates(ctx, deviceID, 1)
	if err != nil {
		return nil, err
	}

	if len(logs) == 0 {
		return nil, &sensibo.APIError{
			Kind:    sensibo.ErrorKindEnvelope,
			Message: "AC state history is empty",
			Err:     sensibo.ErrNoACStateHistory,
		}
	}

	state := logs[0].ACState()
	if state == nil {
		return nil, &sensibo.APIError{
			Kind:    sensibo.ErrorKindEnvelope,
			Message: "latest AC state log has no acState",
			Err:     sensibo.ErrACStateBaselineAbsent,
		}
	}

	return state, nil
}
