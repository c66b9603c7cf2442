package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/sensibo/internal/constants"
	"github.com/fivetwenty-io/sensibo/internal/http"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

// DevicesClient implements sensibo.DevicesClient.
type DevicesClient struct {
	httpClient *http.Client
}

// NewDevicesClient creates a new devices client.
func NewDevicesClient(httpClient *http.Client) *DevicesClient {
	return &DevicesClient{
		httpClient: httpClient,
	}
}

// ListDevices implements sensibo.DevicesClient.ListDevices.
func (c *DevicesClient) ListDevices(ctx context.Context) ([]sensibo.Device, error) {
	var devices []sensibo.Device

	err := getResult(ctx, c.httpClient, constants.APIPathMyPods, fieldsQuery(sensibo.DeviceFields), &devices)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	return devices, nil
}

// GetDevice implements sensibo.DevicesClient.GetDevice.
func (c *DevicesClient) GetDevice(ctx context.Context, deviceID string) (sensibo.Device, error) {
	if deviceID == "" {
		return nil, sensibo.ErrDeviceIDRequired
	}

	var device sensibo.Device

	err := getResult(ctx, c.httpClient, podPath(deviceID), fieldsQuery(sensibo.DeviceFields), &device)
	if err != nil {
		return nil, fmt.Errorf("getting device %s: %w", deviceID, err)
	}

	return device, nil
}

// GetMeasurements implements sensibo.DevicesClient.GetMeasurements. Only the
// first reading of the returned sequence is kept.
func (c *DevicesClient) GetMeasurements(ctx context.Context, deviceID string) (sensibo.Measurement, error) {
	if deviceID == "" {
		return nil, sensibo.ErrDeviceIDRequired
	}

	var measurements []sensibo.Measurement

	err := getResult(ctx, c.httpClient, podPath(deviceID, "measurements"), fieldsQuery(sensibo.MeasurementFields), &measurements)
	if err != nil {
		return nil, fmt.Errorf("getting measurements of %s: %w", deviceID, err)
	}

	if len(measurements) == 0 {
		return nil, fmt.Errorf("getting measurements of %s: %w", deviceID, &sensibo.APIError{
			Kind:    sensibo.ErrorKindEnvelope,
			Message: "result holds no measurement",
			Err:     sensibo.ErrNoMeasurements,
		})
	}

	return measurements[0], nil
}

// getResult issues a GET and unwraps the envelope into out.
func getResult(ctx context.Context, httpClient *http.Client, path string, query url.Values, out interface{}) error {
	resp, err := httpClient.Get(ctx, path, query)
	if err != nil {
		return err
	}

	return unwrapResult(resp.StatusCode, resp.Body, out)
}

func fieldsQuery(fields string) url.Values {
	return url.Values{constants.ParamFields: []string{fields}}
}

// podPath joins escaped segments below /pods/{deviceID}.
func podPath(deviceID string, segments ...string) string {
	path := constants.APIPathPods + "/" + url.PathEscape(deviceID)

	for _, segment := range segments {
		path += "/" + url.PathEscape(segment)
	}

	return path
}
