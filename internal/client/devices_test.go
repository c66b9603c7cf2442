package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

func TestDevicesClient_ListDevices(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.respond(http.MethodGet, "/users/me/pods", `{"status":"success","result":[{"id":"d1"}]}`)

	devices, err := newTestClient(t, api).ListDevices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []sensibo.Device{{"id": "d1"}}, devices)

	requests := api.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodGet, requests[0].Method)
	assert.Equal(t, testAPIKey, requests[0].Query.Get("apiKey"))
	assert.Equal(t, sensibo.DeviceFields, requests[0].Query.Get("fields"))
}

func TestDevicesClient_GetDevice(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.respond(http.MethodGet, "/pods/abc123", `{"status":"success","result":{
		"id":"abc123",
		"room":{"name":"Bedroom","icon":"bedroom"},
		"acState":{"on":true,"mode":"cool","targetTemperature":22},
		"connectionStatus":{"isAlive":true},
		"isBatteryLow":false
	}}`)

	device, err := newTestClient(t, api).GetDevice(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", device.ID())
	assert.Equal(t, "Bedroom", device.RoomName())
	assert.True(t, device.Connected())
	assert.False(t, device.IsBatteryLow())
	assert.True(t, device.ACState().On())
	assert.Equal(t, "cool", device.ACState().Mode())

	// The payload is passed through unchanged.
	assert.Equal(t, map[string]interface{}{"name": "Bedroom", "icon": "bedroom"}, device["room"])

	requests := api.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, "/pods/abc123", requests[0].Path)
	assert.Equal(t, testAPIKey, requests[0].Query.Get("apiKey"))
	assert.Equal(t, sensibo.DeviceFields, requests[0].Query.Get("fields"))
}

func TestDevicesClient_GetDevice_EscapesID(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.respond(http.MethodGet, "/pods/a%2Fb", `{"result":{"id":"a/b"}}`)

	device, err := newTestClient(t, api).GetDevice(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", device.ID())
}

func TestDevicesClient_GetDevice_RequiresID(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)

	_, err := newTestClient(t, api).GetDevice(context.Background(), "")
	require.ErrorIs(t, err, sensibo.ErrDeviceIDRequired)
	assert.Empty(t, api.recorded())
}

func TestDevicesClient_GetMeasurements(t *testing.T) {
	t.Parallel()

	t.Run("returns the first reading", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.respond(http.MethodGet, "/pods/abc/measurements", `{"result":[{"temperature":21.5},{"temperature":20.0}]}`)

		measurement, err := newTestClient(t, api).GetMeasurements(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, sensibo.Measurement{"temperature": 21.5}, measurement)

		requests := api.recorded()
		require.Len(t, requests, 1)
		assert.Equal(t, sensibo.MeasurementFields, requests[0].Query.Get("fields"))
		assert.Equal(t, testAPIKey, requests[0].Query.Get("apiKey"))
	})

	t.Run("accessors", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.respond(http.MethodGet, "/pods/abc/measurements", `{"result":[{
			"temperature":23.4,"humidity":51.2,"batteryVoltage":3000,
			"time":{"time":"2024-05-01T10:00:00.123Z","secondsAgo":12}
		}]}`)

		measurement, err := newTestClient(t, api).GetMeasurements(context.Background(), "abc")
		require.NoError(t, err)

		temperature, ok := measurement.Temperature()
		assert.True(t, ok)
		assert.InDelta(t, 23.4, temperature, 0.0001)

		humidity, ok := measurement.Humidity()
		assert.True(t, ok)
		assert.InDelta(t, 51.2, humidity, 0.0001)

		voltage, ok := measurement.BatteryVoltage()
		assert.True(t, ok)
		assert.InDelta(t, 3000.0, voltage, 0.0001)

		assert.Equal(t, 2024, measurement.Time().Year())
	})

	t.Run("empty sequence is an envelope error", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.respond(http.MethodGet, "/pods/abc/measurements", `{"result":[]}`)

		measurement, err := newTestClient(t, api).GetMeasurements(context.Background(), "abc")
		require.Error(t, err)
		assert.Nil(t, measurement)
		assert.ErrorIs(t, err, sensibo.ErrNoMeasurements)
		assert.True(t, sensibo.IsEnvelopeError(err))
	})
}

func TestDevicesClient_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "not json",
			status: http.StatusOK,
			body:   "<html>maintenance</html>",
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, sensibo.IsDecodeError(err))
			},
		},
		{
			name:   "missing result",
			status: http.StatusOK,
			body:   `{"status":"success"}`,
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, sensibo.IsEnvelopeError(err))
				assert.ErrorIs(t, err, sensibo.ErrMissingResult)
			},
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"status":"error","reason":"Unauthorized","message":"bad api key"}`,
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, sensibo.IsUnauthorized(err))

				apiErr := &sensibo.APIError{}
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "bad api key", apiErr.Message)
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.respondStatus(http.MethodGet, "/users/me/pods", testCase.status, testCase.body)

			devices, err := newTestClient(t, api).ListDevices(context.Background())
			require.Error(t, err)
			assert.Nil(t, devices)
			testCase.check(t, err)
		})
	}
}
