package sensibo

import (
	"time"
)

// Field selectors sent as the "fields" query parameter. The server only
// returns the listed attributes.
const (
	DeviceFields      = "id,room,acState,measurements,piezoVibrationThreshold,remoteCapabilities,connectionStatus,isBatteryLow"
	ACStateFields     = "time,id,acState,reason,failureReason,changedProperties,causedByUser"
	MeasurementFields = "batteryVoltage,temperature,humidity,time"
)

// Object is an untyped JSON object as returned by the API.
type Object map[string]interface{}

// String returns the string value at key, or "" when absent or not a string.
func (o Object) String(key string) string {
	if value, ok := o[key].(string); ok {
		return value
	}

	return ""
}

// Float returns the numeric value at key.
func (o Object) Float(key string) (float64, bool) {
	value, ok := o[key].(float64)

	return value, ok
}

// Bool returns the boolean value at key.
func (o Object) Bool(key string) (bool, bool) {
	value, ok := o[key].(bool)

	return value, ok
}

// Object returns the nested object at key, or nil.
func (o Object) Object(key string) Object {
	if value, ok := o[key].(map[string]interface{}); ok {
		return value
	}

	return nil
}

// Device is a pod registered to the account. The payload is passed through
// unchanged; the accessors only read it.
type Device Object

// ID returns the device identifier.
func (d Device) ID() string { return Object(d).String("id") }

// RoomName returns room.name.
func (d Device) RoomName() string {
	return Object(d).Object("room").String("name")
}

// ACState returns the device's current AC state, or nil.
func (d Device) ACState() ACState {
	return ACState(Object(d).Object("acState"))
}

// IsBatteryLow reports the isBatteryLow flag.
func (d Device) IsBatteryLow() bool {
	low, _ := Object(d).Bool("isBatteryLow")

	return low
}

// Connected reports connectionStatus.isAlive.
func (d Device) Connected() bool {
	alive, _ := Object(d).Object("connectionStatus").Bool("isAlive")

	return alive
}

// Measurement is a single sensor reading.
type Measurement Object

// Temperature returns the temperature reading.
func (m Measurement) Temperature() (float64, bool) { return Object(m).Float("temperature") }

// Humidity returns the relative humidity reading.
func (m Measurement) Humidity() (float64, bool) { return Object(m).Float("humidity") }

// BatteryVoltage returns the battery voltage, when the pod reports one.
func (m Measurement) BatteryVoltage() (float64, bool) { return Object(m).Float("batteryVoltage") }

// Time returns time.time parsed as RFC 3339. Zero when absent.
func (m Measurement) Time() time.Time {
	return parseTime(Object(m).Object("time").String("time"))
}

// ACState is the full control-settings snapshot of a device
// (on, mode, targetTemperature, fanLevel, swing, temperatureUnit ...).
type ACState Object

// On reports whether the AC is switched on.
func (s ACState) On() bool {
	on, _ := Object(s).Bool("on")

	return on
}

// Mode returns the operating mode.
func (s ACState) Mode() string { return Object(s).String("mode") }

// TargetTemperature returns the set point.
func (s ACState) TargetTemperature() (float64, bool) {
	return Object(s).Float("targetTemperature")
}

// ACStateLog is one historical AC state change.
type ACStateLog Object

// ID returns the log entry identifier.
func (l ACStateLog) ID() string { return Object(l).String("id") }

// Status returns the entry status ("Success", "Failed" ...).
func (l ACStateLog) Status() string { return Object(l).String("status") }

// ACState returns the state snapshot embedded in the entry.
func (l ACStateLog) ACState() ACState {
	return ACState(Object(l).Object("acState"))
}

// Reason returns the reason code of the change.
func (l ACStateLog) Reason() string { return Object(l).String("reason") }

// Time returns time.time parsed as RFC 3339. Zero when absent.
func (l ACStateLog) Time() time.Time {
	return parseTime(Object(l).Object("time").String("time"))
}

// ChangedProperties returns the names of the properties changed by the entry.
func (l ACStateLog) ChangedProperties() []string {
	raw, ok := l["changedProperties"].([]interface{})
	if !ok {
		return nil
	}

	properties := make([]string, 0, len(raw))

	for _, item := range raw {
		if name, ok := item.(string); ok {
			properties = append(properties, name)
		}
	}

	return properties
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts
	}

	return time.Time{}
}
