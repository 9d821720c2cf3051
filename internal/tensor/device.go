package tensor

// DeviceType represents the device a tensor or buffer lives on.
type DeviceType int

// Supported devices.
const (
	Host DeviceType = iota
	Accelerator
)

// NumDeviceTypes is the number of device types, usable as an array length
// for per-device state.
const NumDeviceTypes = 2

// String returns a human-readable device name.
func (d DeviceType) String() string {
	switch d {
	case Host:
		return "host"
	case Accelerator:
		return "accelerator"
	default:
		return "unknown"
	}
}

// Valid reports whether d is a known device type.
func (d DeviceType) Valid() bool {
	return d == Host || d == Accelerator
}
