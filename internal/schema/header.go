package schema

import "strings"

// HeaderName identifies one of the seven fixed CEF headers.
type HeaderName string

// The allowed CEF header names. The set is closed and never changes after
// process start.
const (
	Version            HeaderName = "Version"
	DeviceVendor       HeaderName = "DeviceVendor"
	DeviceProduct      HeaderName = "DeviceProduct"
	DeviceVersion      HeaderName = "DeviceVersion"
	DeviceEventClassID HeaderName = "DeviceEventClassID"
	Name               HeaderName = "Name"
	Severity           HeaderName = "Severity"
)

// AllHeaders lists the headers in CEF wire order.
var AllHeaders = []HeaderName{
	Version,
	DeviceVendor,
	DeviceProduct,
	DeviceVersion,
	DeviceEventClassID,
	Name,
	Severity,
}

// ParseHeader resolves a raw header identifier. The second return is false
// for anything outside the closed set.
func ParseHeader(s string) (HeaderName, bool) {
	for _, h := range AllHeaders {
		if string(h) == s {
			return h, true
		}
	}

	return "", false
}

// HeaderList returns the allowed header names joined for use in error
// messages.
func HeaderList() string {
	names := make([]string, 0, len(AllHeaders))
	for _, h := range AllHeaders {
		names = append(names, string(h))
	}

	return strings.Join(names, ",")
}

// Method returns the accessor method name on the cef capability interfaces,
// e.g. "CefDeviceVendor" for DeviceVendor.
func (h HeaderName) Method() string {
	return "Cef" + string(h)
}

// Interface returns the cef package interface name guarding this header's
// capability, e.g. "HeaderDeviceVendor".
func (h HeaderName) Interface() string {
	return "Header" + string(h)
}
