// Package cef renders values as ArcSight Common Event Format (CEF) lines.
//
// The format is a fixed prefix of seven pipe-separated headers followed by a
// free-form extension string:
//
//	CEF:Version|DeviceVendor|DeviceProduct|DeviceVersion|DeviceEventClassID|Name|Severity|key=value ...
//
// Each header is modeled as its own single-method interface so that generated
// code (see cmd/cefgen) can delegate one header to a nested field without
// requiring that field's type to implement the full Event surface.
package cef

import (
	"sort"
	"strings"
)

// HeaderVersion provides the "Version" CEF header.
type HeaderVersion interface {
	CefVersion() (string, error)
}

// HeaderDeviceVendor provides the "DeviceVendor" CEF header.
type HeaderDeviceVendor interface {
	CefDeviceVendor() (string, error)
}

// HeaderDeviceProduct provides the "DeviceProduct" CEF header.
type HeaderDeviceProduct interface {
	CefDeviceProduct() (string, error)
}

// HeaderDeviceVersion provides the "DeviceVersion" CEF header.
type HeaderDeviceVersion interface {
	CefDeviceVersion() (string, error)
}

// HeaderDeviceEventClassID provides the "DeviceEventClassID" CEF header.
type HeaderDeviceEventClassID interface {
	CefDeviceEventClassID() (string, error)
}

// HeaderName provides the "Name" CEF header.
type HeaderName interface {
	CefName() (string, error)
}

// HeaderSeverity provides the "Severity" CEF header.
type HeaderSeverity interface {
	CefSeverity() (string, error)
}

// Extensions contributes entries to a CEF extension map.
//
// Implementations write their entries into ext. A value that rolls up nested
// values calls CefExtensions on them with the same map; on key collisions the
// later write wins. Returning an error aborts rendering of the whole line.
type Extensions interface {
	CefExtensions(ext map[string]string) error
}

// Event is the full surface needed to render one CEF line.
type Event interface {
	HeaderVersion
	HeaderDeviceVendor
	HeaderDeviceProduct
	HeaderDeviceVersion
	HeaderDeviceEventClassID
	HeaderName
	HeaderSeverity
	Extensions
}

// Render composes the CEF line for e.
//
// The seven headers are rendered in wire order, each followed by a '|', then
// the extension string. If any header accessor or the extensions collector
// returns an error, Render returns that error unchanged and no partial line.
func Render(e Event) (string, error) {
	headers := []func() (string, error){
		e.CefVersion,
		e.CefDeviceVendor,
		e.CefDeviceProduct,
		e.CefDeviceVersion,
		e.CefDeviceEventClassID,
		e.CefName,
		e.CefSeverity,
	}

	var b strings.Builder
	b.WriteString("CEF:")

	for _, header := range headers {
		v, err := header()
		if err != nil {
			return "", err
		}

		b.WriteString(v)
		b.WriteByte('|')
	}

	ext := make(map[string]string)
	if err := e.CefExtensions(ext); err != nil {
		return "", err
	}

	b.WriteString(ExtensionString(ext))

	return b.String(), nil
}

// ExtensionString renders ext as "key=value" pairs sorted lexicographically
// by key and joined by single spaces. An empty map renders as "".
func ExtensionString(ext map[string]string) string {
	if len(ext) == 0 {
		return ""
	}

	keys := make([]string, 0, len(ext))
	for k := range ext {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+ext[k])
	}

	return strings.Join(pairs, " ")
}
