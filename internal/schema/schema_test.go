package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	for _, h := range AllHeaders {
		got, ok := ParseHeader(string(h))
		require.True(t, ok)
		assert.Equal(t, h, got)
	}

	_, ok := ParseHeader("Vendor")
	assert.False(t, ok)

	_, ok = ParseHeader("version")
	assert.False(t, ok, "header names are case sensitive")
}

func TestHeaderWireOrder(t *testing.T) {
	assert.Equal(t, []HeaderName{
		Version, DeviceVendor, DeviceProduct, DeviceVersion,
		DeviceEventClassID, Name, Severity,
	}, AllHeaders)
}

func TestHeaderMethodAndInterface(t *testing.T) {
	assert.Equal(t, "CefDeviceEventClassID", DeviceEventClassID.Method())
	assert.Equal(t, "CefName", Name.Method())
	assert.Equal(t, "HeaderSeverity", Severity.Interface())
}

func TestFieldIdentity(t *testing.T) {
	named := Field{Name: "User", Index: 3}
	assert.True(t, named.Named())
	assert.Equal(t, "User", named.Ident())
	assert.Equal(t, "User", named.DisplayName())

	positional := Field{Index: 2}
	assert.False(t, positional.Named())
	assert.Equal(t, "F2", positional.Ident())
	assert.Equal(t, "#2", positional.DisplayName())
}

func TestSitePath(t *testing.T) {
	f := Field{Name: "User"}

	assert.Equal(t, "T", SitePath("T", "", nil))
	assert.Equal(t, "T.V", SitePath("T", "V", nil))
	assert.Equal(t, "T.V.User", SitePath("T", "V", &f))

	pos := Field{Index: 1}
	assert.Equal(t, "T.#1", SitePath("T", "", &pos))
}

func TestVariantStructName(t *testing.T) {
	ts := TypeSchema{Name: "AuthEvent"}
	v := Variant{Name: "Login"}
	assert.Equal(t, "AuthEventLogin", ts.VariantStructName(&v))
}
