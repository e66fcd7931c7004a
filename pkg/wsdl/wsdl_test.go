package wsdl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractServicePath(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    string
		wantErr error
	}{
		{name: "default wsdl namespace", file: "Orders.wsdl", want: "/svc/Orders"},
		{name: "custom prefixes skip soap12", file: "custom_prefix.wsdl", want: "/ws/Billing"},
		{name: "location without path", file: "root_location.wsdl", want: DefaultPath},
		{name: "no address element", file: "no_address.wsdl", wantErr: ErrMissingElement},
		{name: "empty location", file: "empty_location.wsdl", wantErr: ErrMissingAttribute},
		{name: "soap prefix bound to another namespace", file: "wrong_namespace.wsdl", wantErr: ErrMissingElement},
		{name: "missing file", file: "does_not_exist.wsdl", wantErr: ErrSourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractServicePath(filepath.Join("testdata", tt.file))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractServicePath_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wsdl")
	require.NoError(t, os.WriteFile(path, []byte("<definitions name=unquoted>"), 0o644))

	_, err := ExtractServicePath(path)
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Source)
	assert.Contains(t, err.Error(), path)
}

func TestExtractServicePathFromBytes(t *testing.T) {
	t.Run("default namespace declared on soap element", func(t *testing.T) {
		doc := `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/">
			<service name="S"><port name="P">
				<address xmlns="http://schemas.xmlsoap.org/wsdl/soap/" location="http://x/a/b"/>
			</port></service>
		</definitions>`
		got, err := ExtractServicePathFromBytes([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, "/a/b", got)
	})

	t.Run("first address in document order wins", func(t *testing.T) {
		doc := `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/" xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/">
			<service name="A"><port name="P1"><soap:address location="http://x/first"/></port></service>
			<service name="B"><port name="P2"><soap:address location="http://x/second"/></port></service>
		</definitions>`
		got, err := ExtractServicePathFromBytes([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, "/first", got)
	})

	t.Run("address in the wsdl namespace is not soap", func(t *testing.T) {
		doc := `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/">
			<address location="http://x/nope"/>
		</definitions>`
		_, err := ExtractServicePathFromBytes([]byte(doc))
		require.ErrorIs(t, err, ErrMissingElement)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := ExtractServicePathFromBytes(nil)
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
	})
}

func TestInspect(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "Orders.wsdl"))
	require.NoError(t, err)

	s, err := Inspect(data)
	require.NoError(t, err)

	assert.Equal(t, "OrdersService", s.Name)
	assert.Equal(t, "http://example.com/orders", s.TargetNamespace)
	assert.Equal(t, []string{"GetOrder", "CancelOrder"}, s.Operations)
	require.Len(t, s.Services, 1)
	require.Len(t, s.Services[0].Ports, 1)

	port := s.Services[0].Ports[0]
	assert.Equal(t, "OrdersPort", port.Name)
	assert.Equal(t, "OrdersBinding", port.Binding)
	assert.Equal(t, "http://host/svc/Orders", port.Location)
	assert.Equal(t, "/svc/Orders", port.Path)
	assert.Equal(t, "1.1", port.SOAPVersion)
}

func TestInspect_SOAPVersions(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "custom_prefix.wsdl"))
	require.NoError(t, err)

	s, err := Inspect(data)
	require.NoError(t, err)
	require.Len(t, s.Services, 1)
	require.Len(t, s.Services[0].Ports, 2)

	assert.Equal(t, "1.2", s.Services[0].Ports[0].SOAPVersion)
	assert.Equal(t, "/v12/Billing", s.Services[0].Ports[0].Path)
	assert.Equal(t, "1.1", s.Services[0].Ports[1].SOAPVersion)
	assert.Empty(t, s.Operations)
}
