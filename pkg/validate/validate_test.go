package validate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/getmockd/soapmock/pkg/descriptor"
	"github.com/getmockd/soapmock/pkg/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `plugin: soap
wsdlFile: Orders.wsdl
resources:
  - path: /svc/Orders
    response:
      scriptFile: response.groovy
`

// newProject writes a project with a WSDL, a script, and the given descriptor.
// An empty config leaves the descriptor out.
func newProject(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Orders.wsdl"), []byte("<definitions/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "response.groovy"), []byte("return [body: request.body]\n"), 0o644))
	if config != "" {
		require.NoError(t, os.WriteFile(descriptor.Path(dir), []byte(config), 0o644))
	}
	return dir
}

func TestValidate_Valid(t *testing.T) {
	dir := newProject(t, validConfig)
	rec := &progress.Recorder{}

	err := New(WithReporter(rec)).Validate(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"WSDL found: Orders.wsdl",
		"scriptFile found: response.groovy",
		"imposter-config.yaml is structurally valid.",
	}, rec.Texts())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   *Error
	}{
		{
			name:   "malformed yaml",
			config: "plugin: [soap\n",
			want:   &Error{Kind: KindMalformedConfig},
		},
		{
			name:   "scalar document",
			config: "just a string\n",
			want:   &Error{Kind: KindInvalidShape},
		},
		{
			name:   "sequence document",
			config: "- plugin: soap\n",
			want:   &Error{Kind: KindInvalidShape},
		},
		{
			name:   "empty document",
			config: "# nothing here\n",
			want:   &Error{Kind: KindInvalidShape},
		},
		{
			name:   "missing plugin",
			config: "wsdlFile: Orders.wsdl\nresources: []\n",
			want:   &Error{Kind: KindMissingField, Field: "plugin"},
		},
		{
			name:   "missing resources",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\n",
			want:   &Error{Kind: KindMissingField, Field: "resources"},
		},
		{
			name:   "missing fields reported in order",
			config: "other: 1\n",
			want:   &Error{Kind: KindMissingField, Field: "plugin"},
		},
		{
			name:   "wsdl not on disk",
			config: "plugin: soap\nwsdlFile: Billing.wsdl\nresources: []\n",
			want:   &Error{Kind: KindMissingWSDL, Field: "wsdlFile", File: "Billing.wsdl"},
		},
		{
			name:   "wsdl escapes project",
			config: "plugin: soap\nwsdlFile: ../Orders.wsdl\nresources: []\n",
			want:   &Error{Kind: KindMissingWSDL, Field: "wsdlFile", File: "../Orders.wsdl"},
		},
		{
			name:   "wsdl is a directory",
			config: "plugin: soap\nwsdlFile: xsd\nresources: []\n",
			want:   &Error{Kind: KindMissingWSDL, Field: "wsdlFile", File: "xsd"},
		},
		{
			name:   "resources is a mapping",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  path: /x\n",
			want:   &Error{Kind: KindInvalidResourcesType, Field: "resources"},
		},
		{
			name:   "resource without response",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - path: /a\n    response: {}\n  - path: /b\n",
			want:   &Error{Kind: KindInvalidResource, Index: 2, Field: "response"},
		},
		{
			name:   "resource without path",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - response: {}\n",
			want:   &Error{Kind: KindInvalidResource, Index: 1, Field: "path"},
		},
		{
			name:   "resource is a scalar",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - /svc\n",
			want:   &Error{Kind: KindInvalidResource, Index: 1},
		},
		{
			name:   "response is a scalar",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - path: /a\n    response: ok\n",
			want:   &Error{Kind: KindInvalidResource, Index: 1, Field: "response"},
		},
		{
			name:   "missing script",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - path: /a\n    response:\n      scriptFile: response.groovy\n  - path: /b\n    response:\n      scriptFile: other.groovy\n",
			want:   &Error{Kind: KindMissingScript, Index: 2, Field: "scriptFile", File: "other.groovy"},
		},
		{
			name:   "script outside project",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - path: /a\n    response:\n      scriptFile: /etc/passwd\n",
			want:   &Error{Kind: KindMissingScript, Index: 1, Field: "scriptFile", File: "/etc/passwd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newProject(t, tt.config)
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "xsd"), 0o755))

			err := Validate(dir)
			require.Error(t, err)

			var verr *Error
			require.True(t, errors.As(err, &verr), "want *Error, got %T", err)
			assert.Equal(t, tt.want.Kind, verr.Kind)
			assert.Equal(t, tt.want.Field, verr.Field)
			assert.Equal(t, tt.want.Index, verr.Index)
			if tt.want.File != "" {
				assert.Equal(t, tt.want.File, verr.File)
			}
			assert.ErrorIs(t, err, &Error{Kind: tt.want.Kind})
		})
	}
}

func TestValidate_ConfigNotFound(t *testing.T) {
	dir := newProject(t, "")

	err := Validate(dir)
	require.ErrorIs(t, err, ErrConfigNotFound)
	assert.NotErrorIs(t, err, ErrMalformedConfig)
	assert.Contains(t, err.Error(), descriptor.FileName)
}

func TestValidate_OptionalScript(t *testing.T) {
	dir := newProject(t, "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - path: /a\n    response: {}\n  - path: /b\n    response:\n      scriptFile: \"\"\n")
	require.NoError(t, Validate(dir))
}

func TestValidate_DoesNotMutate(t *testing.T) {
	dir := newProject(t, validConfig)
	before, err := os.ReadDir(dir)
	require.NoError(t, err)

	require.NoError(t, Validate(dir))
	require.Error(t, Validate(filepath.Join(dir, "missing")))

	after, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))
	assert.NoDirExists(t, filepath.Join(dir, "missing"))
}

func TestValidate_WrittenDescriptor(t *testing.T) {
	dir := newProject(t, "")
	require.NoError(t, descriptor.Write(dir, descriptor.Synthesize("Orders.wsdl", "/svc/Orders", "response.groovy")))

	require.NoError(t, New(WithStrictSchema(true)).Validate(dir))
}

func TestValidate_Strict(t *testing.T) {
	tests := []struct {
		name   string
		config string
		field  string
	}{
		{
			name:   "wrong plugin",
			config: "plugin: rest\nwsdlFile: Orders.wsdl\nresources: []\n",
			field:  "plugin",
		},
		{
			name:   "empty path",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - path: \"\"\n    response: {}\n",
			field:  "resources.0.path",
		},
		{
			name:   "relative path",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - path: svc/Orders\n    response: {}\n",
			field:  "resources.0.path",
		},
		{
			name:   "numeric script file",
			config: "plugin: soap\nwsdlFile: Orders.wsdl\nresources:\n  - path: /a\n    response:\n      scriptFile: 42\n",
			field:  "resources.0.response.scriptFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newProject(t, tt.config)

			require.NoError(t, Validate(dir), "lenient mode accepts the descriptor")

			err := New(WithStrictSchema(true)).Validate(dir)
			require.ErrorIs(t, err, ErrSchemaViolation)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSchemaCompiles(t *testing.T) {
	schema, err := Schema()
	require.NoError(t, err)
	assert.NotNil(t, schema)
}

func TestError_Messages(t *testing.T) {
	assert.Equal(t, "missing required field: resources", (&Error{Kind: KindMissingField, Field: "resources"}).Error())
	assert.Equal(t, "resource #3: scriptFile not found: a.groovy", (&Error{Kind: KindMissingScript, Index: 3, File: "a.groovy"}).Error())
	assert.Equal(t, "resource #2 is invalid (path/response missing)", (&Error{Kind: KindInvalidResource, Index: 2}).Error())
}
