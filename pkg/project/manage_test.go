package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	m, _ := newTestManager(t)
	base := m.Layout().BaseDir

	_, err := m.Generate(GenerateOptions{Project: "orders", WSDLSource: filepath.Join("testdata", "Orders.wsdl"), XSDSource: filepath.Join("testdata", "Orders.xsd")})
	require.NoError(t, err)
	require.NoError(t, m.Init(filepath.Join(base, "billing"), filepath.Join("testdata", "Orders.wsdl"), ""))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "empty"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "notes.txt"), []byte("x"), 0o644))

	infos, err := m.List()
	require.NoError(t, err)
	require.Len(t, infos, 3)

	assert.Equal(t, "billing", infos[0].Name)
	assert.Equal(t, "Orders.wsdl", infos[0].WSDLFile)
	assert.False(t, infos[0].HasDescriptor)

	assert.Equal(t, "empty", infos[1].Name)
	assert.Empty(t, infos[1].WSDLFile)

	assert.Equal(t, "orders", infos[2].Name)
	assert.True(t, infos[2].HasDescriptor)
	assert.Equal(t, 1, infos[2].XSDCount)
}

func TestList_MissingBaseDir(t *testing.T) {
	m := NewManager(Layout{BaseDir: filepath.Join(t.TempDir(), "absent")})
	infos, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestDescribe(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Describe("orders")
	require.ErrorIs(t, err, ErrProjectNotFound)

	_, err = m.Generate(GenerateOptions{Project: "orders", WSDLSource: filepath.Join("testdata", "Orders.wsdl")})
	require.NoError(t, err)

	info, err := m.Describe("orders")
	require.NoError(t, err)
	assert.Equal(t, "Orders.wsdl", info.WSDLFile)
	assert.True(t, info.HasDescriptor)
}

func TestDelete(t *testing.T) {
	m, rec := newTestManager(t)
	_, err := m.Generate(GenerateOptions{Project: "orders", WSDLSource: filepath.Join("testdata", "Orders.wsdl")})
	require.NoError(t, err)

	require.NoError(t, m.Delete("orders"))
	assert.NoDirExists(t, filepath.Join(m.Layout().BaseDir, "orders"))
	assert.Contains(t, rec.Texts(), "Project orders deleted.")

	require.ErrorIs(t, m.Delete("orders"), ErrProjectNotFound)
	require.ErrorIs(t, m.Delete(".."), ErrInvalidName)
}
