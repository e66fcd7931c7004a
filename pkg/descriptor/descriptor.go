// Package descriptor builds, writes, and reads the Imposter configuration
// file (imposter-config.yaml) that describes a SOAP mock.
package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the descriptor file name at the project root.
	FileName = "imposter-config.yaml"

	// PluginSOAP identifies Imposter's SOAP plugin.
	PluginSOAP = "soap"

	// DefaultScriptFile is the response script generated for new projects.
	DefaultScriptFile = "response.groovy"
)

// Descriptor is the mock-service configuration consumed by Imposter.
// Field order is the serialization order.
type Descriptor struct {
	Plugin    string     `yaml:"plugin" json:"plugin"`
	WSDLFile  string     `yaml:"wsdlFile" json:"wsdlFile"`
	Resources []Resource `yaml:"resources" json:"resources"`
}

// Resource maps a request path to a response.
type Resource struct {
	Path     string   `yaml:"path" json:"path"`
	Response Response `yaml:"response" json:"response"`
}

// Response describes how Imposter answers a resource.
type Response struct {
	ScriptFile string `yaml:"scriptFile,omitempty" json:"scriptFile,omitempty"`
}

// Synthesize builds the descriptor for a SOAP project with a single resource
// answered by scriptFileName.
func Synthesize(wsdlFileName, servicePath, scriptFileName string) *Descriptor {
	return &Descriptor{
		Plugin:   PluginSOAP,
		WSDLFile: wsdlFileName,
		Resources: []Resource{
			{
				Path:     servicePath,
				Response: Response{ScriptFile: scriptFileName},
			},
		},
	}
}

// Path returns the descriptor location inside projectPath.
func Path(projectPath string) string {
	return filepath.Join(projectPath, FileName)
}

// Marshal serializes d as YAML.
func Marshal(d *Descriptor) ([]byte, error) {
	if d == nil {
		return nil, errors.New("descriptor is nil")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

// Write serializes d into projectPath, replacing any existing descriptor.
// The file is written to a temporary sibling and renamed into place, so a
// reader never observes a partially written descriptor.
func Write(projectPath string, d *Descriptor) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return writeAtomic(Path(projectPath), data)
}

// Read loads the descriptor stored in projectPath.
func Read(projectPath string) (*Descriptor, error) {
	data, err := os.ReadFile(Path(projectPath))
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}
	return &d, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp descriptor: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing descriptor: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("syncing descriptor: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing descriptor: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("setting descriptor permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing descriptor: %w", err)
	}
	return nil
}
