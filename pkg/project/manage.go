package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getmockd/soapmock/pkg/descriptor"
)

// Info summarises a project directory.
type Info struct {
	Name          string   `json:"name"`
	Dir           string   `json:"dir"`
	WSDLFile      string   `json:"wsdlFile,omitempty"`
	WSDLFiles     []string `json:"wsdlFiles,omitempty"`
	HasDescriptor bool     `json:"hasDescriptor"`
	XSDCount      int      `json:"xsdCount"`
}

// List returns every project under the base directory, sorted by name.
// A missing base directory yields an empty list.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.layout.BaseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || ValidateName(e.Name()) != nil {
			continue
		}
		info, err := m.describe(e.Name())
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Describe returns the Info of a single project.
func (m *Manager) Describe(name string) (Info, error) {
	dir, err := m.layout.Dir(name)
	if err != nil {
		return Info{}, err
	}
	if !isDir(dir) {
		return Info{}, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return m.describe(name)
}

func (m *Manager) describe(name string) (Info, error) {
	dir := filepath.Join(m.layout.BaseDir, name)
	info := Info{Name: name, Dir: dir}

	wsdls, err := findWSDLFiles(dir)
	if err != nil {
		return Info{}, err
	}
	info.WSDLFiles = wsdls
	if len(wsdls) == 1 {
		info.WSDLFile = wsdls[0]
	}

	info.HasDescriptor = isFile(descriptor.Path(dir))

	xsds, err := doublestar.Glob(os.DirFS(dir), XSDDir+"/**/*.xsd", doublestar.WithFilesOnly())
	if err != nil {
		return Info{}, fmt.Errorf("listing XSD files: %w", err)
	}
	info.XSDCount = len(xsds)

	return info, nil
}

// Delete removes the named project directory and everything in it.
// Stopping the project's container is the caller's responsibility.
func (m *Manager) Delete(name string) error {
	dir, err := m.layout.Dir(name)
	if err != nil {
		return err
	}
	if !isDir(dir) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("deleting project %s: %w", name, err)
	}
	m.reporter.Infof("Project %s deleted.", name)
	m.logger.Info("project deleted", "name", name, "dir", dir)
	return nil
}
