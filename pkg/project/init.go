package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/getmockd/soapmock/pkg/descriptor"
)

// XSDDir is the project sub-directory that receives XSD files.
const XSDDir = "xsd"

// DefaultScript is the Groovy response script written into new projects.
// It answers every request with the request body unchanged.
const DefaultScript = `/*
 Basic Groovy script for Imposter.
 Returns the received body unchanged.
*/
return [body: request.body]
`

// Init materializes a project directory: it copies the WSDL (and optional
// XSD) into projectPath and writes the default response script. It does not
// write a descriptor.
//
// A missing WSDL source fails with ErrSourceNotFound. A missing XSD source is
// reported as a warning and initialization continues. An existing response
// script is left untouched.
func (m *Manager) Init(projectPath, wsdlSource, xsdSource string) error {
	_, err := m.initProject(projectPath, wsdlSource, xsdSource)
	return err
}

// initProject implements Init and reports whether the script was created.
func (m *Manager) initProject(projectPath, wsdlSource, xsdSource string) (bool, error) {
	if wsdlSource == "" {
		return false, fmt.Errorf("%w: no WSDL file given", ErrSourceNotFound)
	}
	if !isFile(wsdlSource) {
		return false, fmt.Errorf("%w: WSDL file %s", ErrSourceNotFound, wsdlSource)
	}

	if err := os.MkdirAll(projectPath, 0o755); err != nil {
		return false, fmt.Errorf("creating project directory: %w", err)
	}

	wsdlDest := filepath.Join(projectPath, filepath.Base(wsdlSource))
	if err := copyInto(wsdlSource, wsdlDest); err != nil {
		return false, fmt.Errorf("copying WSDL: %w", err)
	}
	m.logger.Debug("copied WSDL", "src", wsdlSource, "dst", wsdlDest)

	if xsdSource != "" {
		if isFile(xsdSource) {
			xsdDir := filepath.Join(projectPath, XSDDir)
			if err := os.MkdirAll(xsdDir, 0o755); err != nil {
				return false, fmt.Errorf("creating xsd directory: %w", err)
			}
			xsdDest := filepath.Join(xsdDir, filepath.Base(xsdSource))
			if err := copyInto(xsdSource, xsdDest); err != nil {
				return false, fmt.Errorf("copying XSD: %w", err)
			}
			m.reporter.Infof("XSD file copied to: %s", xsdDest)
		} else {
			m.logger.Warn("XSD source not found", "path", xsdSource)
			m.reporter.Warnf("XSD file not found: %s", xsdSource)
		}
	}

	created, err := writeDefaultScript(projectPath, descriptor.DefaultScriptFile)
	if err != nil {
		return false, err
	}

	m.reporter.Infof("Mock project initialized in %s", projectPath)
	m.reporter.Infof("WSDL file copied: %s", filepath.Base(wsdlSource))
	if created {
		m.reporter.Infof("%s generated.", descriptor.DefaultScriptFile)
	}
	return created, nil
}

// writeDefaultScript writes DefaultScript to name unless a file is already
// there. It reports whether the file was created.
func writeDefaultScript(projectPath, name string) (bool, error) {
	path := filepath.Join(projectPath, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := f.WriteString(DefaultScript); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("writing %s: %w", name, err)
	}
	return true, nil
}

// copyInto copies src to dst unless both name the same file.
func copyInto(src, dst string) error {
	if srcInfo, err := os.Stat(src); err == nil {
		if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
			return nil
		}
	}
	return copyFile(src, dst)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
