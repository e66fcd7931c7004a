package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getmockd/soapmock/pkg/descriptor"
	"github.com/getmockd/soapmock/pkg/wsdl"
)

// GenerateOptions selects the project to generate and its inputs.
type GenerateOptions struct {
	// Project is the project name under the layout's base directory.
	Project string

	// OutputDir overrides the project directory. When set, Project is only
	// used for messages and may be empty.
	OutputDir string

	// WSDLSource bootstraps a project that has no WSDL yet.
	WSDLSource string

	// XSDSource is an optional schema copied into the project's xsd/ directory.
	XSDSource string

	// ScriptFile is the response script referenced by the descriptor.
	// Defaults to descriptor.DefaultScriptFile.
	ScriptFile string
}

// GenerateResult describes what Generate produced.
type GenerateResult struct {
	Dir           string                 `json:"dir"`
	Initialized   bool                   `json:"initialized"`
	WSDLFile      string                 `json:"wsdlFile"`
	ServicePath   string                 `json:"servicePath"`
	Descriptor    *descriptor.Descriptor `json:"descriptor"`
	ScriptCreated bool                   `json:"scriptCreated"`
}

// Generate runs the full workflow: initialize the project if it has no WSDL
// yet, analyze its WSDL, and write the descriptor. The descriptor is always
// rewritten; an existing response script is kept.
func (m *Manager) Generate(opts GenerateOptions) (*GenerateResult, error) {
	dir, err := m.generateDir(opts)
	if err != nil {
		return nil, err
	}
	script := opts.ScriptFile
	if script == "" {
		script = descriptor.DefaultScriptFile
	}

	res := &GenerateResult{Dir: dir}

	needsInit := !isDir(dir)
	if !needsInit {
		files, err := findWSDLFiles(dir)
		if err != nil {
			return nil, err
		}
		needsInit = len(files) == 0
	}

	if needsInit {
		if opts.WSDLSource == "" {
			if !isDir(dir) {
				return nil, fmt.Errorf("%w: project %s does not exist, a WSDL file is required to initialize it", ErrSourceNotFound, dir)
			}
			return nil, fmt.Errorf("%w: %s (provide a WSDL file to initialize it)", ErrNoWSDL, dir)
		}
		m.reporter.Infof("Initializing project '%s' ...", displayName(opts.Project, dir))
		created, err := m.initProject(dir, opts.WSDLSource, opts.XSDSource)
		if err != nil {
			return nil, err
		}
		res.Initialized = true
		res.ScriptCreated = created && script == descriptor.DefaultScriptFile
	} else if opts.WSDLSource != "" {
		m.reporter.Infof("Project already has a WSDL, ignoring %s", opts.WSDLSource)
	}

	files, err := findWSDLFiles(dir)
	if err != nil {
		return nil, err
	}
	switch len(files) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoWSDL, dir)
	case 1:
	default:
		return nil, &MultipleWSDLError{Files: files}
	}
	res.WSDLFile = files[0]
	m.reporter.Infof("WSDL found: %s", res.WSDLFile)

	servicePath, err := wsdl.ExtractServicePath(filepath.Join(dir, res.WSDLFile))
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", res.WSDLFile, err)
	}
	res.ServicePath = servicePath
	m.reporter.Infof("SOAP path extracted: %s", servicePath)

	res.Descriptor = descriptor.Synthesize(res.WSDLFile, servicePath, script)
	if err := descriptor.Write(dir, res.Descriptor); err != nil {
		return nil, err
	}
	m.reporter.Infof("%s generated in: %s", descriptor.FileName, descriptor.Path(dir))

	created, err := writeDefaultScript(dir, script)
	if err != nil {
		return nil, err
	}
	if created {
		res.ScriptCreated = true
		m.reporter.Infof("%s generated in: %s", script, filepath.Join(dir, script))
	} else if !res.Initialized {
		m.reporter.Infof("%s already present, not regenerated.", script)
	}

	for _, name := range []string{descriptor.FileName, script} {
		if !isFile(filepath.Join(dir, name)) {
			return nil, fmt.Errorf("expected file %s was not generated", name)
		}
	}
	m.reporter.Infof("All expected files are present.")
	m.logger.Info("project generated", "dir", dir, "wsdl", res.WSDLFile, "path", servicePath)

	return res, nil
}

func (m *Manager) generateDir(opts GenerateOptions) (string, error) {
	if opts.OutputDir != "" {
		return opts.OutputDir, nil
	}
	return m.layout.Dir(opts.Project)
}

// findWSDLFiles returns the sorted names of the .wsdl files at the root of dir.
func findWSDLFiles(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "*.wsdl", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing WSDL files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

func displayName(name, dir string) string {
	if name != "" {
		return name
	}
	return filepath.Base(dir)
}

// IsSourceError reports whether err means the caller must supply a WSDL.
func IsSourceError(err error) bool {
	return errors.Is(err, ErrSourceNotFound) || errors.Is(err, ErrNoWSDL)
}
