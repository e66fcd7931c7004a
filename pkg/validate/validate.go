package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/getmockd/soapmock/pkg/descriptor"
	"github.com/getmockd/soapmock/pkg/logging"
	"github.com/getmockd/soapmock/pkg/progress"
	"gopkg.in/yaml.v3"
)

var requiredFields = []string{"plugin", "wsdlFile", "resources"}

// Validator checks a project's descriptor. The zero value is not usable;
// use New.
type Validator struct {
	reporter progress.Reporter
	logger   *slog.Logger
	strict   bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithReporter reports each check that passes.
func WithReporter(r progress.Reporter) Option {
	return func(v *Validator) { v.reporter = progress.OrNop(r) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = logging.OrNop(l) }
}

// WithStrictSchema additionally checks the descriptor against the embedded
// JSON Schema once the referential checks pass.
func WithStrictSchema(strict bool) Option {
	return func(v *Validator) { v.strict = strict }
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		reporter: progress.Nop(),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the default Validator against projectPath.
func Validate(projectPath string) error {
	return New().Validate(projectPath)
}

// Validate checks the descriptor in projectPath and stops at the first
// failure, which is returned as an *Error. It never modifies the project.
func (v *Validator) Validate(projectPath string) error {
	configPath := descriptor.Path(projectPath)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Error{Kind: KindConfigNotFound, File: configPath}
		}
		return &Error{Kind: KindConfigNotFound, File: configPath, Cause: err}
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &Error{Kind: KindMalformedConfig, File: configPath, Cause: err}
	}
	config, ok := asMap(doc)
	if !ok {
		return &Error{Kind: KindInvalidShape, File: configPath}
	}

	for _, field := range requiredFields {
		if _, ok := config[field]; !ok {
			return &Error{Kind: KindMissingField, Field: field}
		}
	}

	wsdlFile := fmt.Sprint(config["wsdlFile"])
	if s, ok := config["wsdlFile"].(string); !ok || !fileInProject(projectPath, s) {
		return &Error{Kind: KindMissingWSDL, Field: "wsdlFile", File: wsdlFile}
	}
	v.reporter.Infof("WSDL found: %s", wsdlFile)

	resources, ok := config["resources"].([]any)
	if !ok {
		return &Error{Kind: KindInvalidResourcesType, Field: "resources"}
	}

	for i, item := range resources {
		index := i + 1
		resource, ok := asMap(item)
		if !ok {
			return &Error{Kind: KindInvalidResource, Index: index}
		}
		if _, ok := resource["path"]; !ok {
			return &Error{Kind: KindInvalidResource, Index: index, Field: "path"}
		}
		rawResponse, ok := resource["response"]
		if !ok {
			return &Error{Kind: KindInvalidResource, Index: index, Field: "response"}
		}
		response, ok := asMap(rawResponse)
		if !ok {
			return &Error{Kind: KindInvalidResource, Index: index, Field: "response"}
		}

		script, ok := response["scriptFile"].(string)
		if !ok || script == "" {
			continue
		}
		if !fileInProject(projectPath, script) {
			return &Error{Kind: KindMissingScript, Index: index, Field: "scriptFile", File: script}
		}
		v.reporter.Infof("scriptFile found: %s", script)
	}

	if v.strict {
		if err := checkSchema(config); err != nil {
			return err
		}
		v.reporter.Infof("Descriptor matches the JSON Schema.")
	}

	v.reporter.Infof("%s is structurally valid.", descriptor.FileName)
	v.logger.Debug("descriptor valid", "project", projectPath, "resources", len(resources), "strict", v.strict)
	return nil
}

// asMap accepts both map shapes yaml.v3 decodes a mapping into.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// fileInProject reports whether name is a regular file inside root.
// Absolute names and names escaping root are treated as missing.
func fileInProject(root, name string) bool {
	if name == "" || filepath.IsAbs(name) {
		return false
	}
	rel, err := filepath.Rel(root, filepath.Join(root, name))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	info, err := os.Stat(filepath.Join(root, rel))
	return err == nil && info.Mode().IsRegular()
}
