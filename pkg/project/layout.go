package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidateName checks that name can be used both as a directory under the
// base directory and inside a container name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q must not contain path elements", ErrInvalidName, name)
	}
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q may only contain letters, digits, '_', '.' and '-'", ErrInvalidName, name)
	}
	return nil
}

// Paths holds the two views of a project directory. Internal is the path
// this process uses to read and write files. Host is the path the container
// runtime must mount, which differs when soapmock itself runs in a container
// and talks to the host's Docker daemon.
type Paths struct {
	Internal string
	Host     string
}

// Layout locates projects on disk.
type Layout struct {
	// BaseDir is the directory holding one sub-directory per project.
	BaseDir string

	// HostBaseDir is BaseDir as seen by the container runtime. Empty means
	// the runtime sees the same path as this process.
	HostBaseDir string
}

// Paths resolves both views of the named project.
func (l Layout) Paths(name string) (Paths, error) {
	if err := ValidateName(name); err != nil {
		return Paths{}, err
	}
	internal := filepath.Join(l.BaseDir, name)
	return Paths{
		Internal: internal,
		Host:     l.hostPath(name, internal),
	}, nil
}

// Dir returns the internal project directory for name.
func (l Layout) Dir(name string) (string, error) {
	p, err := l.Paths(name)
	if err != nil {
		return "", err
	}
	return p.Internal, nil
}

// hostPath builds the runtime-visible path. Docker accepts forward slashes
// on every platform, including Windows drive paths.
func (l Layout) hostPath(name, internal string) string {
	if l.HostBaseDir == "" {
		return filepath.ToSlash(internal)
	}
	base := strings.ReplaceAll(l.HostBaseDir, `\`, "/")
	base = strings.TrimRight(base, "/")
	if base == "" {
		return "/" + name
	}
	return base + "/" + name
}
