package project

import (
	"errors"
	"strings"
)

var (
	// ErrSourceNotFound is returned when a WSDL input is missing or was not
	// supplied for a project that needs one.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrNoWSDL is returned when a project directory holds no .wsdl file.
	ErrNoWSDL = errors.New("no WSDL (.wsdl) file found in project")

	// ErrInvalidName is returned for project names that cannot be used as a
	// directory and container name.
	ErrInvalidName = errors.New("invalid project name")

	// ErrProjectNotFound is returned when the project directory does not exist.
	ErrProjectNotFound = errors.New("project not found")
)

// MultipleWSDLError is returned when a project root holds more than one
// .wsdl file and generation cannot pick one.
type MultipleWSDLError struct {
	Files []string
}

func (e *MultipleWSDLError) Error() string {
	return "multiple WSDL files found, keep only one: " + strings.Join(e.Files, ", ")
}
