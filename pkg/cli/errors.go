package cli

import "errors"

// Common CLI errors
var (
	errProjectRequired = errors.New("project name is required (argument or --project)")
	errProjectTwice    = errors.New("project given both as argument and --project with different values")
)
