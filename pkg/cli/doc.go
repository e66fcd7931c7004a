// Package cli implements the soapmock command line.
//
// Every command is a package-level cobra.Command registered on rootCmd from
// an init function. The root command's PersistentPreRunE loads the
// configuration and builds the logger before any subcommand runs, so RunE
// functions can rely on cfg and logger being set.
//
// With --json, stdout carries only the JSON result of the command and
// progress messages move to stderr.
package cli
