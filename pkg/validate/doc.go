// Package validate checks an Imposter project descriptor for structural and
// referential correctness.
//
// The checks run in a fixed order and stop at the first failure:
// descriptor present, parseable and a mapping, required fields present,
// WSDL file present, resources a list, and for every resource a path, a
// response, and an existing scriptFile when one is named. Every failure is
// an *Error whose Kind can be matched with errors.Is against the Err*
// sentinels.
package validate
