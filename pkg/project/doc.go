// Package project manages mock project directories.
//
// A project is a directory under the base directory, named after the
// project, holding:
//
//	<project>/
//	  Orders.wsdl            the service description (exactly one .wsdl)
//	  xsd/Orders.xsd         optional schemas
//	  response.groovy        the default response script
//	  imposter-config.yaml   the descriptor, written by Generate
//
// Init creates the directory and copies inputs into it. Generate is the
// combined workflow: it initializes the project when needed, extracts the
// SOAP path from the WSDL, and writes the descriptor. Re-running Generate is
// safe; it rewrites the descriptor but never touches an existing script.
//
// Layout and Paths translate a project name into the path this process uses
// and the path the container runtime mounts.
package project
