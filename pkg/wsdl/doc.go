// Package wsdl inspects WSDL 1.1 documents.
//
// The main entry point is ExtractServicePath, which finds the SOAP 1.1
// address of a service and returns the URL path the mock should answer on:
//
//	path, err := wsdl.ExtractServicePath("Orders.wsdl")
//	// path == "/svc/Orders"
//
// Element lookup is namespace-qualified. A soap:address is recognised by
// the namespace URI its prefix resolves to, not by the prefix spelling or
// its position in the document, so documents that bind the SOAP namespace
// to an unusual prefix (or declare it as the default namespace) work too.
//
// Inspect returns a broader Summary (services, ports, operations) used by
// the inspect command.
package wsdl
