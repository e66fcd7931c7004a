package wsdl

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/beevik/etree"
)

// Namespace URIs recognised by the analyzer.
const (
	NamespaceWSDL   = "http://schemas.xmlsoap.org/wsdl/"
	NamespaceSOAP   = "http://schemas.xmlsoap.org/wsdl/soap/"
	NamespaceSOAP12 = "http://schemas.xmlsoap.org/wsdl/soap12/"
)

// DefaultPath is returned when the soap:address location has no path.
const DefaultPath = "/defaultPath"

var (
	// ErrSourceNotFound is returned when the WSDL file does not exist.
	ErrSourceNotFound = errors.New("wsdl file not found")

	// ErrMissingElement is returned when no soap:address element exists.
	ErrMissingElement = errors.New("soap:address element not found in WSDL")

	// ErrMissingAttribute is returned when soap:address has no usable location.
	ErrMissingAttribute = errors.New("soap:address location attribute is missing or empty")
)

// ParseError reports a document that is not well-formed XML.
type ParseError struct {
	Source string
	Cause  error
}

func (e *ParseError) Error() string {
	msg := "invalid WSDL"
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ExtractServicePath reads the WSDL file at path and returns the URL path of
// its first SOAP 1.1 address.
func ExtractServicePath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return "", fmt.Errorf("reading WSDL %s: %w", path, err)
	}

	servicePath, err := ExtractServicePathFromBytes(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Source = path
		}
		return "", err
	}
	return servicePath, nil
}

// ExtractServicePathFromBytes is ExtractServicePath for an in-memory document.
func ExtractServicePathFromBytes(data []byte) (string, error) {
	root, err := parse(data)
	if err != nil {
		return "", err
	}

	addr := findFirst(root, "address", NamespaceSOAP)
	if addr == nil {
		return "", ErrMissingElement
	}

	location := addr.SelectAttrValue("location", "")
	if location == "" {
		return "", ErrMissingAttribute
	}

	return pathFromLocation(location), nil
}

// pathFromLocation returns the path component of a location URL, falling back
// to DefaultPath when there is none or the URL cannot be parsed.
func pathFromLocation(location string) string {
	u, err := url.Parse(location)
	if err != nil || u.Path == "" {
		return DefaultPath
	}
	return u.Path
}

func parse(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Cause: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &ParseError{Cause: errors.New("empty document")}
	}
	return root, nil
}

// findFirst walks the tree in document order and returns the first element
// with the given local name whose prefix resolves to namespace.
func findFirst(e *etree.Element, localName, namespace string) *etree.Element {
	if e.Tag == localName && e.NamespaceURI() == namespace {
		return e
	}
	for _, child := range e.ChildElements() {
		if found := findFirst(child, localName, namespace); found != nil {
			return found
		}
	}
	return nil
}

// findChildren returns the direct children of parent with the given local
// name in the WSDL namespace.
func findChildren(parent *etree.Element, localName string) []*etree.Element {
	var results []*etree.Element
	for _, child := range parent.ChildElements() {
		if child.Tag == localName && child.NamespaceURI() == NamespaceWSDL {
			results = append(results, child)
		}
	}
	return results
}
