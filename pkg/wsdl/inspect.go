package wsdl

import (
	"strings"
)

// Summary describes the parts of a WSDL document relevant to mocking it.
type Summary struct {
	Name            string    `json:"name,omitempty"`
	TargetNamespace string    `json:"targetNamespace,omitempty"`
	Services        []Service `json:"services"`
	Operations      []string  `json:"operations"`
}

// Service is a wsdl:service and its ports.
type Service struct {
	Name  string `json:"name"`
	Ports []Port `json:"ports"`
}

// Port is a wsdl:port with its SOAP address, if any.
type Port struct {
	Name        string `json:"name"`
	Binding     string `json:"binding,omitempty"`
	Location    string `json:"location,omitempty"`
	Path        string `json:"path,omitempty"`
	SOAPVersion string `json:"soapVersion,omitempty"`
}

// Inspect parses a WSDL 1.1 document and summarises its services and
// operations.
func Inspect(data []byte) (*Summary, error) {
	root, err := parse(data)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Name:            root.SelectAttrValue("name", ""),
		TargetNamespace: root.SelectAttrValue("targetNamespace", ""),
		Services:        []Service{},
		Operations:      []string{},
	}

	for _, svcEl := range findChildren(root, "service") {
		svc := Service{Name: svcEl.SelectAttrValue("name", ""), Ports: []Port{}}
		for _, portEl := range findChildren(svcEl, "port") {
			p := Port{
				Name:    portEl.SelectAttrValue("name", ""),
				Binding: stripPrefix(portEl.SelectAttrValue("binding", "")),
			}
			for _, child := range portEl.ChildElements() {
				if child.Tag != "address" {
					continue
				}
				switch child.NamespaceURI() {
				case NamespaceSOAP:
					p.SOAPVersion = "1.1"
				case NamespaceSOAP12:
					p.SOAPVersion = "1.2"
				default:
					continue
				}
				p.Location = child.SelectAttrValue("location", "")
				if p.Location != "" {
					p.Path = pathFromLocation(p.Location)
				}
				break
			}
			svc.Ports = append(svc.Ports, p)
		}
		s.Services = append(s.Services, svc)
	}

	for _, ptEl := range findChildren(root, "portType") {
		for _, opEl := range findChildren(ptEl, "operation") {
			if name := opEl.SelectAttrValue("name", ""); name != "" {
				s.Operations = append(s.Operations, name)
			}
		}
	}

	return s, nil
}

// stripPrefix removes a namespace prefix from a QName.
func stripPrefix(qname string) string {
	if idx := strings.IndexByte(qname, ':'); idx >= 0 {
		return qname[idx+1:]
	}
	return qname
}
