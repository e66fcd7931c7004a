// Package ports checks whether a host port can be published.
package ports

import (
	"fmt"
	"net"
)

// IsAvailable reports whether port can be bound on all interfaces.
func IsAvailable(port int) bool {
	return Check(port) == nil
}

// Check returns the bind error for port, or nil when it is free.
func Check(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	_ = ln.Close()
	return nil
}
