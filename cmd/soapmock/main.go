// soapmock CLI - generates and runs Imposter SOAP mocks from WSDL files
package main

import (
	"os"

	"github.com/getmockd/soapmock/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	os.Exit(cli.Execute())
}
