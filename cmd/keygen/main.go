// keygen is a CLI tool for generating the RSA key pair used by the DocuSign JWT grant.
// It is also available as the keygen command of the docusign CLI.
package main

import (
	"fmt"
	"os"

	"github.com/information-sharing-networks/docusign-client/internal/cli"
	"github.com/information-sharing-networks/docusign-client/internal/version"
)

func main() {
	rootCmd := cli.NewKeygenCmd()
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
