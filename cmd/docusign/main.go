// docusign is a command line client for the DocuSign eSignature REST API.
package main

import "github.com/information-sharing-networks/docusign-client/internal/cli"

func main() {
	cli.Execute()
}
