// Package schema embeds the goose migrations so the receiver can apply them on start (AUTO_MIGRATE=true).
package schema

import "embed"

//go:embed *.sql
var FS embed.FS
