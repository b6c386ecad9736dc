// Package migrations embeds the SQL schema applied by the server on start and by integration tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
