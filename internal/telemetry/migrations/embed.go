// Package migrations embeds the telemetry schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
