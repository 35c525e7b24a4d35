package catalog

import "embed"

// Migrations holds the schema for every supported driver under
// migrations/<driver>/.
//
//go:embed migrations/*/*.sql
var Migrations embed.FS
