// Package all registers every storage backend. Binaries blank-import it so
// the config's storage.kind can select any of them at runtime.
package all

import (
	_ "sparkify/internal/storage/mysql"
	_ "sparkify/internal/storage/postgres"
	_ "sparkify/internal/storage/sqlite"
)
