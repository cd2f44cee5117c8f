// Package all registers every transaction handler. Importing it for side
// effects makes the full transaction set available to the engine.
package all

import (
	_ "github.com/LeJamon/goAMMd/internal/core/tx/amm"
)
