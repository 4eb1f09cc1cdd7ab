// Package buildlog provides the shared zerolog logger used by the
// long-running table-construction paths (probability table, cluster
// k-means) to report progress. Query paths never log.
package buildlog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON lines to stderr, tagged with the
// given component name.
func New(component string) zerolog.Logger {
	return zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

// Stage logs the start of a named build stage along with how long it
// took once the returned function is called.
func Stage(log zerolog.Logger, name string) func() {
	start := time.Now()
	log.Info().Str("stage", name).Msg("starting")
	return func() {
		log.Info().Str("stage", name).Dur("elapsed", time.Since(start)).Msg("done")
	}
}
