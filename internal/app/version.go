package app

import (
	"fmt"
	"log/slog"
)

// Set via ldflags, e.g.
// go build -ldflags "-X github.com/heartmarshall/kotoba-enricher/internal/app.Version=1.2.0" ./cmd/enrich
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is printed by --version.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

func buildAttrs() slog.Attr {
	return slog.Group("build",
		slog.String("version", Version),
		slog.String("commit", Commit),
	)
}
