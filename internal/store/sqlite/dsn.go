package sqlite

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

type dsnTarget struct {
	path   string
	memory bool
}

// parseDSN turns sqlite://<path>[?query] into a driver path. Relative paths
// are anchored at the working directory and their parent directory is created.
func parseDSN(dsn string) (dsnTarget, error) {
	if !strings.HasPrefix(dsn, "sqlite://") {
		return dsnTarget{}, fmt.Errorf("invalid sqlite DSN scheme, expected sqlite://")
	}

	rest := strings.TrimPrefix(dsn, "sqlite://")
	if rest == ":memory:" {
		return dsnTarget{path: ":memory:", memory: true}, nil
	}
	if rest == "" {
		return dsnTarget{}, fmt.Errorf("sqlite DSN has no path")
	}

	path, query, hasQuery := strings.Cut(rest, "?")
	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return dsnTarget{}, fmt.Errorf("unescaping path: %w", err)
	}
	path = unescaped

	if !filepath.IsAbs(path) && !strings.HasPrefix(path, "./") {
		path = "./" + path
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return dsnTarget{}, fmt.Errorf("creating database directory: %w", err)
		}
	}

	if hasQuery {
		path = path + "?" + query
	}
	return dsnTarget{path: path}, nil
}
