package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/angelmondragon/scancart-backend/pkg/config"
)

// DefaultRoot is where migrations live on disk relative to the repo root.
const DefaultRoot = "pkg/migrate/migrations"

//go:embed migrations/*/*.sql
var embedded embed.FS

var gooseMu sync.Mutex

// Source locates the migrations for one database driver.
type Source struct {
	FS      fs.FS
	Dir     string
	Dialect string
}

// EmbeddedSource returns the migrations compiled into the binary for driver.
func EmbeddedSource(driver string) (Source, error) {
	dialect, err := Dialect(driver)
	if err != nil {
		return Source{}, err
	}
	return Source{FS: embedded, Dir: path.Join("migrations", driver), Dialect: dialect}, nil
}

// DiskDir returns the on-disk directory holding driver's migrations.
func DiskDir(driver string) string {
	return path.Join(DefaultRoot, driver)
}

// Dialect maps a configured driver onto the goose dialect name.
func Dialect(driver string) (string, error) {
	switch driver {
	case config.DriverMySQL:
		return "mysql", nil
	case config.DriverPostgres:
		return "postgres", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported migration driver %q", driver)
	}
}

// Run executes a standard goose command that requires a DB connection.
func Run(ctx context.Context, db *sql.DB, src Source, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if src.Dir == "" {
		return fmt.Errorf("dir is required")
	}

	return withGoose(src, func() error {
		// RunContext prints status output to stdout (goose internal)
		if err := goose.RunContext(ctx, command, db, src.Dir, args...); err != nil {
			return fmt.Errorf("goose %s: %w", command, err)
		}
		return nil
	})
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, src Source, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	return withGoose(src, func() error {
		current, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("get db version: %w", err)
		}

		switch {
		case current == target:
			return nil
		case current < target:
			if err := goose.UpToContext(ctx, db, src.Dir, target); err != nil {
				return fmt.Errorf("goose up-to %d: %w", target, err)
			}
			return nil
		default:
			if err := goose.DownToContext(ctx, db, src.Dir, target); err != nil {
				return fmt.Errorf("goose down-to %d: %w", target, err)
			}
			return nil
		}
	})
}

// goose keeps dialect and base FS in package globals.
func withGoose(src Source, fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(src.FS)
	defer goose.SetBaseFS(nil)

	return fn()
}
