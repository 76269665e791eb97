// Command migrate applies schema migrations, including the row-level
// security policies the scoped execution unit depends on.
//
// Usage:
//
//	migrate -dir migrations up
//	migrate -dir migrations down 1
//	migrate -dir migrations version
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/vendorhub/backend/internal/infrastructure/config"
)

func main() {
	dir := flag.String("dir", "migrations", "migrations directory")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-dir DIR] up|down [N]|version|force VERSION")
		os.Exit(2)
	}

	if err := run(*dir, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	m, err := migrate.New("file://"+dir, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open migrations at %s for %s: %w", dir, cfg.Database.RedactedAddr(), err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			fmt.Fprintf(os.Stderr, "migrate: close: source=%v database=%v\n", srcErr, dbErr)
		}
	}()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(args[1])
			if err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("no migrations applied")
				return nil
			}
			return err
		}
		fmt.Printf("version %d dirty=%v\n", v, dirty)
		return nil
	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		return m.Force(v)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	v, _, verr := m.Version()
	if verr == nil {
		fmt.Printf("migrated to version %d\n", v)
	}
	return nil
}
