package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"library-browser/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/alecthomas/kingpin.v2"
)

const migrationsDir = "db/migrations"

var (
	app = kingpin.New("migrate", "Manage the library browser database schema")

	upCmd     = app.Command("up", "Apply all pending migrations").Default()
	downCmd   = app.Command("down", "Roll back the given number of migrations")
	createCmd = app.Command("create", "Create an empty up/down migration pair")
	statusCmd = app.Command("status", "List migrations and whether they are applied")

	downSteps  = downCmd.Arg("steps", "How many migrations to roll back").Default("1").Int()
	createName = createCmd.Arg("name", "Migration name").Required().String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	switch command {
	case createCmd.FullCommand():
		if err := createMigration(*createName); err != nil {
			log.Fatalf("create migration failed: %v", err)
		}
	case upCmd.FullCommand():
		m := mustMigrator()
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("database migration failed: %v", err)
		}
		log.Println("database migrations applied")
	case downCmd.FullCommand():
		m := mustMigrator()
		if err := m.Steps(-*downSteps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("database rollback failed: %v", err)
		}
		log.Printf("rolled back %d migration(s)", *downSteps)
	case statusCmd.FullCommand():
		if err := printStatus(mustMigrator()); err != nil {
			log.Fatalf("migration status failed: %v", err)
		}
	}
}

func mustMigrator() *migrate.Migrate {
	m, err := migrate.New("file://"+migrationsDir, mustDatabaseURL())
	if err != nil {
		log.Fatalf("migration setup failed: %v", err)
	}
	return m
}

func mustDatabaseURL() string {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	return dsn
}

func createMigration(name string) error {
	if strings.ContainsAny(name, " ") {
		return errors.New("migration name must not contain spaces")
	}
	version := time.Now().UTC().Format("20060102150405")
	base := fmt.Sprintf("%s_%s", version, name)
	upPath := filepath.Join(migrationsDir, base+".up.sql")
	downPath := filepath.Join(migrationsDir, base+".down.sql")
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return fmt.Errorf("create migrations dir: %w", err)
	}
	if err := writeNewFile(upPath, "-- up migration\n"); err != nil {
		return err
	}
	if err := writeNewFile(downPath, "-- down migration\n"); err != nil {
		return err
	}
	log.Printf("created %s and %s", upPath, downPath)
	return nil
}

func writeNewFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func printStatus(m *migrate.Migrate) error {
	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".up.sql"))
		}
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Version", "Name", "State"})
	for _, name := range names {
		versionText, label, _ := strings.Cut(name, "_")
		version, err := strconv.ParseUint(versionText, 10, 64)
		if err != nil {
			continue
		}
		state := "pending"
		switch {
		case uint64(current) == version && dirty:
			state = "dirty"
		case uint64(current) >= version:
			state = "applied"
		}
		table.Append([]string{versionText, label, state})
	}
	table.Render()
	return nil
}
