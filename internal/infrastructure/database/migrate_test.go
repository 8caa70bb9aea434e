package database

import (
	"strings"
	"testing"

	"hospital-management/config"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{
		Host:     "db",
		Port:     "5432",
		User:     "hospital",
		Password: "secret",
		Name:     "hospital",
		SSLMode:  "disable",
	})

	for _, part := range []string{"host=db", "port=5432", "user=hospital", "password=secret", "dbname=hospital", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN %q missing %q", dsn, part)
		}
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		t.Fatalf("iofs.New() error = %v", err)
	}
	defer source.Close()

	first, err := source.First()
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if first != 1 {
		t.Errorf("first version = %d, want 1", first)
	}

	next, err := source.Next(first)
	if err != nil {
		t.Fatalf("Next(%d) error = %v", first, err)
	}
	if next != 2 {
		t.Errorf("second version = %d, want 2", next)
	}
}

func TestMigrateLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	ml := &migrateLogger{log: log}

	log.SetLevel(logrus.InfoLevel)
	if ml.Verbose() {
		t.Error("Verbose() = true at info level")
	}
	log.SetLevel(logrus.DebugLevel)
	if !ml.Verbose() {
		t.Error("Verbose() = false at debug level")
	}

	ml.Printf("Finished %d/u %s\n", 1, "create_core_tables")

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Message != "Finished 1/u create_core_tables" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Data["component"] != "migrate" {
		t.Errorf("component = %v, want migrate", entry.Data["component"])
	}
}
