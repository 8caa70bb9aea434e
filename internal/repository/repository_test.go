package repository

import (
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// statement is one SQL statement gorm built without sending it.
type statement struct {
	sql  string
	vars []interface{}
}

type statementRecorder struct {
	statements []statement
}

func (r *statementRecorder) record(tx *gorm.DB) {
	r.statements = append(r.statements, statement{
		sql:  tx.Statement.SQL.String(),
		vars: append([]interface{}(nil), tx.Statement.Vars...),
	})
}

// first returns the first statement built since the last call and clears the recorder
func (r *statementRecorder) first(t *testing.T) statement {
	t.Helper()
	if len(r.statements) == 0 {
		t.Fatal("no SQL statement was built")
	}
	s := r.statements[0]
	r.statements = nil
	return s
}

// newDryRunDB returns a Postgres-dialect gorm handle that builds SQL without
// connecting, and a recorder holding every statement it builds.
func newDryRunDB(t *testing.T) (*gorm.DB, *statementRecorder) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}

	rec := &statementRecorder{}
	callbacks := []struct {
		name     string
		register func() error
	}{
		{"query", func() error { return db.Callback().Query().After("gorm:query").Register("test:record", rec.record) }},
		{"create", func() error { return db.Callback().Create().After("gorm:create").Register("test:record", rec.record) }},
		{"update", func() error { return db.Callback().Update().After("gorm:update").Register("test:record", rec.record) }},
	}
	for _, cb := range callbacks {
		if err := cb.register(); err != nil {
			t.Fatalf("register %s callback: %v", cb.name, err)
		}
	}

	return db, rec
}
