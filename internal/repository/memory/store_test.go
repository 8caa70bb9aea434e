package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestStore_UserUniqueUsername(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Users().Create(ctx, &entity.User{Username: "alice", Role: entity.RoleUser}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := store.Users().Create(ctx, &entity.User{Username: "alice", Role: entity.RoleDoctor})
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" || pgErr.ConstraintName != "users_username_key" {
		t.Fatalf("expected unique violation on users_username_key, got %v", err)
	}
}

func TestStore_DoctorLinkUser(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	user := &entity.User{Username: "bob", Role: entity.RoleDoctor}
	store.Users().Create(ctx, user)
	doctor := &entity.Doctor{Name: "bob"}
	store.Doctors().Create(ctx, doctor)

	found, _ := store.Doctors().FindUnlinkedByName(ctx, "bob")
	if found == nil || found.ID != doctor.ID {
		t.Fatalf("expected unlinked doctor %d, got %+v", doctor.ID, found)
	}

	if err := store.Doctors().LinkUser(ctx, doctor.ID, user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Doctors().LinkUser(ctx, doctor.ID, user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected relinking to fail with ErrRecordNotFound, got %v", err)
	}

	found, _ = store.Doctors().FindUnlinkedByName(ctx, "bob")
	if found != nil {
		t.Errorf("expected no unlinked doctor, got %+v", found)
	}

	linked, _ := store.Doctors().FindByUserID(ctx, user.ID)
	if linked == nil || linked.ID != doctor.ID {
		t.Errorf("expected doctor %d for user, got %+v", doctor.ID, linked)
	}
}

func TestStore_AppointmentForeignKeys(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Appointments().Create(ctx, &entity.Appointment{PatientID: 1, DoctorID: 1, Date: "d", Time: "t"})
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}

func TestStore_SessionExpiry(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	session := &entity.Session{UserID: uuid.New(), TokenID: "t1", Role: entity.RoleUser}
	store.Sessions().Save(ctx, session, time.Minute)

	if ok, _ := store.Sessions().Exists(ctx, session.UserID, "t1"); !ok {
		t.Fatal("expected session to exist")
	}
	if ok, _ := store.Sessions().Exists(ctx, session.UserID, "t2"); ok {
		t.Error("other token must not match")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := store.Sessions().Exists(ctx, session.UserID, "t1"); ok {
		t.Error("expected session to have expired")
	}
}
