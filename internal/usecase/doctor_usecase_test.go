package usecase

import (
	"context"
	"testing"

	"hospital-management/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDoctorUsecase_CreateDoctor_Unlinked(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustRegister(t, "root", "pw", entity.RoleAdmin)

	doctor := env.mustCreateDoctor(t, admin, "Dr. House")
	if doctor.ID == 0 {
		t.Error("expected ID to be set")
	}
	if doctor.UserID != nil {
		t.Errorf("expected no linked user, got %v", doctor.UserID)
	}
	if got := testutil.ToFloat64(env.metrics.DoctorsCreatedTotal); got != 1 {
		t.Errorf("expected 1 doctor created, got %v", got)
	}
	if !containsAction(auditActions(t, env), entity.AuditActionDoctorCreate) {
		t.Error("expected a doctor.create audit entry")
	}
}

func TestDoctorUsecase_CreateDoctor_LinksDoctorAccount(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustRegister(t, "root", "pw", entity.RoleAdmin)
	bob := env.mustRegister(t, "bob", "x", entity.RoleDoctor)

	doctor := env.mustCreateDoctor(t, admin, "bob")
	if doctor.UserID == nil || *doctor.UserID != bob.UserID {
		t.Fatalf("expected doctor linked to bob, got %v", doctor.UserID)
	}

	// a second doctor with the same name stays unlinked
	again := env.mustCreateDoctor(t, admin, "bob")
	if again.UserID != nil {
		t.Errorf("expected second doctor to stay unlinked, got %v", again.UserID)
	}
}

func TestDoctorUsecase_CreateDoctor_IgnoresNonDoctorAccounts(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustRegister(t, "root", "pw", entity.RoleAdmin)
	env.mustRegister(t, "eve", "pw", entity.RoleUser)

	doctor := env.mustCreateDoctor(t, admin, "eve")
	if doctor.UserID != nil {
		t.Errorf("user-role account must not be linked, got %v", doctor.UserID)
	}
}

func TestDoctorUsecase_ListDoctors(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustRegister(t, "root", "pw", entity.RoleAdmin)
	env.mustCreateDoctor(t, admin, "Grey")
	env.mustCreateDoctor(t, admin, "Shepherd")

	resp, err := env.doctors.ListDoctors(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 2 || resp.Doctors[0].Name != "Grey" || resp.Doctors[1].Name != "Shepherd" {
		t.Errorf("unexpected doctors: %+v", resp)
	}
}
