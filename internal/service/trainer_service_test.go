package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/service"
)

func TestProvisionTrainerAssignsEmployeeCode(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	branch := env.createBranch(t, "Downtown")
	specialties := model.JSONMap{"strength": true, "mobility": true}

	trainer, err := env.trainers.ProvisionTrainer(ctx, newAccountInput("trainer"), &branch.ID, specialties)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if !strings.HasPrefix(trainer.EmployeeCode, "TR") {
		t.Fatalf("expected TR-prefixed code, got %q", trainer.EmployeeCode)
	}
	if trainer.BranchID == nil || *trainer.BranchID != branch.ID {
		t.Fatalf("expected branch %s, got %v", branch.ID, trainer.BranchID)
	}

	roles, err := env.roleRepo.ListActiveByUserID(ctx, trainer.UserID)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if !service.HasRole(roles, model.RoleTrainer) {
		t.Fatalf("expected active TRAINER role, got %+v", roles)
	}
}

func TestProvisionTrainerRejectsUnknownBranch(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	missing := env.createBranch(t, "Temp")
	if err := env.branches.DeleteBranch(ctx, missing.ID); err != nil {
		t.Fatalf("delete branch: %v", err)
	}

	if _, err := env.trainers.ProvisionTrainer(ctx, newAccountInput("trainer"), &missing.ID, nil); !errors.Is(err, service.ErrBranchNotFound) {
		t.Fatalf("expected ErrBranchNotFound, got %v", err)
	}
}

func TestTrainerScheduleAndSpecialtiesUpdate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	trainer := env.createTrainer(t)

	updated, err := env.trainers.UpdateSchedule(ctx, trainer.ID, model.JSONMap{"mon": "09:00-17:00"})
	if err != nil {
		t.Fatalf("update schedule: %v", err)
	}
	if updated.Schedule["mon"] != "09:00-17:00" {
		t.Fatalf("schedule not stored, got %+v", updated.Schedule)
	}

	updated, err = env.trainers.UpdateSpecialties(ctx, trainer.ID, model.JSONMap{"yoga": true})
	if err != nil {
		t.Fatalf("update specialties: %v", err)
	}
	if updated.Specialties["yoga"] != true {
		t.Fatalf("specialties not stored, got %+v", updated.Specialties)
	}
}

func TestCatalogListsOnlyActiveTrainers(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	active := env.createTrainer(t)
	retired := env.createTrainer(t)
	if err := env.trainers.DeactivateTrainer(ctx, retired.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	page, err := env.trainers.Catalog(ctx, 10, nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != active.ID {
		t.Fatalf("expected only the active trainer, got %+v", page.Items)
	}
}

func TestListTrainersByBranch(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	east := env.createBranch(t, "East")
	west := env.createBranch(t, "West")

	eastTrainer, err := env.trainers.ProvisionTrainer(ctx, newAccountInput("trainer"), &east.ID, nil)
	if err != nil {
		t.Fatalf("provision east: %v", err)
	}
	if _, err := env.trainers.ProvisionTrainer(ctx, newAccountInput("trainer"), &west.ID, nil); err != nil {
		t.Fatalf("provision west: %v", err)
	}

	page, err := env.trainers.ListByBranch(ctx, east.ID, 10, nil)
	if err != nil {
		t.Fatalf("list by branch: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != eastTrainer.ID {
		t.Fatalf("expected only the east trainer, got %+v", page.Items)
	}
}
