package services_test

import (
	"errors"
	"testing"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"
	"storecrm_backend/internal/services"
)

// stubTargetRepository serves a fixed set of targets and records deletes.
type stubTargetRepository struct {
	targets map[int64]*models.StoreRevenueTarget
	deleted []int64
}

func (r *stubTargetRepository) UpsertTarget(_ repositories.SQLExecutor, target *models.StoreRevenueTarget) (int64, error) {
	return target.ID, nil
}

func (r *stubTargetRepository) GetTargetByID(id int64) (*models.StoreRevenueTarget, error) {
	target, ok := r.targets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return target, nil
}

func (r *stubTargetRepository) GetTargetByStoreAndDate(storeID int64, year, month int) (*models.StoreRevenueTarget, error) {
	return nil, repositories.ErrNotFound
}

func (r *stubTargetRepository) GetTargetsForStoreByYear(storeID int64, year int) ([]models.StoreRevenueTarget, error) {
	return nil, nil
}

func (r *stubTargetRepository) DeleteTarget(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.targets[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.targets, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func TestDeleteTargetChecksStoreOwnership(t *testing.T) {
	repo := &stubTargetRepository{
		targets: map[int64]*models.StoreRevenueTarget{
			99: {ID: 99, StoreID: 7, Year: 2026, Month: 8},
		},
	}
	svc := services.NewTargetService(repo, nil, nil, nil)

	// Deleting through the wrong store must not touch the target.
	if err := svc.DeleteTarget(5, 99); !errors.Is(err, services.ErrTargetNotFound) {
		t.Errorf("DeleteTarget(5, 99) = %v, want ErrTargetNotFound", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("target deleted despite store mismatch: %v", repo.deleted)
	}

	if err := svc.DeleteTarget(7, 99); err != nil {
		t.Errorf("DeleteTarget(7, 99) = %v, want nil", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 99 {
		t.Errorf("deleted = %v, want [99]", repo.deleted)
	}
}

func TestDeleteTargetMissing(t *testing.T) {
	repo := &stubTargetRepository{targets: map[int64]*models.StoreRevenueTarget{}}
	svc := services.NewTargetService(repo, nil, nil, nil)

	if err := svc.DeleteTarget(7, 12345); !errors.Is(err, services.ErrTargetNotFound) {
		t.Errorf("DeleteTarget on missing target = %v, want ErrTargetNotFound", err)
	}
}
