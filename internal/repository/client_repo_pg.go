package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type pgClientRepository struct {
	db *gorm.DB
}

func NewPGClientRepository(db *gorm.DB) ClientRepository {
	return &pgClientRepository{db: db}
}

func (r *pgClientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *pgClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Preload("Person").First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByUserID returns the user's ACTIVE client record. Re-joining members get
// a fresh row while their old one stays INACTIVE, so the status filter is what
// keeps this lookup from landing on a stale row.
func (r *pgClientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.ClientStatusActive).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *pgClientRepository) GetActiveByPersonID(ctx context.Context, personID uuid.UUID) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).
		Where("person_id = ? AND status = ?", personID, model.ClientStatusActive).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *pgClientRepository) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *pgClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Client{}, "id = ?", id).Error
}

// ListByBranch returns clients actively linked to a branch via client_branches.
func (r *pgClientRepository) ListByBranch(
	ctx context.Context, branchID uuid.UUID, limit int, cursor *pagination.Cursor,
) ([]model.Client, error) {
	var clients []model.Client
	q := r.db.WithContext(ctx).
		Preload("Person").
		Joins("JOIN client_branches cb ON cb.client_id = clients.id").
		Where("cb.branch_id = ? AND cb.active AND cb.deleted_at IS NULL", branchID)
	if cursor != nil {
		q = q.Where(
			"clients.created_at < ? OR (clients.created_at = ? AND clients.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	err := q.Order("clients.created_at DESC, clients.id DESC").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}

type pgClientBranchRepository struct {
	db *gorm.DB
}

func NewPGClientBranchRepository(db *gorm.DB) ClientBranchRepository {
	return &pgClientBranchRepository{db: db}
}

func (r *pgClientBranchRepository) Create(ctx context.Context, link *model.ClientBranch) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *pgClientBranchRepository) GetActive(ctx context.Context, clientID, branchID uuid.UUID) (*model.ClientBranch, error) {
	var link model.ClientBranch
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND branch_id = ? AND active", clientID, branchID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *pgClientBranchRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ClientBranch{}).
		Where("id = ?", id).
		Update("active", false).
		Error
}

func (r *pgClientBranchRepository) ListActiveByClient(ctx context.Context, clientID uuid.UUID) ([]model.ClientBranch, error) {
	var links []model.ClientBranch
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND active", clientID).
		Find(&links).Error
	return links, err
}
