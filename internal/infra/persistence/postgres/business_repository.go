package postgres

import (
	"context"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/domain/repository"
	"inventra/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// businessRepository implements the domain.BusinessRepository interface using GORM.
type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository is the constructor for businessRepository.
func NewBusinessRepository(db *gorm.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

// FindByID retrieves a single business by its unique ID.
func (repo *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var businessM model.BusinessModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&businessM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to find business by id")
	}

	return toBusinessDomain(&businessM), nil
}

// ListByOwner retrieves every business owned by the given user, newest first.
func (repo *businessRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Business, error) {
	var businessMs []model.BusinessModel
	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&businessMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list businesses by owner")
	}

	businesses := make([]*entity.Business, 0, len(businessMs))
	for i := range businessMs {
		businesses = append(businesses, toBusinessDomain(&businessMs[i]))
	}

	return businesses, nil
}

// Create persists a new business entity to the database.
func (repo *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	businessM := fromBusinessDomain(business)

	if err := repo.db.WithContext(ctx).Create(businessM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required business information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create business")
	}

	business.ID = businessM.ID
	business.CreatedAt = businessM.CreatedAt
	business.UpdatedAt = businessM.UpdatedAt

	return nil
}

// Update modifies an existing business entity in the database.
func (repo *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	businessM := fromBusinessDomain(business)

	if err := repo.db.WithContext(ctx).Save(businessM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update business")
	}

	business.UpdatedAt = businessM.UpdatedAt

	return nil
}

// Delete removes a business by its ID.
func (repo *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BusinessModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete business")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toBusinessDomain converts a GORM BusinessModel to a domain Business entity.
func toBusinessDomain(data *model.BusinessModel) *entity.Business {
	if data == nil {
		return nil
	}

	return &entity.Business{
		ID:           data.ID,
		OwnerID:      data.OwnerID,
		Name:         data.Name,
		Department:   entity.Department(data.Department),
		ContactEmail: data.ContactEmail,
		ContactPhone: data.ContactPhone,
		Address:      data.Address,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromBusinessDomain converts a domain Business entity to a GORM BusinessModel for persistence.
func fromBusinessDomain(data *entity.Business) *model.BusinessModel {
	if data == nil {
		return nil
	}

	return &model.BusinessModel{
		ID:           data.ID,
		OwnerID:      data.OwnerID,
		Name:         data.Name,
		Department:   string(data.Department),
		ContactEmail: data.ContactEmail,
		ContactPhone: data.ContactPhone,
		Address:      data.Address,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
