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

// returnRepository implements the domain.ReturnRepository interface using GORM.
type returnRepository struct {
	db *gorm.DB
}

// NewReturnRepository is the constructor for returnRepository.
func NewReturnRepository(db *gorm.DB) repository.ReturnRepository {
	return &returnRepository{db: db}
}

// FindByID retrieves a single return by its unique ID.
func (repo *returnRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	var returnM model.ReturnModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&returnM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReturnNotFound
		}

		return nil, errors.Wrap(err, "failed to find return by id")
	}

	return toReturnDomain(&returnM), nil
}

// ListByBusiness retrieves returns of a business inside the date range, newest first.
func (repo *returnRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, dateRange repository.DateRange) ([]*entity.Return, error) {
	tx := repo.db.WithContext(ctx).Where("business_id = ?", businessID)
	if dateRange.From != nil {
		tx = tx.Where("date >= ?", *dateRange.From)
	}
	if dateRange.To != nil {
		tx = tx.Where("date <= ?", *dateRange.To)
	}

	var returnMs []model.ReturnModel
	if err := tx.Order("date DESC, created_at DESC").Find(&returnMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list returns by business")
	}

	returns := make([]*entity.Return, 0, len(returnMs))
	for i := range returnMs {
		returns = append(returns, toReturnDomain(&returnMs[i]))
	}

	return returns, nil
}

// Create persists a new return entity to the database.
func (repo *returnRepository) Create(ctx context.Context, ret *entity.Return) error {
	returnM := fromReturnDomain(ret)

	if err := repo.db.WithContext(ctx).Create(returnM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderNotFound.WrapMessage("order does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required return information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create return")
	}

	ret.ID = returnM.ID
	ret.CreatedAt = returnM.CreatedAt
	ret.UpdatedAt = returnM.UpdatedAt

	return nil
}

// Delete removes a return by its ID.
func (repo *returnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReturnModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete return")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReturnNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toReturnDomain converts a GORM ReturnModel to a domain Return entity.
func toReturnDomain(data *model.ReturnModel) *entity.Return {
	if data == nil {
		return nil
	}

	return &entity.Return{
		ID:           data.ID,
		BusinessID:   data.BusinessID,
		OrderID:      data.OrderRef,
		ProductName:  data.ProductName,
		CustomerName: data.CustomerName,
		Quantity:     data.Quantity,
		Date:         data.Date,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromReturnDomain converts a domain Return entity to a GORM ReturnModel for persistence.
func fromReturnDomain(data *entity.Return) *model.ReturnModel {
	if data == nil {
		return nil
	}

	return &model.ReturnModel{
		ID:           data.ID,
		BusinessID:   data.BusinessID,
		OrderRef:     data.OrderID,
		ProductName:  data.ProductName,
		CustomerName: data.CustomerName,
		Quantity:     data.Quantity,
		Date:         data.Date,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
