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

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByBusiness retrieves orders of a business inside the date range, newest first.
func (repo *orderRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, dateRange repository.DateRange) ([]*entity.Order, error) {
	tx := repo.db.WithContext(ctx).Where("business_id = ?", businessID)
	if dateRange.From != nil {
		tx = tx.Where("date >= ?", *dateRange.From)
	}
	if dateRange.To != nil {
		tx = tx.Where("date <= ?", *dateRange.To)
	}

	var orderMs []model.OrderModel
	if err := tx.Order("date DESC, created_at DESC").Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by business")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders, nil
}

// Create persists a new order entity to the database.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBusinessNotFound.WrapMessage("business does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// Update modifies an existing order entity in the database.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Save(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update order")
	}

	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// Delete removes an order by its ID.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrderModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:           data.ID,
		BusinessID:   data.BusinessID,
		OrderID:      data.OrderID,
		TrackingID:   data.TrackingID,
		ProductName:  data.ProductName,
		Quantity:     data.Quantity,
		CustomerName: data.CustomerName,
		Date:         data.Date,
		IsReturned:   data.IsReturned,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel for persistence.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:           data.ID,
		BusinessID:   data.BusinessID,
		OrderID:      data.OrderID,
		TrackingID:   data.TrackingID,
		ProductName:  data.ProductName,
		Quantity:     data.Quantity,
		CustomerName: data.CustomerName,
		Date:         data.Date,
		IsReturned:   data.IsReturned,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
