package postgres

import (
	"context"
	"encoding/json"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/domain/repository"
	"inventra/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// forecastModelRepository implements the domain.ForecastModelRepository interface using GORM.
type forecastModelRepository struct {
	db *gorm.DB
}

// NewForecastModelRepository is the constructor for forecastModelRepository.
func NewForecastModelRepository(db *gorm.DB) repository.ForecastModelRepository {
	return &forecastModelRepository{db: db}
}

// FindByBusiness retrieves the trained model of a business.
func (repo *forecastModelRepository) FindByBusiness(ctx context.Context, businessID uuid.UUID) (*entity.SalesForecastModel, error) {
	var modelM model.SalesForecastModelModel
	if err := repo.db.WithContext(ctx).Where("business_id = ?", businessID).First(&modelM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrForecastModelNotFound
		}

		return nil, errors.Wrap(err, "failed to find forecast model by business")
	}

	return toForecastModelDomain(&modelM)
}

// Save creates or replaces the model of a business.
func (repo *forecastModelRepository) Save(ctx context.Context, forecastModel *entity.SalesForecastModel) error {
	modelM, err := fromForecastModelDomain(forecastModel)
	if err != nil {
		return err
	}

	// One model per business: replace any existing row before inserting.
	if err := repo.db.WithContext(ctx).
		Where("business_id = ?", forecastModel.BusinessID).
		Delete(&model.SalesForecastModelModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace forecast model")
	}

	if err := repo.db.WithContext(ctx).Create(modelM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBusinessNotFound.WrapMessage("business does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save forecast model")
	}

	forecastModel.ID = modelM.ID

	return nil
}

// DeleteByBusiness removes the trained model of a business, if any.
func (repo *forecastModelRepository) DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Delete(&model.SalesForecastModelModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete forecast model")
	}

	return nil
}

// --- Mapper Functions ---

// toForecastModelDomain converts a GORM SalesForecastModelModel to a domain entity.
func toForecastModelDomain(data *model.SalesForecastModelModel) (*entity.SalesForecastModel, error) {
	if data == nil {
		return nil, nil
	}

	var coefficients []float64
	if err := json.Unmarshal([]byte(data.Coefficients), &coefficients); err != nil {
		return nil, errors.Wrap(err, "failed to decode forecast coefficients")
	}

	return &entity.SalesForecastModel{
		ID:               data.ID,
		BusinessID:       data.BusinessID,
		Coefficients:     coefficients,
		Intercept:        data.Intercept,
		PolynomialDegree: data.PolynomialDegree,
		TrainedAt:        data.TrainedAt,
	}, nil
}

// fromForecastModelDomain converts a domain entity to a GORM SalesForecastModelModel.
func fromForecastModelDomain(data *entity.SalesForecastModel) (*model.SalesForecastModelModel, error) {
	if data == nil {
		return nil, nil
	}

	coefficients, err := json.Marshal(data.Coefficients)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode forecast coefficients")
	}

	return &model.SalesForecastModelModel{
		ID:               data.ID,
		BusinessID:       data.BusinessID,
		Coefficients:     string(coefficients),
		Intercept:        data.Intercept,
		PolynomialDegree: data.PolynomialDegree,
		TrainedAt:        data.TrainedAt,
	}, nil
}
