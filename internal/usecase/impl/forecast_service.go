package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"inventra/config"
	"inventra/internal/domain/entity"
	"inventra/internal/domain/repository"
	"inventra/internal/domain/service"
	"inventra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	defaultForecastDegree  = 2
	defaultForecastHorizon = 30
	defaultMinHistoryDays  = 30
)

// forecastService implements the ForecastUsecase interface. It fits a
// polynomial regression over the business's daily net sales and projects it
// over a fixed horizon. Trained models are persisted and reused until the
// configured degree changes or a retrain is requested.
type forecastService struct {
	txManager      repository.TransactionManager
	engine         service.ForecastEngine
	logger         *slog.Logger
	degree         int
	horizonDays    int
	minHistoryDays int
}

// NewForecastService is the constructor for forecastService.
func NewForecastService(
	cfg *config.Config,
	txManager repository.TransactionManager,
	engine service.ForecastEngine,
	logger *slog.Logger,
) usecase.ForecastUsecase {
	srv := &forecastService{
		txManager:      txManager,
		engine:         engine,
		logger:         logger,
		degree:         defaultForecastDegree,
		horizonDays:    defaultForecastHorizon,
		minHistoryDays: defaultMinHistoryDays,
	}
	if cfg.Forecast != nil {
		if cfg.Forecast.Degree > 0 {
			srv.degree = cfg.Forecast.Degree
		}
		if cfg.Forecast.HorizonDays > 0 {
			srv.horizonDays = cfg.Forecast.HorizonDays
		}
		if cfg.Forecast.MinHistoryDays > 0 {
			srv.minHistoryDays = cfg.Forecast.MinHistoryDays
		}
	}

	return srv
}

// dailySales is one day of aggregated net sales.
type dailySales struct {
	day   time.Time
	sales float64
}

// SalesForecast returns the historical daily sales plus the projected series.
// With fewer distinct sales days than the training minimum it returns the
// history alone with an explanatory message.
func (srv *forecastService) SalesForecast(ctx context.Context, ownerID, businessID uuid.UUID) (*usecase.ForecastOutput, error) {
	var (
		history []dailySales
		model   *entity.SalesForecastModel
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}

		series, err := srv.loadDailySales(ctx, repoFactory, businessID)
		if err != nil {
			return err
		}
		history = series

		if len(history) < srv.minHistoryDays {
			return nil
		}

		found, err := repoFactory.ForecastModelRepo().FindByBusiness(ctx, businessID)
		if err != nil && !errors.Is(err, repository.ErrForecastModelNotFound) {
			return errors.Wrap(err, "failed to load forecast model")
		}
		if err == nil && found.PolynomialDegree == srv.degree {
			model = found

			return nil
		}

		trained, err := srv.train(history)
		if err != nil {
			return err
		}
		trained.BusinessID = businessID
		if err := repoFactory.ForecastModelRepo().Save(ctx, trained); err != nil {
			return errors.Wrap(err, "failed to save forecast model")
		}
		model = trained

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build sales forecast")
	}

	output := &usecase.ForecastOutput{Records: make([]usecase.ForecastRecord, 0, len(history)+srv.horizonDays)}
	for _, point := range history {
		output.Records = append(output.Records, usecase.ForecastRecord{
			Date:  point.day.Format("2006-01-02"),
			Sales: point.sales,
			Type:  usecase.ForecastRecordHistorical,
		})
	}

	if model == nil {
		output.Message = fmt.Sprintf(
			"Not enough sales history to train a forecast model. At least %d days with sales are required.",
			srv.minHistoryDays)

		return output, nil
	}

	origin := history[0].day
	lastDay := history[len(history)-1].day
	for i := 1; i <= srv.horizonDays; i++ {
		day := lastDay.AddDate(0, 0, i)
		x := day.Sub(origin).Hours() / 24
		predicted := sanitize(srv.engine.Predict(model.Coefficients, model.Intercept, x))
		if predicted < 0 {
			predicted = 0
		}
		output.Records = append(output.Records, usecase.ForecastRecord{
			Date:  day.Format("2006-01-02"),
			Sales: math.Round(predicted*100) / 100,
			Type:  usecase.ForecastRecordForecast,
		})
	}

	return output, nil
}

// RetrainModel drops the persisted model so the next forecast trains afresh.
func (srv *forecastService) RetrainModel(ctx context.Context, ownerID, businessID uuid.UUID) (string, error) {
	srv.logger.Info("Retraining forecast model", "businessID", businessID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}

		if err := repoFactory.ForecastModelRepo().DeleteByBusiness(ctx, businessID); err != nil {
			return errors.Wrap(err, "failed to delete forecast model")
		}

		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to retrain forecast model")
	}

	return "Model retraining triggered successfully.", nil
}

// loadDailySales aggregates non-returned orders into a day-ordered net sales
// series, valued at the current catalog selling price.
func (srv *forecastService) loadDailySales(ctx context.Context, repoFactory repository.RepositoryFactory, businessID uuid.UUID) ([]dailySales, error) {
	products, err := repoFactory.ProductRepo().ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	priceByName := make(map[string]decimal.Decimal, len(products))
	for _, product := range products {
		priceByName[product.Name] = product.SellingPrice
	}

	orderList, err := repoFactory.OrderRepo().ListByBusiness(ctx, businessID, repository.DateRange{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	salesByDay := make(map[time.Time]decimal.Decimal)
	for _, order := range orderList {
		if order.IsReturned {
			continue
		}
		price, ok := priceByName[order.ProductName]
		if !ok {
			continue
		}
		day := dateOnly(order.Date)
		salesByDay[day] = salesByDay[day].Add(price.Mul(decimal.NewFromInt(int64(order.Quantity))))
	}

	series := make([]dailySales, 0, len(salesByDay))
	for day, sales := range salesByDay {
		series = append(series, dailySales{day: day, sales: round2(sales)})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].day.Before(series[j].day)
	})

	return series, nil
}

// train fits the configured polynomial over the series. The x axis is the day
// offset from the first sales day so gaps in the history keep their spacing.
func (srv *forecastService) train(history []dailySales) (*entity.SalesForecastModel, error) {
	origin := history[0].day
	xs := make([]float64, len(history))
	ys := make([]float64, len(history))
	for i, point := range history {
		xs[i] = point.day.Sub(origin).Hours() / 24
		ys[i] = point.sales
	}

	coefficients, intercept, err := srv.engine.Fit(xs, ys, srv.degree)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fit forecast model")
	}

	return &entity.SalesForecastModel{
		Coefficients:     coefficients,
		Intercept:        intercept,
		PolynomialDegree: srv.degree,
		TrainedAt:        time.Now(),
	}, nil
}
