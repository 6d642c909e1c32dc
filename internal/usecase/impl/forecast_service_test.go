package impl

import (
	"context"
	"testing"
	"time"

	"inventra/config"
	"inventra/internal/domain/entity"
	"inventra/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine returns a constant prediction and counts Fit calls.
type stubEngine struct {
	fitCalls   int
	prediction float64
}

func (e *stubEngine) Fit(xs, ys []float64, degree int) ([]float64, float64, error) {
	e.fitCalls++

	coefficients := make([]float64, degree)

	return coefficients, e.prediction, nil
}

func (e *stubEngine) Predict(_ []float64, intercept float64, _ float64) float64 {
	return intercept
}

func forecastConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Forecast = &config.ForecastConfig{
		Degree:         2,
		HorizonDays:    30,
		MinHistoryDays: 30,
	}

	return cfg
}

func createTestForecastService(f *fixtures, engine *stubEngine) usecase.ForecastUsecase {
	return NewForecastService(forecastConfig(), f.tx, engine, f.logger)
}

// seedSalesHistory creates one order per day for the given number of days,
// ending yesterday.
func seedSalesHistory(t *testing.T, f *fixtures, days int) {
	t.Helper()

	f.addProduct(t, "Widget", "SKU-1", 1000, "5.00", "8.00")
	for i := 0; i < days; i++ {
		f.addOrder(t, "Widget", 1, time.Now().AddDate(0, 0, -(i+1)), false)
	}
}

func TestSalesForecast_NotEnoughHistory(t *testing.T) {
	f := newFixtures(t)
	seedSalesHistory(t, f, 10)
	engine := &stubEngine{prediction: 42}
	srv := createTestForecastService(f, engine)

	output, err := srv.SalesForecast(context.Background(), f.ownerID, f.businessID)

	require.NoError(t, err)
	assert.NotEmpty(t, output.Message)
	assert.Len(t, output.Records, 10)
	for _, record := range output.Records {
		assert.Equal(t, usecase.ForecastRecordHistorical, record.Type)
	}
	assert.Zero(t, engine.fitCalls)
	assert.Empty(t, f.store.forecasts)
}

func TestSalesForecast_TrainsAndProjects(t *testing.T) {
	f := newFixtures(t)
	seedSalesHistory(t, f, 40)
	engine := &stubEngine{prediction: 42.5}
	srv := createTestForecastService(f, engine)

	output, err := srv.SalesForecast(context.Background(), f.ownerID, f.businessID)

	require.NoError(t, err)
	assert.Empty(t, output.Message)
	require.Len(t, output.Records, 40+30)
	assert.Equal(t, 1, engine.fitCalls)

	var forecasted int
	for _, record := range output.Records {
		if record.Type == usecase.ForecastRecordForecast {
			forecasted++
			assert.InDelta(t, 42.5, record.Sales, 0.001)
		}
	}
	assert.Equal(t, 30, forecasted)

	model, ok := f.store.forecasts[f.businessID]
	require.True(t, ok, "model should be persisted")
	assert.Equal(t, 2, model.PolynomialDegree)
}

func TestSalesForecast_ReusesPersistedModel(t *testing.T) {
	f := newFixtures(t)
	seedSalesHistory(t, f, 40)
	engine := &stubEngine{prediction: 7}
	srv := createTestForecastService(f, engine)

	_, err := srv.SalesForecast(context.Background(), f.ownerID, f.businessID)
	require.NoError(t, err)
	_, err = srv.SalesForecast(context.Background(), f.ownerID, f.businessID)
	require.NoError(t, err)

	assert.Equal(t, 1, engine.fitCalls)
}

func TestSalesForecast_RetrainsOnDegreeMismatch(t *testing.T) {
	f := newFixtures(t)
	seedSalesHistory(t, f, 40)
	f.store.forecasts[f.businessID] = &entity.SalesForecastModel{
		BusinessID:       f.businessID,
		Coefficients:     []float64{1, 2, 3},
		Intercept:        0,
		PolynomialDegree: 3,
	}
	engine := &stubEngine{prediction: 7}
	srv := createTestForecastService(f, engine)

	_, err := srv.SalesForecast(context.Background(), f.ownerID, f.businessID)

	require.NoError(t, err)
	assert.Equal(t, 1, engine.fitCalls)
	assert.Equal(t, 2, f.store.forecasts[f.businessID].PolynomialDegree)
}

func TestSalesForecast_ClampsNegativePredictions(t *testing.T) {
	f := newFixtures(t)
	seedSalesHistory(t, f, 40)
	engine := &stubEngine{prediction: -12}
	srv := createTestForecastService(f, engine)

	output, err := srv.SalesForecast(context.Background(), f.ownerID, f.businessID)

	require.NoError(t, err)
	for _, record := range output.Records {
		if record.Type == usecase.ForecastRecordForecast {
			assert.Zero(t, record.Sales)
		}
	}
}

func TestSalesForecast_ExcludesReturnedOrders(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 1000, "5.00", "8.00")
	f.addOrder(t, "Widget", 1, time.Now().AddDate(0, 0, -1), false)
	f.addOrder(t, "Widget", 9, time.Now().AddDate(0, 0, -1), true)
	engine := &stubEngine{}
	srv := createTestForecastService(f, engine)

	output, err := srv.SalesForecast(context.Background(), f.ownerID, f.businessID)

	require.NoError(t, err)
	require.Len(t, output.Records, 1)
	assert.InDelta(t, 8.00, output.Records[0].Sales, 0.001)
}

func TestRetrainModel(t *testing.T) {
	f := newFixtures(t)
	f.store.forecasts[f.businessID] = &entity.SalesForecastModel{
		BusinessID:       f.businessID,
		PolynomialDegree: 2,
	}
	engine := &stubEngine{}
	srv := createTestForecastService(f, engine)

	message, err := srv.RetrainModel(context.Background(), f.ownerID, f.businessID)

	require.NoError(t, err)
	assert.Equal(t, "Model retraining triggered successfully.", message)
	assert.Empty(t, f.store.forecasts)
}
