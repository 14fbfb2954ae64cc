package service

import (
	"github.com/yourusername/stockcast/internal/ml"
	"github.com/yourusername/stockcast/internal/models"
)

// assembleResult packages bars, predictions, and metrics into the forecast
// result. Pure formatting; day-over-day change comes from the last two bars
// of the full indicator series, not the split.
func assembleResult(symbol, rangeToken string, historical []models.IndicatorBar, trained *ml.TrainResult) *models.ForecastResult {
	currentPrice := historical[len(historical)-1].Close
	previousPrice := currentPrice
	if len(historical) > 1 {
		previousPrice = historical[len(historical)-2].Close
	}

	change := currentPrice - previousPrice
	changePercent := 0.0
	if previousPrice != 0 {
		changePercent = change / previousPrice * 100
	}

	return &models.ForecastResult{
		Symbol:        symbol,
		DateRange:     rangeToken,
		CurrentPrice:  currentPrice,
		Change:        change,
		ChangePercent: changePercent,
		Historical:    historical,
		Predictions: models.ModelPredictions{
			RandomForest:     predictionPoints(trained.RandomForest, trained),
			LinearRegression: predictionPoints(trained.LinearRegression, trained),
		},
		ModelMetrics: models.VariantMetrics{
			RandomForest:     ml.Evaluate(trained.RandomForest, trained.Actuals),
			LinearRegression: ml.Evaluate(trained.LinearRegression, trained.Actuals),
		},
	}
}

func predictionPoints(predicted []float64, trained *ml.TrainResult) []models.ModelPrediction {
	points := make([]models.ModelPrediction, len(predicted))
	for i, p := range predicted {
		points[i] = models.ModelPrediction{
			Date:      trained.TestDates[i].Format("2006-01-02"),
			Predicted: p,
			Actual:    trained.Actuals[i],
		}
	}
	return points
}
