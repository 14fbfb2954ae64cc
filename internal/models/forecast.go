package models

// ModelPrediction pairs a predicted next-day close with the observed value
// for one test-suffix row.
type ModelPrediction struct {
	Date      string  `json:"date"`
	Predicted float64 `json:"predicted"`
	Actual    float64 `json:"actual"`
}

// ModelMetrics summarizes one model variant's error statistics.
// Accuracy and DirectionalAccuracy are percentages in [0, 100].
type ModelMetrics struct {
	Accuracy            float64 `json:"accuracy"`
	RMSE                float64 `json:"rmse"`
	DirectionalAccuracy float64 `json:"directionalAccuracy"`
}

// ModelPredictions holds the per-variant prediction sequences.
type ModelPredictions struct {
	RandomForest     []ModelPrediction `json:"randomForest"`
	LinearRegression []ModelPrediction `json:"linearRegression"`
}

// VariantMetrics holds the per-variant metrics.
type VariantMetrics struct {
	RandomForest     ModelMetrics `json:"randomForest"`
	LinearRegression ModelMetrics `json:"linearRegression"`
}

// ForecastResult is the sole externally visible artifact of a forecast
// request. It is constructed once per request and never mutated afterward.
type ForecastResult struct {
	Symbol        string           `json:"symbol"`
	DateRange     string           `json:"dateRange"`
	CurrentPrice  float64          `json:"currentPrice"`
	Change        float64          `json:"change"`
	ChangePercent float64          `json:"changePercent"`
	Historical    []IndicatorBar   `json:"historical"`
	Predictions   ModelPredictions `json:"predictions"`
	ModelMetrics  VariantMetrics   `json:"modelMetrics"`
}
