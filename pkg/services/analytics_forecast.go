package services

import (
	"loom-monitor-api/pkg/models"
)

// ForecastMetrics 行インデックスを時間軸として線形予測を実行する。
// 過去データに1次の最小二乗近似を当て、horizonステップ先まで射影し、
// 残差の標準偏差から forecast ± 2σ の信頼区間を付ける（正規性を仮定した
// 近似95%区間であり、厳密な予測区間ではない）。
// テーブルが空、列名が未知、またはデータが2点未満の場合は空の結果を返す。
func (s *AnalyticsService) ForecastMetrics(records []models.ProductionRecord, column string, horizon int) []models.ForecastPoint {
	values, ok := productionColumn(records, column)
	if !ok || len(values) < 2 || horizon <= 0 {
		return []models.ForecastPoint{}
	}

	timeIdx := make([]float64, len(values))
	for i := range values {
		timeIdx[i] = float64(i)
	}

	regression, err := s.PerformLinearRegression(timeIdx, values)
	if err != nil {
		return []models.ForecastPoint{}
	}

	// 残差の標準偏差（予測の不確実性）
	residuals := make([]float64, len(values))
	for i := range values {
		predicted := regression.Slope*timeIdx[i] + regression.Intercept
		residuals[i] = values[i] - predicted
	}
	residualStd := calculateStandardDeviation(residuals)

	points := make([]models.ForecastPoint, 0, horizon)
	for step := 0; step < horizon; step++ {
		futureIdx := float64(len(values) + step)
		forecast := regression.Slope*futureIdx + regression.Intercept
		points = append(points, models.ForecastPoint{
			Forecast:   forecast,
			LowerBound: forecast - 2*residualStd,
			UpperBound: forecast + 2*residualStd,
		})
	}
	return points
}

// DecomposeTrend 時系列をトレンド・季節性・残差に分解する。
// トレンドは中心化移動平均で、窓が取れない両端は未定義（nil）になる。
// NaNはJSONに載せられないため、未定義位置はnilで表現する。
// 季節性はインデックスをperiodで割った余りごとのトレンド除去後平均。
func (s *AnalyticsService) DecomposeTrend(series []float64, period int) models.TrendComponents {
	n := len(series)
	observed := make([]float64, n)
	copy(observed, series)

	trend := make([]*float64, n)
	seasonal := make([]*float64, n)
	residual := make([]*float64, n)

	if n == 0 || period < 2 {
		return models.TrendComponents{Trend: trend, Seasonal: seasonal, Residual: residual, Observed: observed}
	}

	// 中心化移動平均
	half := period / 2
	rawTrend := make([]float64, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		lo := i - half
		hi := lo + period
		if lo < 0 || hi > n {
			continue
		}
		rawTrend[i] = calculateMean(series[lo:hi])
		valid[i] = true
	}

	// トレンド除去後、period周期ごとの平均を季節成分とする
	sums := make([]float64, period)
	counts := make([]int, period)
	for i := 0; i < n; i++ {
		if !valid[i] {
			continue
		}
		detrended := series[i] - rawTrend[i]
		sums[i%period] += detrended
		counts[i%period]++
	}

	for i := 0; i < n; i++ {
		if !valid[i] || counts[i%period] == 0 {
			continue
		}
		t := rawTrend[i]
		sv := sums[i%period] / float64(counts[i%period])
		r := series[i] - t - sv
		trend[i] = &t
		seasonal[i] = &sv
		residual[i] = &r
	}

	return models.TrendComponents{Trend: trend, Seasonal: seasonal, Residual: residual, Observed: observed}
}
