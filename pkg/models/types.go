package models

import "time"

// Severity アラートの深刻度（閉じた列挙型）
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeveritySafe     Severity = "SAFE"
	SeverityInfo     Severity = "INFO"
)

// Valid reports whether s is one of the defined severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeveritySafe, SeverityInfo:
		return true
	}
	return false
}

// Emoji 深刻度に対応する絵文字を返す
func (s Severity) Emoji() string {
	switch s {
	case SeverityCritical:
		return "🔴"
	case SeverityWarning:
		return "🟡"
	case SeveritySafe:
		return "🟢"
	case SeverityInfo:
		return "🔵"
	}
	return "⚪"
}

// SupplyRisk サプライヤー納品の遅延ステータス（二値）
type SupplyRisk string

const (
	SupplyOnTime  SupplyRisk = "On Time"
	SupplyDelayed SupplyRisk = "Delayed"
)

// RawProductionRow represents a production telemetry row as received from the
// external collector, before normalization.
type RawProductionRow struct {
	Timestamp       string  `json:"timestamp" binding:"required"`
	MachineID       string  `json:"machine_id" binding:"required"`
	TargetOutput    float64 `json:"target_output"`
	ActualOutput    float64 `json:"actual_output"`
	TemperatureC    float64 `json:"temperature_c"`
	DowntimeMinutes float64 `json:"downtime_minutes"`
	SpeedRPM        float64 `json:"speed_rpm"`
}

// RawSupplierRow represents a supplier telemetry row before normalization.
type RawSupplierRow struct {
	Timestamp            string  `json:"timestamp" binding:"required"`
	SupplierID           string  `json:"supplier_id" binding:"required"`
	MaterialType         string  `json:"material_type"`
	ExpectedDeliveryDate string  `json:"expected_delivery_date"`
	ActualDeliveryDate   string  `json:"actual_delivery_date"`
	OrderQuantity        float64 `json:"order_quantity"`
	TransportationStatus string  `json:"transportation_status"`
}

// ProductionRecord 正規化済みの生産レコード。OutputGapとEfficiencyは
// 正規化時に一度だけ導出され、その後は不変。
type ProductionRecord struct {
	Timestamp       time.Time `json:"timestamp"`
	MachineID       string    `json:"machine_id"`
	TargetOutput    float64   `json:"target_output"`
	ActualOutput    float64   `json:"actual_output"`
	TemperatureC    float64   `json:"temperature_c"`
	DowntimeMinutes float64   `json:"downtime_minutes"`
	SpeedRPM        float64   `json:"speed_rpm"`
	OutputGap       float64   `json:"output_gap"`
	Efficiency      float64   `json:"efficiency"` // actual/target*100、target=0のときは0
}

// SupplierRecord 正規化済みのサプライヤーレコード
type SupplierRecord struct {
	Timestamp            time.Time  `json:"timestamp"`
	SupplierID           string     `json:"supplier_id"`
	MaterialType         string     `json:"material_type"`
	ExpectedDeliveryDate time.Time  `json:"expected_delivery_date"`
	ActualDeliveryDate   time.Time  `json:"actual_delivery_date"`
	OrderQuantity        float64    `json:"order_quantity"`
	TransportationStatus string     `json:"transportation_status"`
	SupplyRisk           SupplyRisk `json:"supply_risk"`
}

// Alert 1件のアラート。毎評価サイクルで再計算される値オブジェクトで、
// 識別子も永続化も持たない。
type Alert struct {
	Severity       Severity `json:"severity"`
	Category       string   `json:"category"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
	FocusArea      string   `json:"focus_area"`
	Priority       int      `json:"priority"` // 1が最優先
}

// ForecastPoint 予測1ステップ分の値と信頼区間
type ForecastPoint struct {
	Forecast   float64 `json:"forecast"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// RegressionResult represents the result of a least-squares linear fit
type RegressionResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

// RootCause 効率低下への寄与要因1件
type RootCause struct {
	Factor       string  `json:"factor"`
	Impact       string  `json:"impact"`
	Contribution float64 `json:"contribution"` // 0-100
}

// DowntimeRiskPrediction ダウンタイムリスクの簡易予測結果
type DowntimeRiskPrediction struct {
	Accuracy  float64 `json:"accuracy"`
	RiskScore float64 `json:"risk_score"`
	RiskLevel string  `json:"risk_level"` // "Critical", "Warning", "Stable", "Low"
}

// TrendComponents represents a time series decomposed into trend, seasonal,
// and residual components. Edge positions where the centered moving average
// is undefined hold nil so the struct marshals to JSON as-is.
type TrendComponents struct {
	Trend    []*float64 `json:"trend"`
	Seasonal []*float64 `json:"seasonal"`
	Residual []*float64 `json:"residual"`
	Observed []float64  `json:"observed"`
}

// SimulationRequest What-Ifシナリオの入力。current_health=0は正当な入力
// なので、ゼロ値を拒否するrequiredバインディングは付けない。
type SimulationRequest struct {
	CurrentHealth     float64 `json:"current_health"`
	CurrentRisk       float64 `json:"current_risk"`
	EfficiencyChange  float64 `json:"efficiency_change"`
	TemperatureChange float64 `json:"temperature_change"`
	SupplyImprovement float64 `json:"supply_improvement"`
}

// SimulationResult What-Ifシナリオの射影結果
type SimulationResult struct {
	ProjectedHealth float64 `json:"projected_health"`
	ProjectedRisk   float64 `json:"projected_risk"`
	HealthChange    float64 `json:"health_change"`
	RiskChange      float64 `json:"risk_change"`
	CostImpact      float64 `json:"cost_impact"` // 月あたりの推定コスト（USD）
}

// ActionPlan アラートと現在のスコアから導いた推奨アクションの分類
type ActionPlan struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// InsightReport represents a full analysis pass over the current snapshot
type InsightReport struct {
	ReportID          string                 `json:"report_id"`
	GeneratedAt       string                 `json:"generated_at"`
	HealthScore       float64                `json:"health_score"`
	RiskIndex         float64                `json:"risk_index"`
	Insight           string                 `json:"insight"`
	Alerts            []Alert                `json:"alerts"`
	Banner            string                 `json:"banner,omitempty"`
	RootCauses        []RootCause            `json:"root_causes"`
	FeatureImportance map[string]float64     `json:"feature_importance"`
	DowntimeRisk      DowntimeRiskPrediction `json:"downtime_risk"`
	ActionPlan        ActionPlan             `json:"action_plan"`
	DataPoints        int                    `json:"data_points"`
}

// SnapshotIngestRequest 外部コレクターからのスナップショット投入リクエスト
type SnapshotIngestRequest struct {
	Production []RawProductionRow `json:"production"`
	Supplier   []RawSupplierRow   `json:"supplier"`
}

// DashboardSummary ダッシュボード先頭に出すKPIのまとめ
type DashboardSummary struct {
	HealthScore   float64                `json:"health_score"`
	RiskIndex     float64                `json:"risk_index"`
	AvgEfficiency float64                `json:"avg_efficiency"`
	TotalOutput   float64                `json:"total_output"`
	AlertCount    int                    `json:"alert_count"`
	CriticalCount int                    `json:"critical_count"`
	Insight       string                 `json:"insight"`
	DowntimeRisk  DowntimeRiskPrediction `json:"downtime_risk"`
	Banner        string                 `json:"banner,omitempty"`
}
