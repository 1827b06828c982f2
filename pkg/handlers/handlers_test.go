package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"loom-monitor-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newTestRouter テスト用のルーターと各サービスを組み立てるヘルパー
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	transformService := services.NewTransformService()
	snapshotService := services.NewSnapshotService(100, 50)
	analyticsService := services.NewAnalyticsService()
	scoringService := services.NewScoringService()
	alertService := services.NewAlertService(analyticsService)
	simulationService := services.NewSimulationService()
	exportService := services.NewExportService()
	reportService := services.NewReportService(analyticsService, scoringService, alertService, 75.0)

	ingestHandler := NewIngestHandler(transformService, snapshotService)
	dashboardHandler := NewDashboardHandler(snapshotService, scoringService, alertService, reportService, 1.5)
	alertHandler := NewAlertHandler(snapshotService, alertService, 1.5)
	analyticsHandler := NewAnalyticsHandler(snapshotService, analyticsService, 75.0)
	simulationHandler := NewSimulationHandler(simulationService)
	exportHandler := NewExportHandler(snapshotService, exportService)

	router := gin.New()
	router.GET("/health", HealthCheck)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/ingest/snapshot", ingestHandler.IngestSnapshot)
		v1.GET("/dashboard/summary", dashboardHandler.GetSummary)
		v1.GET("/dashboard/report", dashboardHandler.GetReport)
		v1.GET("/alerts", alertHandler.GetAlerts)
		v1.GET("/alerts/banner", alertHandler.GetBanner)
		v1.GET("/analytics/forecast", analyticsHandler.GetForecast)
		v1.GET("/analytics/feature-importance", analyticsHandler.GetFeatureImportance)
		v1.GET("/analytics/root-causes", analyticsHandler.GetRootCauses)
		v1.GET("/analytics/trend", analyticsHandler.GetTrendDecomposition)
		v1.POST("/simulate", simulationHandler.RunSimulation)
		v1.GET("/export/production.csv", exportHandler.DownloadProductionCSV)
		v1.GET("/export/supplier.csv", exportHandler.DownloadSupplierCSV)
	}
	return router
}

// ingestTestSnapshot ルーター経由でテスト用スナップショットを投入するヘルパー
func ingestTestSnapshot(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest("POST", "/api/v1/ingest/snapshot", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const healthySnapshotJSON = `{
	"production": [
		{"timestamp": "2024-01-10 08:00:00", "machine_id": "LOOM-01", "target_output": 100, "actual_output": 90, "temperature_c": 32.0, "downtime_minutes": 0, "speed_rpm": 1200},
		{"timestamp": "2024-01-10 09:00:00", "machine_id": "LOOM-01", "target_output": 100, "actual_output": 92, "temperature_c": 32.5, "downtime_minutes": 0, "speed_rpm": 1195},
		{"timestamp": "2024-01-10 10:00:00", "machine_id": "LOOM-02", "target_output": 100, "actual_output": 88, "temperature_c": 33.0, "downtime_minutes": 1, "speed_rpm": 1210}
	],
	"supplier": [
		{"timestamp": "2024-01-10 08:00:00", "supplier_id": "SUP-01", "material_type": "Cotton Yarn", "expected_delivery_date": "2024-01-10", "actual_delivery_date": "2024-01-10", "order_quantity": 500, "transportation_status": "Delivered"}
	]
}`

const degradedSnapshotJSON = `{
	"production": [
		{"timestamp": "2024-01-10 08:00:00", "machine_id": "LOOM-01", "target_output": 100, "actual_output": 60, "temperature_c": 32.0, "downtime_minutes": 0, "speed_rpm": 1200},
		{"timestamp": "2024-01-10 09:00:00", "machine_id": "LOOM-01", "target_output": 100, "actual_output": 62, "temperature_c": 32.5, "downtime_minutes": 0, "speed_rpm": 1195},
		{"timestamp": "2024-01-10 10:00:00", "machine_id": "LOOM-01", "target_output": 100, "actual_output": 58, "temperature_c": 33.0, "downtime_minutes": 1, "speed_rpm": 1210}
	],
	"supplier": []
}`

func TestHealthCheckEndpoint(t *testing.T) {
	router := newTestRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "LOOM Monitor-API")
}

func TestIngestSnapshot(t *testing.T) {
	router := newTestRouter()

	w := ingestTestSnapshot(t, router, healthySnapshotJSON)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(3), response["production_records"])
	assert.Equal(t, float64(1), response["supplier_records"])
}

func TestIngestSnapshotInvalidTimestamp(t *testing.T) {
	router := newTestRouter()

	body := `{
		"production": [
			{"timestamp": "not-a-date", "machine_id": "LOOM-01", "target_output": 100, "actual_output": 90}
		],
		"supplier": []
	}`
	w := ingestTestSnapshot(t, router, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestDashboardSummaryAfterIngest(t *testing.T) {
	router := newTestRouter()
	ingestTestSnapshot(t, router, healthySnapshotJSON)

	req, _ := http.NewRequest("GET", "/api/v1/dashboard/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			HealthScore   float64 `json:"health_score"`
			RiskIndex     float64 `json:"risk_index"`
			AlertCount    int     `json:"alert_count"`
			CriticalCount int     `json:"critical_count"`
			Insight       string  `json:"insight"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Greater(t, response.Data.HealthScore, 80.0)
	assert.Equal(t, 0, response.Data.AlertCount)
	assert.NotEmpty(t, response.Data.Insight)
}

func TestAlertsFlowForDegradedSnapshot(t *testing.T) {
	router := newTestRouter()
	ingestTestSnapshot(t, router, degradedSnapshotJSON)

	// 平均効率60%の機械 → CRITICALアラートが返る
	req, _ := http.NewRequest("GET", "/api/v1/alerts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CRITICAL")
	assert.Contains(t, w.Body.String(), "efficiency critically low")

	// バナーも併せて確認
	req, _ = http.NewRequest("GET", "/api/v1/alerts/banner", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "IMMEDIATE ATTENTION REQUIRED")
	assert.Contains(t, w.Body.String(), "Machine Maintenance")
}

func TestAlertsBannerEmptyForHealthySnapshot(t *testing.T) {
	router := newTestRouter()
	ingestTestSnapshot(t, router, healthySnapshotJSON)

	req, _ := http.NewRequest("GET", "/api/v1/alerts/banner", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "", response["banner"])
}

func TestDashboardReport(t *testing.T) {
	router := newTestRouter()
	ingestTestSnapshot(t, router, healthySnapshotJSON)

	req, _ := http.NewRequest("GET", "/api/v1/dashboard/report", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "report_id")
	assert.Contains(t, w.Body.String(), "action_plan")
	assert.Contains(t, w.Body.String(), "root_causes")
}

func TestForecastEndpoint(t *testing.T) {
	router := newTestRouter()
	ingestTestSnapshot(t, router, healthySnapshotJSON)

	req, _ := http.NewRequest("GET", "/api/v1/analytics/forecast?column=efficiency&horizon=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success  bool   `json:"success"`
		Column   string `json:"column"`
		Horizon  int    `json:"horizon"`
		Forecast []struct {
			Forecast   float64 `json:"forecast"`
			LowerBound float64 `json:"lower_bound"`
			UpperBound float64 `json:"upper_bound"`
		} `json:"forecast"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "efficiency", response.Column)
	assert.Equal(t, 5, response.Horizon)
	assert.Len(t, response.Forecast, 5)
}

func TestTrendEndpoint(t *testing.T) {
	router := newTestRouter()

	// 周期性のある20件の生産データを投入する
	rows := make([]map[string]interface{}, 20)
	for i := range rows {
		rows[i] = map[string]interface{}{
			"timestamp":     fmt.Sprintf("2024-01-10 %02d:00:00", i),
			"machine_id":    "LOOM-01",
			"target_output": 100,
			"actual_output": 85 + 5*float64(i%4),
			"temperature_c": 32.0,
			"speed_rpm":     1200,
		}
	}
	body, err := json.Marshal(map[string]interface{}{"production": rows, "supplier": []interface{}{}})
	assert.NoError(t, err)
	w := ingestTestSnapshot(t, router, string(body))
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("GET", "/api/v1/analytics/trend?column=efficiency&period=4", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.Bytes())

	// レスポンスはそのままJSONとしてデコードできる
	var response struct {
		Success    bool   `json:"success"`
		Column     string `json:"column"`
		Period     int    `json:"period"`
		Components struct {
			Trend    []*float64 `json:"trend"`
			Seasonal []*float64 `json:"seasonal"`
			Residual []*float64 `json:"residual"`
			Observed []float64  `json:"observed"`
		} `json:"components"`
	}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "efficiency", response.Column)
	assert.Equal(t, 4, response.Period)
	assert.Len(t, response.Components.Observed, 20)

	// 両端は未定義（null）、中央部には値が入る
	assert.Nil(t, response.Components.Trend[0])
	assert.NotNil(t, response.Components.Trend[10])
	assert.NotNil(t, response.Components.Seasonal[10])
}

func TestTrendEndpointUnknownColumn(t *testing.T) {
	router := newTestRouter()
	ingestTestSnapshot(t, router, healthySnapshotJSON)

	req, _ := http.NewRequest("GET", "/api/v1/analytics/trend?column=humidity", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulateEndpoint(t *testing.T) {
	router := newTestRouter()

	body := `{"current_health": 70, "current_risk": 30, "efficiency_change": 10, "temperature_change": 0, "supply_improvement": 0}`
	req, _ := http.NewRequest("POST", "/api/v1/simulate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			ProjectedHealth float64 `json:"projected_health"`
			ProjectedRisk   float64 `json:"projected_risk"`
			CostImpact      float64 `json:"cost_impact"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, 74.0, response.Data.ProjectedHealth)
	assert.Equal(t, 26.0, response.Data.ProjectedRisk)
	assert.Equal(t, 2000.0, response.Data.CostImpact)
}

func TestSimulateEndpointZeroHealth(t *testing.T) {
	router := newTestRouter()

	// current_health=0は正当な入力として受理される
	body := `{"current_health": 0, "current_risk": 100, "efficiency_change": 10, "temperature_change": 0, "supply_improvement": 0}`
	req, _ := http.NewRequest("POST", "/api/v1/simulate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			ProjectedHealth float64 `json:"projected_health"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, 4.0, response.Data.ProjectedHealth)
}

func TestSimulateEndpointMalformedBody(t *testing.T) {
	router := newTestRouter()

	req, _ := http.NewRequest("POST", "/api/v1/simulate", bytes.NewBufferString(`{"current_health": "high"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportProductionCSVEndpoint(t *testing.T) {
	router := newTestRouter()
	ingestTestSnapshot(t, router, healthySnapshotJSON)

	req, _ := http.NewRequest("GET", "/api/v1/export/production.csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "production_data_")
	assert.Contains(t, w.Body.String(), "machine_id")
	assert.Contains(t, w.Body.String(), "LOOM-01")
}
