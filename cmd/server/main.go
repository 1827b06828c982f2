package main

import (
	"log"
	"net/http"

	config "loom-monitor-api/configs"
	"loom-monitor-api/pkg/handlers"
	"loom-monitor-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()

	// Ginルーターの初期化
	r := gin.Default()

	// サービスの初期化
	monitoringService := services.NewMonitoringService()
	transformService := services.NewTransformService()
	snapshotService := services.NewSnapshotService(cfg.MaxProductionRecords, cfg.MaxSupplierRecords)
	analyticsService := services.NewAnalyticsService()
	scoringService := services.NewScoringService()
	alertService := services.NewAlertService(analyticsService)
	simulationService := services.NewSimulationService()
	exportService := services.NewExportService()
	reportService := services.NewReportService(analyticsService, scoringService, alertService, cfg.EfficiencyThreshold)

	// ハンドラーの初期化
	ingestHandler := handlers.NewIngestHandler(transformService, snapshotService)
	dashboardHandler := handlers.NewDashboardHandler(snapshotService, scoringService, alertService, reportService, cfg.AlertSensitivity)
	alertHandler := handlers.NewAlertHandler(snapshotService, alertService, cfg.AlertSensitivity)
	analyticsHandler := handlers.NewAnalyticsHandler(snapshotService, analyticsService, cfg.EfficiencyThreshold)
	simulationHandler := handlers.NewSimulationHandler(simulationService)
	exportHandler := handlers.NewExportHandler(snapshotService, exportService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// ミドルウェアの登録
	r.Use(monitoringService.LoggingMiddleware()) // ロギングミドルウェアをグローバルに適用
	r.Use(cors.Default())

	// 認証ミドルウェア
	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" || apiKey == "default_secret_key" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	// ヘルスチェックエンドポイント
	r.GET("/health", handlers.HealthCheck)

	// APIバージョン1のルートグループ
	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		// スナップショット投入API
		ingest := v1.Group("/ingest")
		{
			ingest.POST("/snapshot", ingestHandler.IngestSnapshot)
		}

		// ダッシュボードAPI
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardHandler.GetSummary)
			dashboard.GET("/report", dashboardHandler.GetReport)
		}

		// アラートAPI
		alerts := v1.Group("/alerts")
		{
			alerts.GET("", alertHandler.GetAlerts)
			alerts.GET("/banner", alertHandler.GetBanner)
		}

		// 分析API
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/forecast", analyticsHandler.GetForecast)
			analytics.GET("/feature-importance", analyticsHandler.GetFeatureImportance)
			analytics.GET("/root-causes", analyticsHandler.GetRootCauses)
			analytics.GET("/trend", analyticsHandler.GetTrendDecomposition)
		}

		// What-IfシミュレーションAPI
		v1.POST("/simulate", simulationHandler.RunSimulation)

		// エクスポートAPI
		export := v1.Group("/export")
		{
			export.GET("/production.csv", exportHandler.DownloadProductionCSV)
			export.GET("/supplier.csv", exportHandler.DownloadSupplierCSV)
			export.GET("/snapshot.xlsx", exportHandler.DownloadWorkbook)
		}

		// モニタリングAPI
		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	log.Println("Starting LOOM Monitor-API server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
