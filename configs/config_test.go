package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// テスト用の環境変数を設定
	testCases := map[string]string{
		"PORT":                   "9090",
		"ENVIRONMENT":            "test",
		"API_KEY":                "test-key",
		"ALERT_SENSITIVITY":      "2.0",
		"EFFICIENCY_THRESHOLD":   "70",
		"MAX_PRODUCTION_RECORDS": "200",
		"MAX_SUPPLIER_RECORDS":   "80",
	}

	// 環境変数を設定
	for key, value := range testCases {
		os.Setenv(key, value)
	}

	// テスト後にクリーンアップ
	defer func() {
		for key := range testCases {
			os.Unsetenv(key)
		}
	}()

	// 設定を読み込み
	cfg := LoadConfig()

	// 検証
	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be '9090', got '%s'", cfg.Port)
	}

	if cfg.Environment != "test" {
		t.Errorf("Expected Environment to be 'test', got '%s'", cfg.Environment)
	}

	if cfg.APIKey != "test-key" {
		t.Errorf("Expected APIKey to be 'test-key', got '%s'", cfg.APIKey)
	}

	if cfg.AlertSensitivity != 2.0 {
		t.Errorf("Expected AlertSensitivity to be 2.0, got %f", cfg.AlertSensitivity)
	}

	if cfg.EfficiencyThreshold != 70.0 {
		t.Errorf("Expected EfficiencyThreshold to be 70.0, got %f", cfg.EfficiencyThreshold)
	}

	if cfg.MaxProductionRecords != 200 {
		t.Errorf("Expected MaxProductionRecords to be 200, got %d", cfg.MaxProductionRecords)
	}

	if cfg.MaxSupplierRecords != 80 {
		t.Errorf("Expected MaxSupplierRecords to be 80, got %d", cfg.MaxSupplierRecords)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	// 環境変数をクリア
	vars := []string{
		"PORT", "ENVIRONMENT", "API_KEY", "ALERT_SENSITIVITY",
		"EFFICIENCY_THRESHOLD", "MAX_PRODUCTION_RECORDS", "MAX_SUPPLIER_RECORDS",
	}

	for _, v := range vars {
		os.Unsetenv(v)
	}

	// 設定を読み込み
	cfg := LoadConfig()

	// デフォルト値の検証
	if cfg.Port != "8080" {
		t.Errorf("Expected default Port to be '8080', got '%s'", cfg.Port)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
	}

	if cfg.AlertSensitivity != 1.5 {
		t.Errorf("Expected default AlertSensitivity to be 1.5, got %f", cfg.AlertSensitivity)
	}

	if cfg.EfficiencyThreshold != 75.0 {
		t.Errorf("Expected default EfficiencyThreshold to be 75.0, got %f", cfg.EfficiencyThreshold)
	}
}

func TestLoadConfigInvalidNumbers(t *testing.T) {
	// 数値として解釈できない値はデフォルトに落ちる
	os.Setenv("ALERT_SENSITIVITY", "high")
	os.Setenv("MAX_PRODUCTION_RECORDS", "many")
	defer func() {
		os.Unsetenv("ALERT_SENSITIVITY")
		os.Unsetenv("MAX_PRODUCTION_RECORDS")
	}()

	cfg := LoadConfig()

	if cfg.AlertSensitivity != 1.5 {
		t.Errorf("Expected AlertSensitivity fallback to be 1.5, got %f", cfg.AlertSensitivity)
	}

	if cfg.MaxProductionRecords != 100 {
		t.Errorf("Expected MaxProductionRecords fallback to be 100, got %d", cfg.MaxProductionRecords)
	}
}
