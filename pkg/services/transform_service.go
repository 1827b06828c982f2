package services

import (
	"fmt"
	"time"

	"loom-monitor-api/pkg/models"
)

// TransformService 生データを正規化済みテーブルへ変換するサービス
type TransformService struct{}

// NewTransformService 新しい変換サービスを作成
func NewTransformService() *TransformService {
	return &TransformService{}
}

// timestampLayouts 受け付けるタイムスタンプ形式
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp タイムスタンプ文字列をパース
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("タイムスタンプの形式が不正です: %q", value)
}

// parseDeliveryDate 納品日（YYYY-MM-DD）をパース
func parseDeliveryDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("納品日の形式が不正です（YYYY-MM-DDを期待）: %q", value)
	}
	return t, nil
}

// TransformProduction 生産データを正規化し、output_gapとefficiencyを導出する。
// 空の入力は空の出力をそのまま返す。target_output=0の行はefficiency=0とする
// （0除算を既定値で回避するポリシー）。
func (s *TransformService) TransformProduction(raw []models.RawProductionRow) ([]models.ProductionRecord, error) {
	if len(raw) == 0 {
		return []models.ProductionRecord{}, nil
	}

	records := make([]models.ProductionRecord, 0, len(raw))
	for _, row := range raw {
		ts, err := parseTimestamp(row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("生産データ（machine_id=%s）: %w", row.MachineID, err)
		}

		// target=0 のときは効率を0として扱う
		efficiency := 0.0
		if row.TargetOutput != 0 {
			efficiency = row.ActualOutput / row.TargetOutput * 100
		}

		records = append(records, models.ProductionRecord{
			Timestamp:       ts,
			MachineID:       row.MachineID,
			TargetOutput:    row.TargetOutput,
			ActualOutput:    row.ActualOutput,
			TemperatureC:    row.TemperatureC,
			DowntimeMinutes: row.DowntimeMinutes,
			SpeedRPM:        row.SpeedRPM,
			OutputGap:       row.TargetOutput - row.ActualOutput,
			Efficiency:      efficiency,
		})
	}

	return records, nil
}

// TransformSupplier サプライヤーデータを正規化し、supply_riskを導出する。
// 実際の納品日が予定日より1日以上遅い場合にDelayedとなる。
func (s *TransformService) TransformSupplier(raw []models.RawSupplierRow) ([]models.SupplierRecord, error) {
	if len(raw) == 0 {
		return []models.SupplierRecord{}, nil
	}

	records := make([]models.SupplierRecord, 0, len(raw))
	for _, row := range raw {
		ts, err := parseTimestamp(row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("サプライヤーデータ（supplier_id=%s）: %w", row.SupplierID, err)
		}
		expected, err := parseDeliveryDate(row.ExpectedDeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("サプライヤーデータ（supplier_id=%s）: %w", row.SupplierID, err)
		}
		actual, err := parseDeliveryDate(row.ActualDeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("サプライヤーデータ（supplier_id=%s）: %w", row.SupplierID, err)
		}

		risk := models.SupplyOnTime
		if actual.Sub(expected) >= 24*time.Hour {
			risk = models.SupplyDelayed
		}

		records = append(records, models.SupplierRecord{
			Timestamp:            ts,
			SupplierID:           row.SupplierID,
			MaterialType:         row.MaterialType,
			ExpectedDeliveryDate: expected,
			ActualDeliveryDate:   actual,
			OrderQuantity:        row.OrderQuantity,
			TransportationStatus: row.TransportationStatus,
			SupplyRisk:           risk,
		})
	}

	return records, nil
}
