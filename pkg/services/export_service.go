package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"loom-monitor-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// ExportService スナップショットをCSV / Excelワークブックとして書き出すサービス
type ExportService struct{}

// NewExportService 新しいエクスポートサービスを作成
func NewExportService() *ExportService {
	return &ExportService{}
}

var productionExportHeader = []string{
	"timestamp", "machine_id", "target_output", "actual_output",
	"efficiency", "output_gap", "temperature_c", "downtime_minutes", "speed_rpm",
}

var supplierExportHeader = []string{
	"timestamp", "supplier_id", "material_type", "expected_delivery_date",
	"actual_delivery_date", "order_quantity", "transportation_status", "supply_risk",
}

// ExportProductionCSV 生産スナップショットをCSVバイト列として返す
func (s *ExportService) ExportProductionCSV(records []models.ProductionRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(productionExportHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.MachineID,
			fmt.Sprintf("%.1f", r.TargetOutput),
			fmt.Sprintf("%.1f", r.ActualOutput),
			fmt.Sprintf("%.1f", r.Efficiency),
			fmt.Sprintf("%.1f", r.OutputGap),
			fmt.Sprintf("%.1f", r.TemperatureC),
			fmt.Sprintf("%.1f", r.DowntimeMinutes),
			fmt.Sprintf("%.1f", r.SpeedRPM),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportSupplierCSV サプライヤースナップショットをCSVバイト列として返す
func (s *ExportService) ExportSupplierCSV(records []models.SupplierRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(supplierExportHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.SupplierID,
			r.MaterialType,
			r.ExpectedDeliveryDate.Format("2006-01-02"),
			r.ActualDeliveryDate.Format("2006-01-02"),
			fmt.Sprintf("%.0f", r.OrderQuantity),
			r.TransportationStatus,
			string(r.SupplyRisk),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportWorkbook 生産・サプライヤー両テーブルを1つのExcelワークブックに
// まとめて返す（シートはProduction / Supplierの2枚）
func (s *ExportService) ExportWorkbook(prod []models.ProductionRecord, sup []models.SupplierRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const prodSheet = "Production"
	const supSheet = "Supplier"

	if err := f.SetSheetName("Sheet1", prodSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(supSheet); err != nil {
		return nil, err
	}

	// 生産シート
	for col, name := range productionExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(prodSheet, cell, name); err != nil {
			return nil, err
		}
	}
	for i, r := range prod {
		values := []interface{}{
			r.Timestamp.Format(time.RFC3339), r.MachineID, r.TargetOutput, r.ActualOutput,
			r.Efficiency, r.OutputGap, r.TemperatureC, r.DowntimeMinutes, r.SpeedRPM,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(prodSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// サプライヤーシート
	for col, name := range supplierExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(supSheet, cell, name); err != nil {
			return nil, err
		}
	}
	for i, r := range sup {
		values := []interface{}{
			r.Timestamp.Format(time.RFC3339), r.SupplierID, r.MaterialType,
			r.ExpectedDeliveryDate.Format("2006-01-02"), r.ActualDeliveryDate.Format("2006-01-02"),
			r.OrderQuantity, r.TransportationStatus, string(r.SupplyRisk),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(supSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
