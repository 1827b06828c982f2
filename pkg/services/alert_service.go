package services

import (
	"fmt"
	"sort"
	"strings"

	"loom-monitor-api/pkg/models"
)

// AlertService データパターンからアラートを生成・優先度付けするサービス
type AlertService struct {
	analyticsService *AnalyticsService
}

// NewAlertService 新しいアラートサービスを作成
func NewAlertService(analyticsService *AnalyticsService) *AlertService {
	return &AlertService{
		analyticsService: analyticsService,
	}
}

// GenerateAlerts 現在のスナップショットからアラートを生成する。
// 各ルールは独立に評価され、最後に優先度の昇順で安定ソートされる。
// sensitivityはZスコア閾値（低いほどアラートが増える）。
func (as *AlertService) GenerateAlerts(prod []models.ProductionRecord, sup []models.SupplierRecord, sensitivity float64) []models.Alert {
	alerts := []models.Alert{}

	if len(prod) == 0 {
		return alerts
	}

	// 1. 機械ごとの低効率アラート
	machineEfficiencies := make(map[string][]float64)
	machineOrder := []string{}
	for _, r := range prod {
		if _, seen := machineEfficiencies[r.MachineID]; !seen {
			machineOrder = append(machineOrder, r.MachineID)
		}
		machineEfficiencies[r.MachineID] = append(machineEfficiencies[r.MachineID], r.Efficiency)
	}
	for _, machine := range machineOrder {
		avgEff := calculateMean(machineEfficiencies[machine])
		if avgEff < 70 {
			alerts = append(alerts, models.Alert{
				Severity:       models.SeverityCritical,
				Category:       "Production",
				Message:        fmt.Sprintf("Machine %s efficiency critically low at %.1f%%", machine, avgEff),
				Recommendation: fmt.Sprintf("Immediate inspection required for %s. Check mechanical systems and calibration.", machine),
				FocusArea:      "Machine Maintenance",
				Priority:       1,
			})
		}
	}

	// 2. 温度スパイクアラート
	highTemp := as.analyticsService.DetectSpike(prod, ColumnTemperatureC, sensitivity)
	if anyFlag(highTemp) {
		// 最初に検出された行で初期化する（負の温度でも正しい最大値になる）
		var maxTemp float64
		maxTempSet := false
		affected := []string{}
		seen := map[string]bool{}
		for i, flagged := range highTemp {
			if !flagged {
				continue
			}
			if !maxTempSet || prod[i].TemperatureC > maxTemp {
				maxTemp = prod[i].TemperatureC
				maxTempSet = true
			}
			if !seen[prod[i].MachineID] {
				seen[prod[i].MachineID] = true
				affected = append(affected, prod[i].MachineID)
			}
		}

		severity := models.SeverityWarning
		priority := 2
		if maxTemp > 40 {
			severity = models.SeverityCritical
			priority = 1
		}
		alerts = append(alerts, models.Alert{
			Severity:       severity,
			Category:       "Safety",
			Message:        fmt.Sprintf("Temperature spike detected: %.1f°C on %s", maxTemp, strings.Join(affected, ", ")),
			Recommendation: "Activate cooling systems. Reduce production load if temperature persists above 38°C.",
			FocusArea:      "Cooling Systems",
			Priority:       priority,
		})
	}

	// 3. ダウンタイム異常アラート
	downtimeAnomalies := as.analyticsService.DetectSpike(prod, ColumnDowntimeMinutes, sensitivity)
	if anyFlag(downtimeAnomalies) {
		var flaggedDowntimes []float64
		for i, flagged := range downtimeAnomalies {
			if flagged {
				flaggedDowntimes = append(flaggedDowntimes, prod[i].DowntimeMinutes)
			}
		}
		alerts = append(alerts, models.Alert{
			Severity:       models.SeverityWarning,
			Category:       "Operational",
			Message:        fmt.Sprintf("Abnormal downtime detected: %.1f minutes average", calculateMean(flaggedDowntimes)),
			Recommendation: "Investigate recent maintenance activities. Check for recurring fault patterns.",
			FocusArea:      "Downtime Reduction",
			Priority:       2,
		})
	}

	// 4. サプライチェーンアラート
	if len(sup) > 0 {
		delayedCount := 0
		delayedSuppliers := []string{}
		seen := map[string]bool{}
		for _, r := range sup {
			if r.SupplyRisk != models.SupplyDelayed {
				continue
			}
			delayedCount++
			if !seen[r.SupplierID] {
				seen[r.SupplierID] = true
				delayedSuppliers = append(delayedSuppliers, r.SupplierID)
			}
		}
		if delayedCount > 0 {
			severity := models.SeverityWarning
			priority := 2
			if delayedCount > 2 {
				severity = models.SeverityCritical
				priority = 1
			}
			alerts = append(alerts, models.Alert{
				Severity:       severity,
				Category:       "Supply Chain",
				Message:        fmt.Sprintf("%d delayed deliveries from %s", delayedCount, strings.Join(delayedSuppliers, ", ")),
				Recommendation: "Contact suppliers for expedited shipping. Activate backup supplier contracts.",
				FocusArea:      "Supplier Lead Time",
				Priority:       priority,
			})
		}
	}

	// 5. 効率低下トレンドアラート（10件以上のデータがある場合のみ）
	if len(prod) >= 10 {
		efficiencies, _ := productionColumn(prod, ColumnEfficiency)
		recentEff := calculateMean(efficiencies[len(efficiencies)-10:])
		olderEff := calculateMean(efficiencies[:10])
		effDrop := olderEff - recentEff

		if effDrop > 10 {
			alerts = append(alerts, models.Alert{
				Severity:       models.SeverityWarning,
				Category:       "Trend Analysis",
				Message:        fmt.Sprintf("Efficiency declining trend detected: -%.1f%% over recent period", effDrop),
				Recommendation: "Conduct comprehensive system audit. Review maintenance schedules.",
				FocusArea:      "System Performance",
				Priority:       2,
			})
		}
	}

	// 優先度の昇順で安定ソート（同順位は生成順を維持）
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority < alerts[j].Priority
	})
	return alerts
}

// PrioritizeAlerts (priority, severity文字列)で安定ソートした新しいリストを返す。
// 任意の外部保持リストに対して単独で使え、2回適用しても結果は変わらない。
func (as *AlertService) PrioritizeAlerts(alerts []models.Alert) []models.Alert {
	sorted := make([]models.Alert, len(alerts))
	copy(sorted, alerts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].Severity < sorted[j].Severity
	})
	return sorted
}

// CreateBannerMessage CRITICALアラートに対する常設警告バナーを作成する。
// CRITICALが1件もなければ空文字列（バナーなし）。先頭のCRITICALアラートを
// 主要フォーカスとして3行のメッセージを組み立てる。
func (as *AlertService) CreateBannerMessage(alerts []models.Alert) string {
	var criticalAlerts []models.Alert
	for _, a := range alerts {
		if a.Severity == models.SeverityCritical {
			criticalAlerts = append(criticalAlerts, a)
		}
	}

	if len(criticalAlerts) == 0 {
		return ""
	}

	topAlert := criticalAlerts[0]
	count := len(criticalAlerts)

	plural := ""
	if count > 1 {
		plural = "S"
	}

	banner := fmt.Sprintf("⚠️ IMMEDIATE ATTENTION REQUIRED: %d CRITICAL ISSUE%s\n", count, plural)
	banner += fmt.Sprintf("PRIMARY FOCUS: %s\n", topAlert.FocusArea)
	banner += fmt.Sprintf("REASON: %s", topAlert.Message)

	return banner
}

// BuildActionPlan アラートと現在のスコアから推奨アクションを
// 即時対応・短期対策・長期戦略に分類する。
func (as *AlertService) BuildActionPlan(alerts []models.Alert, healthScore, riskIndex float64) models.ActionPlan {
	plan := models.ActionPlan{}

	for _, a := range alerts {
		switch a.Severity {
		case models.SeverityCritical:
			plan.Immediate = append(plan.Immediate, a.Recommendation)
		case models.SeverityWarning:
			plan.ShortTerm = append(plan.ShortTerm, a.Recommendation)
		}
	}

	if healthScore < 80 {
		plan.LongTerm = append(plan.LongTerm,
			"Implement predictive maintenance schedule based on ML insights to prevent future degradation.",
			"Invest in temperature control system upgrades to maintain optimal operating conditions.")
	}
	if riskIndex > 50 {
		plan.LongTerm = append(plan.LongTerm, "Diversify supplier base to reduce supply chain risk exposure.")
	}

	if len(plan.Immediate) == 0 {
		plan.Immediate = append(plan.Immediate, "Continue monitoring all systems. Maintain current operational parameters.")
	}
	if len(plan.ShortTerm) == 0 {
		plan.ShortTerm = append(plan.ShortTerm, "Schedule routine maintenance for next available window. Review sensor calibrations.")
	}
	if len(plan.LongTerm) == 0 {
		plan.LongTerm = append(plan.LongTerm,
			"Document current best practices and train staff on optimal operating procedures.",
			"Plan for capacity expansion based on consistent performance metrics.")
	}

	return plan
}
