package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulateWhatIf(t *testing.T) {
	service := NewSimulationService()

	// 効率+10% → ヘルス+4.0、リスクはヘルスの鏡像
	result := service.SimulateWhatIf(70, 30, 10, 0, 0)
	assert.Equal(t, 74.0, result.ProjectedHealth)
	assert.Equal(t, 26.0, result.ProjectedRisk)
	assert.Equal(t, 4.0, result.HealthChange)
	assert.Equal(t, 4.0, result.RiskChange)
	assert.Equal(t, 2000.0, result.CostImpact)
}

func TestSimulateWhatIfTemperaturePenalty(t *testing.T) {
	service := NewSimulationService()

	// 温度変化は方向に関係なくペナルティになる
	up := service.SimulateWhatIf(80, 20, 0, 5, 0)
	down := service.SimulateWhatIf(80, 20, 0, -5, 0)
	assert.Equal(t, 78.0, up.ProjectedHealth)
	assert.Equal(t, up.ProjectedHealth, down.ProjectedHealth)
	assert.Equal(t, -2.0, up.HealthChange)
}

func TestSimulateWhatIfSupplyImprovement(t *testing.T) {
	service := NewSimulationService()

	result := service.SimulateWhatIf(70, 30, 0, 0, 10)
	assert.Equal(t, 72.0, result.ProjectedHealth)
	assert.Equal(t, 2.0, result.HealthChange)
	assert.Equal(t, 1000.0, result.CostImpact)
}

func TestSimulateWhatIfClamping(t *testing.T) {
	service := NewSimulationService()

	// 射影ヘルスは100でクランプされる
	result := service.SimulateWhatIf(98, 2, 20, 0, 0)
	assert.Equal(t, 100.0, result.ProjectedHealth)
	assert.Equal(t, 0.0, result.ProjectedRisk)
	assert.Equal(t, 2.0, result.HealthChange)

	// 下限は0
	result = service.SimulateWhatIf(5, 95, -50, 0, 0)
	assert.Equal(t, 0.0, result.ProjectedHealth)
	assert.Equal(t, 100.0, result.ProjectedRisk)
}

func TestSimulateWhatIfNoChange(t *testing.T) {
	service := NewSimulationService()

	result := service.SimulateWhatIf(70, 30, 0, 0, 0)
	assert.Equal(t, 70.0, result.ProjectedHealth)
	assert.Equal(t, 0.0, result.HealthChange)
	assert.Equal(t, 0.0, result.CostImpact)
}
