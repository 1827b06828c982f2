package services

import (
	"sync"
	"time"

	"loom-monitor-api/pkg/models"
)

// SnapshotService 最新の正規化済みスナップショットを保持するインメモリストア。
// コア側はデータソースへのハンドルを一切持たず、外部のコレクターが投入した
// スナップショットを読むだけにする。全分析は同一スナップショットのコピーに
// 対して走るため、1サイクル内の結果は相互に整合する。
type SnapshotService struct {
	production    []models.ProductionRecord
	supplier      []models.SupplierRecord
	updatedAt     time.Time
	maxProduction int
	maxSupplier   int
	mu            sync.RWMutex
}

// NewSnapshotService 新しいスナップショットストアを作成。
// maxProduction / maxSupplier は保持する行数の上限（最新行を優先）。
func NewSnapshotService(maxProduction, maxSupplier int) *SnapshotService {
	return &SnapshotService{
		production:    []models.ProductionRecord{},
		supplier:      []models.SupplierRecord{},
		maxProduction: maxProduction,
		maxSupplier:   maxSupplier,
	}
}

// Update スナップショットを丸ごと置き換える。上限を超える行は古い側から捨てる。
func (s *SnapshotService) Update(prod []models.ProductionRecord, sup []models.SupplierRecord) {
	if s.maxProduction > 0 && len(prod) > s.maxProduction {
		prod = prod[len(prod)-s.maxProduction:]
	}
	if s.maxSupplier > 0 && len(sup) > s.maxSupplier {
		sup = sup[len(sup)-s.maxSupplier:]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.production = append([]models.ProductionRecord{}, prod...)
	s.supplier = append([]models.SupplierRecord{}, sup...)
	s.updatedAt = time.Now()
}

// Snapshot 現在のスナップショットのコピーを返す。
// 呼び出し側が自由に読めるよう、内部スライスは共有しない。
func (s *SnapshotService) Snapshot() ([]models.ProductionRecord, []models.SupplierRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prod := append([]models.ProductionRecord{}, s.production...)
	sup := append([]models.SupplierRecord{}, s.supplier...)
	return prod, sup
}

// UpdatedAt 最後にスナップショットが更新された時刻を返す
func (s *SnapshotService) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
