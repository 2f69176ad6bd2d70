package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio/models"
)

// GormStore keeps one like_counts row per item.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, ErrNilClient
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) LoadAll(ctx context.Context) (Counts, error) {
	var rows []models.LikeCount
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load like counts: %w", err)
	}
	counts := make(Counts, len(rows))
	for _, r := range rows {
		counts[r.ItemID] = r.Count
	}
	return counts, nil
}

func (s *GormStore) SaveAll(ctx context.Context, counts Counts) error {
	rows := make([]models.LikeCount, 0, len(counts))
	for id, n := range counts {
		rows = append(rows, models.LikeCount{ItemID: id, Count: n})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.LikeCount{}).Error; err != nil {
			return fmt.Errorf("clear like counts: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("insert like counts: %w", err)
		}
		return nil
	})
}

func (s *GormStore) Adjust(ctx context.Context, itemID string, delta int) (int, error) {
	var row models.LikeCount
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"likes":      gorm.Expr(clampExpr(tx), delta),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).Create(&models.LikeCount{ItemID: itemID, Count: max(delta, 0)}).Error
		if err != nil {
			return err
		}
		return tx.First(&row, "item_id = ?", itemID).Error
	})
	if err != nil {
		return 0, fmt.Errorf("adjust %q: %w", itemID, err)
	}
	return row.Count, nil
}

// clampExpr 返回 likes + delta 且不小于 0 的表达式；sqlite 没有 GREATEST
func clampExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "MAX(likes + ?, 0)"
	}
	return "GREATEST(likes + ?, 0)"
}

func (s *GormStore) Top(ctx context.Context, n int) ([]Ranked, error) {
	var rows []models.LikeCount
	err := s.db.WithContext(ctx).
		Order("likes DESC").Order("item_id ASC").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("rank like counts: %w", err)
	}
	out := make([]Ranked, 0, len(rows))
	for _, r := range rows {
		out = append(out, Ranked{ItemID: r.ItemID, Count: r.Count})
	}
	return out, nil
}
