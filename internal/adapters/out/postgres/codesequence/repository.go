// Package codesequence stores the per-year counter behind order codes.
package codesequence

import (
	"context"
	"errors"
	"fmt"

	"production/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceDTO holds the last number handed out for a year.
type SequenceDTO struct {
	Year      int `gorm:"primaryKey;autoIncrement:false"`
	LastValue int `gorm:"not null"`
}

func (SequenceDTO) TableName() string {
	return "order_code_sequences"
}

// GormCodeSequence implements ports.CodeSequence. Each call runs in its own
// short transaction on the pool, never inside a caller's unit of work, so a
// rolled back order does not release its number and concurrent creators only
// contend on the counter row.
type GormCodeSequence struct {
	db *gorm.DB
}

func NewGormCodeSequence(db *gorm.DB) *GormCodeSequence {
	return &GormCodeSequence{db: db}
}

// Next increments and returns the counter for year. The first call for a year
// seeds the counter from the highest OP-<year>-N code already stored, so codes
// created before the counter existed are never reissued.
func (s *GormCodeSequence) Next(ctx context.Context, year int) (int, error) {
	if year < 1 || year > 9999 {
		return 0, fmt.Errorf("year %d out of range", year)
	}

	var next int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockRow(tx, year)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seed, seedErr := maxStoredSequence(tx, year)
			if seedErr != nil {
				return seedErr
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&SequenceDTO{Year: year, LastValue: seed}).Error; err != nil {
				return err
			}
			row, err = lockRow(tx, year)
		}
		if err != nil {
			return err
		}

		next = row.LastValue + 1
		return tx.Model(&SequenceDTO{}).Where("year = ?", year).Update("last_value", next).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func lockRow(tx *gorm.DB, year int) (SequenceDTO, error) {
	var row SequenceDTO
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "year = ?", year).Error
	return row, err
}

func maxStoredSequence(tx *gorm.DB, year int) (int, error) {
	var codes []string
	if err := tx.Raw(`SELECT code FROM orders WHERE code LIKE ?`, order.CodePrefix(year)+"%").
		Scan(&codes).Error; err != nil {
		return 0, err
	}

	highest := 0
	for _, c := range codes {
		if seq, ok := order.ParseSequence(year, c); ok && seq > highest {
			highest = seq
		}
	}
	return highest, nil
}
