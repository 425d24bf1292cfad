package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aaronzipp/snakesss/internal/models"
)

// GameRecord is one finished game in the history table
type GameRecord struct {
	ID          uint      `gorm:"primaryKey"`
	Date        time.Time `gorm:"not null;index"`
	PlayerNames []string  `gorm:"serializer:json"`
	FinalScores []int     `gorm:"serializer:json"`
	WinnerNames []string  `gorm:"serializer:json"`
	RoundCount  int       `gorm:"not null"`
}

func (r GameRecord) Model() models.GameRecord {
	return models.GameRecord{
		Date:        r.Date,
		PlayerNames: r.PlayerNames,
		FinalScores: r.FinalScores,
		WinnerNames: r.WinnerNames,
		RoundCount:  r.RoundCount,
	}
}

// History is the completion sink for finished games
type History struct {
	db *gorm.DB
}

// NewHistory runs on an existing SQLite handle so it shares the file with Store
func NewHistory(conn *sql.DB) (*History, error) {
	db, err := gorm.Open(&sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&GameRecord{}); err != nil {
		return nil, err
	}
	return &History{db: db}, nil
}

// RecordGame stores a finished game
func (h *History) RecordGame(ctx context.Context, record models.GameRecord) error {
	row := GameRecord{
		Date:        record.Date,
		PlayerNames: record.PlayerNames,
		FinalScores: record.FinalScores,
		WinnerNames: record.WinnerNames,
		RoundCount:  record.RoundCount,
	}
	return h.db.WithContext(ctx).Create(&row).Error
}

// Recent lists up to limit games, newest first
func (h *History) Recent(ctx context.Context, limit int) ([]GameRecord, error) {
	var records []GameRecord
	err := h.db.WithContext(ctx).Order("date desc, id desc").Limit(limit).Find(&records).Error
	return records, err
}

// Get returns a single game by id
func (h *History) Get(ctx context.Context, id uint) (GameRecord, error) {
	var record GameRecord
	err := h.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record, ErrNotFound
	}
	return record, err
}

// Clear deletes every stored game
func (h *History) Clear(ctx context.Context) error {
	return h.db.WithContext(ctx).Where("1 = 1").Delete(&GameRecord{}).Error
}
