package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jsphweid/patternmetrics/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const errDBClientNil = "db client is nil"

type reportRow struct {
	ID                  string `gorm:"primaryKey;type:varchar(36)"`
	PiecePath           string `gorm:"index:idx_inputs,priority:1"`
	PatternsPath        string `gorm:"index:idx_inputs,priority:2"`
	PieceLength         int
	NumPatterns         int
	Coverage            float64
	UncoveredNotes      int
	EncodingCost        int
	LosslessCompression float64
	// per-pattern breakdown, JSON encoded
	Patterns  string
	CreatedAt time.Time `gorm:"index:idx_created_at"`
}

func (reportRow) TableName() string {
	return "reports"
}

type SQLiteStore struct {
	DB *gorm.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.AutoMigrate(&reportRow{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &SQLiteStore{DB: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(r model.StoredReport) (reportRow, error) {
	patterns, err := json.Marshal(r.Report.Patterns)
	if err != nil {
		return reportRow{}, fmt.Errorf("encoding pattern breakdown: %w", err)
	}
	return reportRow{
		ID:                  r.ID,
		PiecePath:           r.PiecePath,
		PatternsPath:        r.PatternsPath,
		PieceLength:         r.Report.PieceLength,
		NumPatterns:         r.Report.NumPatterns,
		Coverage:            r.Report.Coverage,
		UncoveredNotes:      r.Report.UncoveredNotes,
		EncodingCost:        r.Report.EncodingCost,
		LosslessCompression: r.Report.LosslessCompression,
		Patterns:            string(patterns),
		CreatedAt:           r.CreatedAt,
	}, nil
}

func fromRow(row reportRow) (model.StoredReport, error) {
	var patterns []model.PatternReport
	if err := json.Unmarshal([]byte(row.Patterns), &patterns); err != nil {
		return model.StoredReport{}, fmt.Errorf("decoding pattern breakdown of %v: %w", row.ID, err)
	}
	return model.StoredReport{
		ID:           row.ID,
		PiecePath:    row.PiecePath,
		PatternsPath: row.PatternsPath,
		CreatedAt:    row.CreatedAt,
		Report: model.Report{
			PieceLength:         row.PieceLength,
			NumPatterns:         row.NumPatterns,
			Coverage:            row.Coverage,
			UncoveredNotes:      row.UncoveredNotes,
			EncodingCost:        row.EncodingCost,
			LosslessCompression: row.LosslessCompression,
			Patterns:            patterns,
		},
	}, nil
}

func (s *SQLiteStore) SaveReport(ctx context.Context, r model.StoredReport) error {
	if s == nil || s.DB == nil {
		return errors.New(errDBClientNil)
	}
	row, err := toRow(r)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (model.StoredReport, error) {
	if s == nil || s.DB == nil {
		return model.StoredReport{}, errors.New(errDBClientNil)
	}
	var row reportRow
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StoredReport{}, fmt.Errorf("%w: %v", ErrReportNotFound, id)
	}
	if err != nil {
		return model.StoredReport{}, fmt.Errorf("querying report: %w", err)
	}
	return fromRow(row)
}

// ListReports returns stored reports, newest first.
func (s *SQLiteStore) ListReports(ctx context.Context) ([]model.StoredReport, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var rows []reportRow
	if err := s.DB.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	res := make([]model.StoredReport, 0, len(rows))
	for _, row := range rows {
		r, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}
