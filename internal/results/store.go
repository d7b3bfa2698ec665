package results

import (
	"fmt"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cubeof2/jenness-battle-simulator/internal/report"
)

// Benchmark is one scenario's aggregate from one bench run. Seed is kept as
// text since sqlite integers cannot hold every uint64.
type Benchmark struct {
	ID         uint      `gorm:"primarykey"`
	CreatedAt  time.Time `gorm:"index"`
	RunLabel   string    `gorm:"index"`
	ScenarioID string    `gorm:"index"`
	Battles    int
	Seed       string
	WinRate    float64
	R          *float64
	Label      string
	Offset     float64
	Ratio      float64
	PCCount    int
	NPCCount   int
	Status     string
}

// Store keeps benchmark aggregates in SQLite.
type Store struct {
	db *gorm.DB
}

// Open connects to the database at path, or an in-memory database when path
// is empty, and migrates the schema.
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open results database: %w", err)
	}
	if err := db.AutoMigrate(&Benchmark{}); err != nil {
		return nil, fmt.Errorf("failed to migrate results database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// FromRow converts a report row into a stored benchmark.
func FromRow(label string, seed uint64, row report.Row) Benchmark {
	b := Benchmark{
		RunLabel:   label,
		ScenarioID: row.ID,
		Battles:    row.Metrics.Battles,
		Seed:       strconv.FormatUint(seed, 10),
		WinRate:    row.Metrics.WinRate,
		Label:      row.Label,
		Offset:     row.Metrics.Offset,
		Ratio:      row.Metrics.Ratio,
		PCCount:    row.Metrics.PCCount,
		NPCCount:   row.Metrics.NPCCount,
		Status:     string(row.Status),
	}
	if row.Metrics.HasRegression {
		r := row.Metrics.R
		b.R = &r
	}
	return b
}

// Save stores the rows of one bench run under a shared label.
func (s *Store) Save(label string, seed uint64, rows []report.Row) error {
	if len(rows) == 0 {
		return nil
	}
	records := make([]Benchmark, len(rows))
	for i, row := range rows {
		records[i] = FromRow(label, seed, row)
	}
	if err := s.db.Create(&records).Error; err != nil {
		return fmt.Errorf("failed to save benchmarks: %w", err)
	}
	return nil
}

// Recent lists the latest stored results for a scenario, newest first.
func (s *Store) Recent(scenarioID string, limit int) ([]Benchmark, error) {
	var out []Benchmark
	err := s.db.Where("scenario_id = ?", scenarioID).
		Order("created_at desc").Order("id desc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmarks: %w", err)
	}
	return out, nil
}
