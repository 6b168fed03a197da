package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/swof/bau-api-go/pkg/models"
	"github.com/swof/bau-api-go/pkg/scheduler"
)

// DefaultRosterLimit bounds the roster scan
const DefaultRosterLimit = 20

// ErrEngineerNotFound is returned when removing an unknown engineer
var ErrEngineerNotFound = errors.New("engineer not found")

// Store is the table-backed roster source
type Store struct {
	db    *gorm.DB
	table string
	limit int
}

var _ scheduler.RosterProvider = (*Store)(nil)

// NewStore migrates the roster table and returns a store reading from it.
// limit bounds the number of engineers fetched; zero or less means no bound.
func NewStore(db *gorm.DB, table string, limit int) (*Store, error) {
	if table == "" {
		table = DefaultTable
	}
	if err := db.Table(table).AutoMigrate(&Engineer{}); err != nil {
		return nil, fmt.Errorf("failed to migrate %s: %w", table, err)
	}
	return &Store{db: db, table: table, limit: limit}, nil
}

func (s *Store) engineers(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.table)
}

// FetchRoster returns engineers in insertion order
func (s *Store) FetchRoster(ctx context.Context) ([]models.Member, error) {
	var rows []Engineer
	q := s.engineers(ctx).Order("id asc")
	if s.limit > 0 {
		q = q.Limit(s.limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.table, err)
	}

	members := make([]models.Member, len(rows))
	for i, r := range rows {
		members[i] = models.Member{ID: r.EngineerID, Name: r.Name}
	}
	return members, nil
}

// AddEngineer appends an engineer to the end of the roster
func (s *Store) AddEngineer(ctx context.Context, m models.Member) error {
	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		return scheduler.ErrBlankMemberID
	}

	var count int64
	if err := s.engineers(ctx).Where("engineer_id = ?", m.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %q", scheduler.ErrDuplicateMember, m.ID)
	}

	err := s.engineers(ctx).Create(&Engineer{EngineerID: m.ID, Name: m.Name}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %q", scheduler.ErrDuplicateMember, m.ID)
	}
	return err
}

// RemoveEngineer deletes an engineer by id
func (s *Store) RemoveEngineer(ctx context.Context, id string) error {
	res := s.engineers(ctx).Where("engineer_id = ?", id).Delete(&Engineer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", ErrEngineerNotFound, id)
	}
	return nil
}

// ImportRoster appends the members not yet present, keeping their order.
// It returns how many were added.
func (s *Store) ImportRoster(ctx context.Context, members []models.Member) (int, error) {
	added := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range members {
			var count int64
			if err := tx.Table(s.table).Where("engineer_id = ?", m.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Table(s.table).Create(&Engineer{EngineerID: m.ID, Name: m.Name}).Error; err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// RecordLookup counts a duty lookup for the day of at using a single upsert
func (s *Store) RecordLookup(ctx context.Context, at time.Time, rosterSize int) error {
	day := at.UTC().Format("2006-01-02")

	// OnConflict is supported by both Postgres and SQLite
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":   gorm.Expr("request_count + ?", 1),
			"total_engineers": gorm.Expr("total_engineers + ?", rosterSize),
		}),
	}).Create(&LookupUsage{
		Date:           day,
		RequestCount:   1,
		TotalEngineers: rosterSize,
	}).Error
}

// RecentUsage returns up to limit days of lookup counters, newest first
func (s *Store) RecentUsage(ctx context.Context, limit int) ([]LookupUsage, error) {
	var usage []LookupUsage
	err := s.db.WithContext(ctx).Order("date desc").Limit(limit).Find(&usage).Error
	return usage, err
}
