package gotable

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const _resetBatchSize = 100

// GormStore is a Store over a single SQL table. Rows are read as maps, so
// the table needs no Go model; it must have an IDField column.
type GormStore struct {
	db    *gorm.DB
	table string
}

func NewGormStore(db *gorm.DB, table string) *GormStore {
	return &GormStore{
		db:    db,
		table: table,
	}
}

// ReadAll - implements Store. Rows come back ordered by IDField so that the
// stable sort sees the same input order on every request.
func (s *GormStore) ReadAll(ctx context.Context) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, ErrNilStore
	}

	var rows []map[string]any
	err := s.db.WithContext(ctx).
		Table(s.table).
		Order(clause.OrderByColumn{Column: clause.Column{Name: IDField}}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("cannot read records from '%s': %w", s.table, err)
	}

	return lo.Map(rows, func(row map[string]any, _ int) Record {
		return Record(row)
	}), nil
}

// DeleteByIDs - implements Store. A single DELETE statement keeps the
// removal atomic.
func (s *GormStore) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrNilStore
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res := s.db.WithContext(ctx).Exec(
		"DELETE FROM ? WHERE ? IN ?",
		clause.Table{Name: s.table},
		clause.Column{Name: IDField},
		idArgs(lo.Uniq(ids)),
	)
	if res.Error != nil {
		return 0, fmt.Errorf("cannot delete records from '%s': %w", s.table, res.Error)
	}

	return int(res.RowsAffected), nil
}

// Reset - implements Resetter. The table is emptied and refilled in one
// transaction.
func (s *GormStore) Reset(ctx context.Context, records []Record) error {
	if s == nil || s.db == nil {
		return ErrNilStore
	}

	rows := lo.Map(records, func(r Record, _ int) map[string]any {
		return r
	})

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM ?", clause.Table{Name: s.table}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		return tx.Table(s.table).CreateInBatches(rows, _resetBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("cannot reset '%s': %w", s.table, err)
	}

	return nil
}

// idArgs passes integer ids as integers so that they compare against
// integer key columns without casts.
func idArgs(ids []string) any {
	numeric := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, err := cast.ToInt64E(id)
		if err != nil || cast.ToString(n) != id {
			return ids
		}
		numeric = append(numeric, n)
	}

	return numeric
}

var (
	_ Store    = (*GormStore)(nil)
	_ Resetter = (*GormStore)(nil)
)
