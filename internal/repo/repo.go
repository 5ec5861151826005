package repo

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/car_export/internal/util"
)

var (
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = errors.New("duplicate value")
	// ErrReferenced means a delete was refused by a foreign key.
	ErrReferenced = errors.New("record is referenced")
	// ErrStale means a compare-and-swap update lost a race with another writer.
	ErrStale = errors.New("record changed concurrently")
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrReferenced
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return ErrReferenced
	}
	return err
}

func list[T any](ctx context.Context, db *gorm.DB, p util.ListParams, scopes ...func(*gorm.DB) *gorm.DB) (int64, []T, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]T, 0, p.Limit)
	if err := db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Scopes(p.Order).
		Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func get[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var item T
	if err := db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func remove[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// maxInt returns the largest value of column, or -1 for an empty table.
func maxInt[T any](ctx context.Context, db *gorm.DB, column string) (int, error) {
	var max sql.NullInt64
	if err := db.WithContext(ctx).Model(new(T)).Select("MAX(" + column + ")").Scan(&max).Error; err != nil {
		return 0, err
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

// swapInt exchanges column between two rows in one statement. The WHERE clause carries the
// values read inside the transaction, so a concurrent change makes it match fewer than two rows
// and the swap is rolled back with ErrStale.
func swapInt[T any](ctx context.Context, db *gorm.DB, column string, a, b uuid.UUID, value func(*T) int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		first, err := get[T](ctx, tx, a)
		if err != nil {
			return err
		}
		second, err := get[T](ctx, tx, b)
		if err != nil {
			return err
		}
		va, vb := value(first), value(second)

		res := tx.Model(new(T)).
			Where("(id = ? AND "+column+" = ?) OR (id = ? AND "+column+" = ?)", a, va, b, vb).
			Update(column, gorm.Expr("CASE WHEN id = ? THEN CAST(? AS INTEGER) ELSE CAST(? AS INTEGER) END", a, vb, va))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 2 {
			return ErrStale
		}
		return nil
	})
}

// moveInt moves row id one step up or down in display order (column, then id) inside one
// transaction and reports whether anything moved. Rows sharing a value are renumbered
// 0..n-1 first, so ties can always be passed.
func moveInt[T any](ctx context.Context, db *gorm.DB, column string, id uuid.UUID, up bool, value func(*T) int, key func(*T) uuid.UUID) (bool, error) {
	moved := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []T
		if err := tx.Model(new(T)).
			Order(clause.OrderByColumn{Column: clause.Column{Name: column}}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
			Find(&rows).Error; err != nil {
			return err
		}

		idx := slices.IndexFunc(rows, func(row T) bool { return key(&row) == id })
		if idx < 0 {
			return ErrNotFound
		}
		target := idx + 1
		if up {
			target = idx - 1
		}
		if target < 0 || target >= len(rows) {
			return nil
		}

		values := make([]int, len(rows))
		tied := false
		for i := range rows {
			values[i] = value(&rows[i])
			if i > 0 && values[i] == values[i-1] {
				tied = true
			}
		}
		if tied {
			for i := range values {
				values[i] = i
			}
		}
		values[idx], values[target] = values[target], values[idx]

		for i := range rows {
			if values[i] == value(&rows[i]) {
				continue
			}
			if err := tx.Model(new(T)).Where("id = ?", key(&rows[i])).Update(column, values[i]).Error; err != nil {
				return err
			}
		}
		moved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return moved, nil
}
