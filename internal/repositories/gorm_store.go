package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// gormConn bounds every statement with the configured timeout.
type gormConn struct {
	db      *gorm.DB
	timeout time.Duration
}

func (c gormConn) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	return c.db.WithContext(ctx), cancel
}

// gormErr maps gorm's translated errors onto the package sentinels.
func gormErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// withUpdatedAt adds the mutation timestamp to a patch.
func withUpdatedAt(fields map[string]interface{}) map[string]interface{} {
	fields["updated_at"] = time.Now().UTC()
	return fields
}

// NewGORMStore wires all repositories to a single gorm handle.
func NewGORMStore(db *gorm.DB, timeout time.Duration) *Store {
	return &Store{
		Users:      NewGORMUserRepository(db, timeout),
		Profiles:   NewGORMProfileRepository(db, timeout),
		Farms:      NewGORMFarmRepository(db, timeout),
		Expenses:   NewGORMExpenseRepository(db, timeout),
		Income:     NewGORMIncomeRepository(db, timeout),
		Activities: NewGORMActivityRepository(db, timeout),
	}
}
