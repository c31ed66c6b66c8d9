package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner executes a function inside a single database transaction.
// Repositories are rebound to the transaction with WithTx so that
// multi-entity effects commit together or not at all.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type txRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &txRunner{db: db}
}

func (r *txRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
