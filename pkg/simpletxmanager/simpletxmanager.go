package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// sqlDB адаптирует *sql.DB к txmanager.Beginner (без метрик)
type sqlDB struct {
	db *sql.DB
}

func (s sqlDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return s.db.BeginTx(ctx, opts)
}

// NewTransactionManager создает менеджер транзакций поверх обычного *sql.DB
// Используется, когда метрики отключены
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(sqlDB{db: db})
}
