package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/diegoclair/monthly-report/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db         *DB
	staffRepo  contract.StaffRepo
	reportRepo contract.ReportRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.staffRepo = newStaffRepo(i.db.conn)
	i.reportRepo = newReportRepo(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		staffRepo:  newStaffRepo(db),
		reportRepo: newReportRepo(db),
	}
}

// Staff returns the staff repository
func (i *instance) Staff() contract.StaffRepo {
	return i.staffRepo
}

// Report returns the monthly report repository
func (i *instance) Report() contract.ReportRepo {
	return i.reportRepo
}

// Ping checks the database connection
func (i *instance) Ping(ctx context.Context) error {
	if i.db == nil {
		return errors.New("ping is not available inside a transaction")
	}
	return i.db.Ping(ctx)
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
