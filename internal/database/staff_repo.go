package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

const staffColumns = `id, name, email, birthday, birth_month, birth_day`

type staffRepo struct {
	db dbConn
}

func newStaffRepo(db dbConn) contract.StaffRepo {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(staff *entity.Staff) error {
	var month, day sql.NullInt64
	if staff.Birthday != "" {
		_, m, d, err := entity.ParseBirthday(staff.Birthday)
		if err != nil {
			return fmt.Errorf("failed to create staff %q: %w", staff.Name, err)
		}
		month = sql.NullInt64{Int64: int64(m), Valid: true}
		day = sql.NullInt64{Int64: int64(d), Valid: true}
	}

	// Roster records usually carry their own id; keep it when present
	var id interface{}
	if staff.ID > 0 {
		id = staff.ID
	}

	query := `
		INSERT INTO staff (id, name, email, birthday, birth_month, birth_day)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		id,
		staff.Name,
		staff.Email,
		staff.Birthday,
		month,
		day,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	staff.ID = lastID
	staff.BirthMonth = time.Month(month.Int64)
	staff.BirthDay = int(day.Int64)
	return nil
}

func (r *staffRepo) GetAll() ([]*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY id ASC`

	return r.queryStaff(query)
}

func (r *staffRepo) GetByBirthday(month time.Month, day int) ([]*entity.Staff, error) {
	query := `
		SELECT ` + staffColumns + `
		FROM staff
		WHERE birth_month = ? AND birth_day = ?
		ORDER BY id ASC
	`

	return r.queryStaff(query, int(month), day)
}

func (r *staffRepo) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM staff`)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	return nil
}

func (r *staffRepo) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM staff`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}
	return count, nil
}

func (r *staffRepo) queryStaff(query string, args ...interface{}) ([]*entity.Staff, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	defer rows.Close()

	var staff []*entity.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff: %w", err)
	}

	return staff, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*entity.Staff, error) {
	staff := &entity.Staff{}
	var month, day sql.NullInt64

	err := row.Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.Birthday,
		&month,
		&day,
	)
	if err != nil {
		return nil, err
	}

	staff.BirthMonth = time.Month(month.Int64)
	staff.BirthDay = int(day.Int64)
	return staff, nil
}
