package roster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/diegoclair/monthly-report/internal/database"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
	"github.com/diegoclair/monthly-report/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	staff  []*entity.Staff
	origin string
	err    error
}

func (s staticSource) LoadStaff() ([]*entity.Staff, string, error) {
	return s.staff, s.origin, s.err
}

func TestSeed(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)
	dm := database.NewInstance(db)

	source := staticSource{
		origin: "test",
		staff: []*entity.Staff{
			{ID: 10, Name: "Alice", Email: "alice@example.com", Birthday: "1970.1.5"},
			{ID: 11, Name: "Bob", Email: "bob@example.com", Birthday: "1985.6.15"},
		},
	}

	seeded, err := Seed(context.Background(), dm, source, logger.NewNope())
	require.NoError(t, err)
	assert.True(t, seeded)

	report, err := dm.Report().GetByMonth("2026-01")
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Len(t, report.Completed, 3)
	assert.Len(t, report.TaxNews, 5)
	assert.NotEmpty(t, report.Quote)

	count, err := dm.Staff().Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// second start leaves the data alone
	seeded, err = Seed(context.Background(), dm, staticSource{err: errors.New("must not be called")}, logger.NewNope())
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestSeed_FallsBackToBuiltinStaff(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)
	dm := database.NewInstance(db)

	seeded, err := Seed(context.Background(), dm, staticSource{err: errors.New("file not found")}, logger.NewNope())
	require.NoError(t, err)
	assert.True(t, seeded)

	staff, err := dm.Staff().GetAll()
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "範例員工", staff[0].Name)
}

func TestSeed_MalformedEnvUsesDataFile(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)
	dm := database.NewInstance(db)

	dataFile := filepath.Join(t.TempDir(), "staff_data.json")
	require.NoError(t, os.WriteFile(dataFile, []byte(`[{"id": 7, "name": "Real", "email": "real@example.com", "birthday": "1980.3.4"}]`), 0o600))

	loader := NewLoader(Config{DataJSON: `[{"id": 1,`, DataFile: dataFile}, logger.NewNope())

	seeded, err := Seed(context.Background(), dm, loader.Lenient(), logger.NewNope())
	require.NoError(t, err)
	assert.True(t, seeded)

	staff, err := dm.Staff().GetAll()
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, int64(7), staff[0].ID)
	assert.Equal(t, "Real", staff[0].Name)
	assert.Equal(t, "real@example.com", staff[0].Email)

	// the strict source used by sync still rejects the same value
	_, _, err = loader.LoadStaff()
	require.Error(t, err)
}

func TestSeed_RollsBackOnFailure(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)
	dm := database.NewInstance(db)

	source := staticSource{staff: []*entity.Staff{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 1, Name: "Duplicate", Email: "dup@example.com"},
	}}

	_, err := Seed(context.Background(), dm, source, logger.NewNope())
	require.Error(t, err)

	count, err := dm.Report().Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
