// Package roster loads the staff list from its configured source and seeds an
// empty database.
package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

// Source names reported alongside the loaded roster
const (
	SourceEnv     = "STAFF_DATA_JSON"
	SourceBuiltin = "builtin"
)

type Config struct {
	DataJSON    string
	DataFile    string
	ExampleFile string
}

type record struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
}

// Loader reads the roster from STAFF_DATA_JSON, then the data file, then the
// example file.
type Loader struct {
	cfg    Config
	logger *slog.Logger
}

var _ contract.RosterSource = (*Loader)(nil)

func NewLoader(cfg Config, logger *slog.Logger) *Loader {
	return &Loader{cfg: cfg, logger: logger}
}

// LoadStaff fails on a malformed STAFF_DATA_JSON.
func (l *Loader) LoadStaff() ([]*entity.Staff, string, error) {
	return l.load(true)
}

// Lenient returns a source that logs a malformed STAFF_DATA_JSON and moves on
// to the data file. Used when seeding a fresh database.
func (l *Loader) Lenient() contract.RosterSource {
	return lenientLoader{loader: l}
}

type lenientLoader struct {
	loader *Loader
}

func (s lenientLoader) LoadStaff() ([]*entity.Staff, string, error) {
	return s.loader.load(false)
}

func (l *Loader) load(strictEnv bool) ([]*entity.Staff, string, error) {
	if strings.TrimSpace(l.cfg.DataJSON) != "" {
		staff, err := l.parse([]byte(l.cfg.DataJSON))
		switch {
		case err != nil && strictEnv:
			return nil, "", fmt.Errorf("failed to parse %s: %w", SourceEnv, err)
		case err != nil:
			l.logger.Error("invalid STAFF_DATA_JSON, falling back to file", slog.String("error", err.Error()))
		case len(staff) > 0:
			return staff, SourceEnv, nil
		default:
			l.logger.Warn("STAFF_DATA_JSON is empty, falling back to file")
		}
	}

	path := l.cfg.DataFile
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && l.cfg.ExampleFile != "" {
		l.logger.Warn("staff data file not found, using example file",
			slog.String("file", path),
			slog.String("example", l.cfg.ExampleFile),
		)
		path = l.cfg.ExampleFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read staff file: %w", err)
	}

	staff, err := l.parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return staff, path, nil
}

func (l *Loader) parse(data []byte) ([]*entity.Staff, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	staff := make([]*entity.Staff, 0, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("record %d: name is required", i)
		}

		member := &entity.Staff{
			ID:    r.ID,
			Name:  strings.TrimSpace(r.Name),
			Email: strings.TrimSpace(r.Email),
		}

		if r.Birthday != "" {
			_, month, day, err := entity.ParseBirthday(r.Birthday)
			if err != nil {
				// a bad birthday only costs the birthday card
				l.logger.Warn("ignoring invalid birthday",
					slog.String("name", member.Name),
					slog.String("birthday", r.Birthday),
				)
			} else {
				member.Birthday = strings.TrimSpace(r.Birthday)
				member.BirthMonth = month
				member.BirthDay = day
			}
		}

		staff = append(staff, member)
	}

	return staff, nil
}

// BuiltinStaff is used when no roster source can be read at first start.
func BuiltinStaff() []*entity.Staff {
	return []*entity.Staff{{
		ID:         1,
		Name:       "範例員工",
		Email:      "example@company.com",
		Birthday:   "1990.1.1",
		BirthMonth: 1,
		BirthDay:   1,
	}}
}
