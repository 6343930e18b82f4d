package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"tracknest/internal/model"
)

var exportHeader = []string{
	"Email", "Name", "Role", "Active",
	"Goals", "Habits", "Tasks", "Points", "RegistrationDate",
}

// ExportSummary writes a one-way CSV report of all users to path, ordered by
// ID. The report is never read back; the data file remains the only source
// of truth.
func (s *Store) ExportSummary(ctx context.Context, path string) error {
	users := s.Users()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	for _, u := range users {
		row := []string{
			u.Email,
			u.Name,
			string(u.Role),
			strconv.FormatBool(u.Active),
			strconv.Itoa(len(u.Goals)),
			strconv.Itoa(len(u.Habits)),
			strconv.Itoa(len(u.Tasks)),
			strconv.Itoa(u.Points),
			model.FormatDate(u.RegistrationDate),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}

	s.log.Info(ctx, "summary exported", "path", path, "users", len(users))
	return nil
}
