package repository

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/sheets"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// Repository aggregates all data-access interfaces.
type Repository struct {
	User       UserRepository
	Department DepartmentRepository
	Attendance AttendanceRepository
	Delegation DelegationRepository
	Helpdesk   HelpdeskRepository
	NBD        NBDRepository
}

// NewRepository wires every repository onto the record store.
func NewRepository(store sheets.Store) *Repository {
	return &Repository{
		User:       NewUserRepo(store),
		Department: NewDepartmentRepo(store),
		Attendance: NewAttendanceRepo(store),
		Delegation: NewDelegationRepo(store),
		Helpdesk:   NewHelpdeskRepo(store),
		NBD:        NewNBDRepo(store),
	}
}

// decodeDocList normalizes a cell that may hold a JSON array, a JSON
// string, or a bare URL into a list. Legacy rows mixed all three; every
// read site gets a clean []string from here on.
func decodeDocList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return []string{}
	}
	if strings.HasPrefix(cell, "[") {
		var list []string
		if err := json.Unmarshal([]byte(cell), &list); err == nil {
			return list
		}
		return []string{}
	}
	if strings.HasPrefix(cell, `"`) {
		var single string
		if err := json.Unmarshal([]byte(cell), &single); err == nil && single != "" {
			return []string{single}
		}
		return []string{}
	}
	return []string{cell}
}

// encodeDocList stores a list as a JSON array string; empty lists
// store as the empty cell.
func encodeDocList(list []string) string {
	if len(list) == 0 {
		return ""
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return ""
	}
	return string(raw)
}

// encodeBool stores booleans as TRUE/FALSE text, matching how the
// sheet UI renders checkbox columns.
func encodeBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func decodeBool(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
