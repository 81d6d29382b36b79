package repository

import (
	"context"
	"strings"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/sheets"
)

// users sheet, columns A:F — strict positional contract with the store.
const (
	usersSheet = "users"
	usersRange = "A2:F"
)

const (
	userColID = iota
	userColName
	userColEmail
	userColPasswordHash
	userColRole
	userColDepartment
)

// UserRepository reads the users sheet.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepo struct {
	store sheets.Store
}

// NewUserRepo creates a UserRepository.
func NewUserRepo(store sheets.Store) UserRepository {
	return &userRepo{store: store}
}

func decodeUser(row []string) model.User {
	return model.User{
		ID:           sheets.Cell(row, userColID),
		Name:         sheets.Cell(row, userColName),
		Email:        sheets.Cell(row, userColEmail),
		PasswordHash: sheets.Cell(row, userColPasswordHash),
		Role:         sheets.Cell(row, userColRole),
		Department:   sheets.Cell(row, userColDepartment),
	}
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.store.ReadRows(ctx, usersSheet, usersRange)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		if sheets.Cell(row, userColID) == "" {
			continue
		}
		users = append(users, decodeUser(row))
	}
	return users, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for i := range users {
		if strings.ToLower(users[i].Email) == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}
