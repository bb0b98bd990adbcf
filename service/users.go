package service

import (
	"database/sql"
	"errors"

	"github.com/comprasapp/purchase-list/contract"
	"github.com/comprasapp/purchase-list/model"
)

type UserService struct {
	users contract.UserRepo
}

func NewUserService(users contract.UserRepo) *UserService {
	return &UserService{users: users}
}

func (s *UserService) FindByID(id int) (*model.User, error) {
	return s.users.FindByID(id)
}

// Validate fails when the id is missing, the user is unknown or the user is
// inactive, in that order.
func (s *UserService) Validate(userID int) error {
	if err := requiredID(userID); err != nil {
		return err
	}

	user, err := s.users.FindByID(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return NewRequestError(MsgUserNotFound)
	}
	if err != nil {
		return err
	}

	if !user.Active {
		return NewRequestError(MsgUserNotActive)
	}
	return nil
}

// Authenticate compares the stored credential with a plain equality check.
// The legacy schema keeps passwords unhashed; hardening the check is out of
// scope here and would break existing rows.
func (s *UserService) Authenticate(email, password string) (*model.User, error) {
	if err := requiredString(email); err != nil {
		return nil, err
	}
	if err := requiredString(password); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewRequestError(MsgUserNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, NewRequestError(MsgUserNotActive)
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}

	user.Password = ""
	return user, nil
}
