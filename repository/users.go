package repository

import (
	"database/sql"

	"github.com/comprasapp/purchase-list/model"
)

type UserRepoMysql struct {
	db *sql.DB
}

func NewUserRepoMysql(user, password, dbname string) *UserRepoMysql {
	return &UserRepoMysql{db: open(user, password, dbname)}
}

func (u *UserRepoMysql) FindByID(id int) (*model.User, error) {
	statement := "SELECT id, first_names, last_names, active, email, password FROM users WHERE id = ?"
	user := &model.User{}
	err := u.db.QueryRow(statement, id).
		Scan(&user.ID, &user.FirstNames, &user.LastNames, &user.Active, &user.Email, &user.Password)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *UserRepoMysql) FindByEmail(email string) (*model.User, error) {
	statement := "SELECT id, first_names, last_names, active, email, password FROM users WHERE email = ?"
	user := &model.User{}
	err := u.db.QueryRow(statement, email).
		Scan(&user.ID, &user.FirstNames, &user.LastNames, &user.Active, &user.Email, &user.Password)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *UserRepoMysql) Create(user *model.User) (*model.User, error) {
	statement := "INSERT INTO users(first_names, last_names, active, email, password) VALUES(?, ?, ?, ?, ?)"
	result, err := u.db.Exec(statement, user.FirstNames, user.LastNames, user.Active, user.Email, user.Password)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	user.ID = int(id)
	return user, nil
}
