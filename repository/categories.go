package repository

import (
	"database/sql"

	"github.com/comprasapp/purchase-list/model"
)

type CategoryRepoMysql struct {
	db *sql.DB
}

func NewCategoryRepoMysql(user, password, dbname string) *CategoryRepoMysql {
	return &CategoryRepoMysql{db: open(user, password, dbname)}
}

func (c *CategoryRepoMysql) FindByID(id int) (*model.Category, error) {
	statement := "SELECT id, name, creator_id FROM categories WHERE id = ?"
	category := &model.Category{}
	err := c.db.QueryRow(statement, id).Scan(&category.ID, &category.Name, &category.CreatorID)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (c *CategoryRepoMysql) FindAll() ([]model.Category, error) {
	statement := "SELECT id, name, creator_id FROM categories"

	rows, err := c.db.Query(statement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var category model.Category
		err := rows.Scan(&category.ID, &category.Name, &category.CreatorID)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *CategoryRepoMysql) Create(category *model.Category) (*model.Category, error) {
	statement := "INSERT INTO categories(name, creator_id) VALUES(?, ?)"
	result, err := c.db.Exec(statement, category.Name, category.CreatorID)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	category.ID = int(id)
	return category, nil
}

func (c *CategoryRepoMysql) Close() error {
	return c.db.Close()
}
