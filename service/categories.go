package service

import (
	"database/sql"
	"errors"

	"github.com/comprasapp/purchase-list/contract"
	"github.com/comprasapp/purchase-list/model"
)

type CategoryService struct {
	categories contract.CategoryRepo
}

func NewCategoryService(categories contract.CategoryRepo) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Validate(categoryID int) error {
	if err := requiredID(categoryID); err != nil {
		return err
	}

	_, err := s.categories.FindByID(categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return NewRequestError(MsgCategoryNotFound)
	}
	return err
}

func (s *CategoryService) FindAll() ([]model.Category, error) {
	return s.categories.FindAll()
}
