package rest

import (
	"github.com/comprasapp/purchase-list/contract"
	"github.com/comprasapp/purchase-list/model"
)

// AddData seeds the demo dataset. Users and categories have no endpoints of
// their own; they are provisioned out of band.
func AddData(users contract.UserRepo, categories contract.CategoryRepo) {
	_, _ = users.Create(&model.User{FirstNames: "Ana", LastNames: "Torres", Active: true, Email: "ana@example.com", Password: "love"})
	_, _ = users.Create(&model.User{FirstNames: "Pedro", LastNames: "Mejia", Active: true, Email: "pedro@example.com", Password: "1234"})
	_, _ = users.Create(&model.User{FirstNames: "Jorge", LastNames: "Salas", Active: true, Email: "jorge@example.com", Password: "1234"})
	_, _ = users.Create(&model.User{FirstNames: "Lili", LastNames: "Rojas", Active: false, Email: "lili@example.com", Password: "1234"})

	_, _ = categories.Create(&model.Category{Name: "Groceries", CreatorID: 1})
	_, _ = categories.Create(&model.Category{Name: "Transport", CreatorID: 1})
	_, _ = categories.Create(&model.Category{Name: "Lodging", CreatorID: 2})
	_, _ = categories.Create(&model.Category{Name: "Entertainment", CreatorID: 2})
}
