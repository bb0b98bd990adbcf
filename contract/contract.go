package contract

import (
	"github.com/shopspring/decimal"

	"github.com/comprasapp/purchase-list/model"
)

type UserRepo interface {
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Create(user *model.User) (*model.User, error)
}

type CategoryRepo interface {
	FindByID(id int) (*model.Category, error)
	FindAll() ([]model.Category, error)
	Create(category *model.Category) (*model.Category, error)
}

type PurchaseListRepo interface {
	// Create inserts the list, assigns its join code ("{id}" + codeSuffix)
	// and enrolls the creator as an approved 100% collaborator, all in one
	// transaction.
	Create(list *model.PurchaseList, codeSuffix string) (*model.PurchaseList, error)
	FindByID(id int) (*model.PurchaseList, error)
	FindByJoinCode(code string) (*model.PurchaseList, error)
	UpdateStatus(id int, status string) (*model.PurchaseList, error)
	FindByCreator(filter *model.ListFilter) ([]model.PurchaseList, error)
}

type CollaboratorRepo interface {
	Add(collaborator *model.Collaborator) (*model.Collaborator, error)
	// FindByListAndUser resolves the single membership row for the pair,
	// or sql.ErrNoRows when the user never requested to join.
	FindByListAndUser(listID, userID int) (*model.Collaborator, error)
	UpdateStatus(id int, status string) error
	UpdatePercentage(id int, percentage decimal.Decimal) error
	FindByList(filter *model.CollaboratorFilter) ([]model.CollaboratorDetails, error)
	FindWithPurchaseTotals(listID int) ([]model.CollaboratorTotal, error)
	// FindListsByMember pages through the lists the user participates in as
	// an approved collaborator.
	FindListsByMember(filter *model.ListFilter, page, size int, sort string) (*model.ListPage, error)
}

type PurchaseRepo interface {
	// Create, Update and Delete each recompute and persist the owning
	// list's running total inside the same transaction as the mutation.
	Create(purchase *model.Purchase) (*model.Purchase, error)
	Update(purchase *model.Purchase) (*model.Purchase, error)
	Delete(id int) error
	FindByID(id int) (*model.Purchase, error)
	FindWithFilter(filter *model.PurchaseFilter) ([]model.PurchaseDetails, error)
}
