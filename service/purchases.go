package service

import (
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/comprasapp/purchase-list/contract"
	"github.com/comprasapp/purchase-list/model"
)

// PurchaseService records expense line items against a PENDING list. Every
// mutation goes through the repository transactionally together with the
// recompute of the list's running total.
type PurchaseService struct {
	purchases  contract.PurchaseRepo
	lists      contract.PurchaseListRepo
	users      *UserService
	categories *CategoryService
	log        *zap.SugaredLogger
}

func NewPurchaseService(purchases contract.PurchaseRepo, lists contract.PurchaseListRepo,
	users *UserService, categories *CategoryService, log *zap.SugaredLogger) *PurchaseService {
	return &PurchaseService{
		purchases:  purchases,
		lists:      lists,
		users:      users,
		categories: categories,
		log:        log,
	}
}

func (s *PurchaseService) Create(request *model.CreatePurchase) (*model.Purchase, error) {
	if err := requiredID(request.ListID); err != nil {
		return nil, err
	}
	if err := requiredID(request.CategoryID); err != nil {
		return nil, err
	}
	if err := requiredID(request.BuyerID); err != nil {
		return nil, err
	}
	if err := requiredID(request.RecorderID); err != nil {
		return nil, err
	}
	if err := requiredDate(request.PurchaseDate); err != nil {
		return nil, err
	}
	if err := requiredAmount(request.Amount); err != nil {
		return nil, err
	}

	if err := s.users.Validate(request.BuyerID); err != nil {
		return nil, err
	}
	if err := s.users.Validate(request.RecorderID); err != nil {
		return nil, err
	}
	if err := s.categories.Validate(request.CategoryID); err != nil {
		return nil, err
	}

	if !request.Amount.IsPositive() {
		return nil, NewRequestError(MsgAmountNotAllowed)
	}

	list, err := findList(s.lists, request.ListID)
	if err != nil {
		return nil, err
	}
	if list.Status != model.ListStatusPending {
		return nil, NewRequestError(MsgAddPurchaseNotAllowed)
	}

	purchase := &model.Purchase{
		ListID:       request.ListID,
		CategoryID:   request.CategoryID,
		BuyerID:      request.BuyerID,
		RecorderID:   request.RecorderID,
		PurchaseDate: request.PurchaseDate,
		Description:  request.Description,
		Amount:       request.Amount,
		CreatedAt:    time.Now(),
	}
	saved, err := s.purchases.Create(purchase)
	if err != nil {
		return nil, err
	}
	s.log.Infow("purchase recorded",
		"purchaseID", saved.ID, "listID", saved.ListID, "amount", saved.Amount)
	return saved, nil
}

// Edit updates a purchase's fields. Zero-valued reference ids, a zero date
// and an empty description keep the stored values; an absent amount keeps
// the stored amount, a present one must be positive.
func (s *PurchaseService) Edit(request *model.EditPurchase) (*model.Purchase, error) {
	if err := requiredID(request.PurchaseID); err != nil {
		return nil, err
	}
	if err := requiredID(request.RecorderID); err != nil {
		return nil, err
	}

	purchase, err := s.findPurchase(request.PurchaseID)
	if err != nil {
		return nil, err
	}

	if request.BuyerID != 0 {
		if err := s.users.Validate(request.BuyerID); err != nil {
			return nil, err
		}
		purchase.BuyerID = request.BuyerID
	}
	if err := s.users.Validate(request.RecorderID); err != nil {
		return nil, err
	}
	purchase.RecorderID = request.RecorderID
	if request.CategoryID != 0 {
		if err := s.categories.Validate(request.CategoryID); err != nil {
			return nil, err
		}
		purchase.CategoryID = request.CategoryID
	}

	if request.Amount.Valid {
		if !request.Amount.Decimal.IsPositive() {
			return nil, NewRequestError(MsgAmountNotAllowed)
		}
		purchase.Amount = request.Amount.Decimal
	}
	if !request.PurchaseDate.IsZero() {
		purchase.PurchaseDate = request.PurchaseDate
	}
	if request.Description != "" {
		purchase.Description = request.Description
	}

	list, err := findList(s.lists, purchase.ListID)
	if err != nil {
		return nil, err
	}
	if list.Status != model.ListStatusPending {
		return nil, NewRequestError(MsgAddPurchaseNotAllowed)
	}

	saved, err := s.purchases.Update(purchase)
	if err != nil {
		return nil, err
	}
	s.log.Infow("purchase edited", "purchaseID", saved.ID, "listID", saved.ListID)
	return saved, nil
}

func (s *PurchaseService) Delete(purchaseID int) error {
	if err := requiredID(purchaseID); err != nil {
		return err
	}

	purchase, err := s.findPurchase(purchaseID)
	if err != nil {
		return err
	}

	list, err := findList(s.lists, purchase.ListID)
	if err != nil {
		return err
	}
	if list.Status != model.ListStatusPending {
		return NewRequestError(MsgAddPurchaseNotAllowed)
	}

	if err := s.purchases.Delete(purchaseID); err != nil {
		return err
	}
	s.log.Infow("purchase deleted", "purchaseID", purchaseID, "listID", purchase.ListID)
	return nil
}

// Filter returns a buyer's purchases within a list, newest purchase date
// first, joined with the category and user names for display.
func (s *PurchaseService) Filter(filter *model.PurchaseFilter) ([]model.PurchaseDetails, error) {
	if err := requiredID(filter.ListID); err != nil {
		return nil, err
	}
	if err := requiredID(filter.BuyerID); err != nil {
		return nil, err
	}

	if _, err := findList(s.lists, filter.ListID); err != nil {
		return nil, err
	}
	if err := s.users.Validate(filter.BuyerID); err != nil {
		return nil, err
	}
	return s.purchases.FindWithFilter(filter)
}

func (s *PurchaseService) findPurchase(id int) (*model.Purchase, error) {
	purchase, err := s.purchases.FindByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewBusinessError(MsgPurchaseNotFound)
	}
	if err != nil {
		return nil, err
	}
	return purchase, nil
}
