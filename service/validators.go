package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comprasapp/purchase-list/contract"
	"github.com/comprasapp/purchase-list/model"
)

// Required-field checks run before any lookup so that a malformed request
// always surfaces REQUIRED_FIELD first.

func requiredID(id int) error {
	if id <= 0 {
		return NewRequestError(MsgRequiredField)
	}
	return nil
}

func requiredString(s string) error {
	if s == "" {
		return NewRequestError(MsgRequiredField)
	}
	return nil
}

func requiredDate(t time.Time) error {
	if t.IsZero() {
		return NewRequestError(MsgRequiredField)
	}
	return nil
}

func requiredAmount(d decimal.Decimal) error {
	if d.IsZero() {
		return NewRequestError(MsgRequiredField)
	}
	return nil
}

func findList(lists contract.PurchaseListRepo, id int) (*model.PurchaseList, error) {
	if err := requiredID(id); err != nil {
		return nil, err
	}
	list, err := lists.FindByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewRequestError(MsgListNotFound)
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}
