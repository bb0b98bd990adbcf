package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID           int             `json:"id"`
	ListID       int             `json:"listID"`
	CategoryID   int             `json:"categoryID"`
	BuyerID      int             `json:"buyerID"`
	RecorderID   int             `json:"recorderID"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type CreatePurchase struct {
	ListID       int             `json:"listID" validate:"numeric,gte=0"`
	CategoryID   int             `json:"categoryID" validate:"numeric,gte=0"`
	BuyerID      int             `json:"buyerID" validate:"numeric,gte=0"`
	RecorderID   int             `json:"recorderID" validate:"numeric,gte=0"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Description  string          `json:"description" validate:"max=50"`
	Amount       decimal.Decimal `json:"amount"`
}

// EditPurchase carries the purchase id plus the fields to change. Zero-valued
// reference ids, a zero date and an empty description leave the stored value
// untouched; Amount uses NullDecimal so an absent amount is distinguishable
// from an explicit zero.
type EditPurchase struct {
	PurchaseID   int                 `json:"purchaseID" validate:"numeric,gte=0"`
	CategoryID   int                 `json:"categoryID" validate:"numeric,gte=0"`
	BuyerID      int                 `json:"buyerID" validate:"numeric,gte=0"`
	RecorderID   int                 `json:"recorderID" validate:"numeric,gte=0"`
	PurchaseDate time.Time           `json:"purchaseDate"`
	Description  string              `json:"description" validate:"max=50"`
	Amount       decimal.NullDecimal `json:"amount"`
}

// PurchaseFilter selects a buyer's purchases within a list. Category and
// Description are substring matches applied only when non-empty.
type PurchaseFilter struct {
	ListID      int    `json:"listID"`
	BuyerID     int    `json:"buyerID"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// PurchaseDetails is the filtered-query row: the purchase joined with its
// category name and the names of both the buying and the recording user.
type PurchaseDetails struct {
	Purchase
	CategoryName       string `json:"categoryName"`
	BuyerFirstNames    string `json:"buyerFirstNames"`
	BuyerLastNames     string `json:"buyerLastNames"`
	RecorderFirstNames string `json:"recorderFirstNames"`
	RecorderLastNames  string `json:"recorderLastNames"`
}
