package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase-list lifecycle. CLOSED is reserved for the settlement flow and is
// never reached by the current operations.
const (
	ListStatusConfiguring = "CONFIGURING"
	ListStatusPending     = "PENDING"
	ListStatusClosed      = "CLOSED"
)

type PurchaseList struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
	// FinalizedAt stays nil until the list is closed.
	FinalizedAt *time.Time `json:"finalizedAt"`
	// TotalPurchases caches the sum of all purchase amounts attached to the
	// list. It is recomputed inside the same transaction as every purchase
	// mutation.
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
	CreatorID      int             `json:"creatorID"`
	// JoinCode is "{id}" + a 6-character random suffix. Empty only between
	// the insert and the code update of the creation transaction.
	JoinCode string `json:"joinCode"`
}

type CreateList struct {
	Name      string `json:"name" validate:"omitempty,min=1,max=50"`
	CreatorID int    `json:"creatorID" validate:"numeric,gte=0"`
}

// ListFilter narrows a creator's or member's lists. Status and Name are
// applied only when non-empty: Status as an equality match, Name as a
// substring match.
type ListFilter struct {
	UserID int    `json:"userID"`
	Status string `json:"status,omitempty"`
	Name   string `json:"name,omitempty"`
}

type ListPage struct {
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int            `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Content       []PurchaseList `json:"content"`
}
