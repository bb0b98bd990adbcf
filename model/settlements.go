package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementDetail models one debtor/creditor pairing produced when a list is
// closed. The table exists in the schema but no operation writes to it yet:
// closing a list (CLOSED state) is reserved for the settlement flow.
type SettlementDetail struct {
	ID         int             `json:"id"`
	ListID     int             `json:"listID"`
	DebtorID   int             `json:"debtorID"`
	CreditorID int             `json:"creditorID"`
	TotalOwed  decimal.Decimal `json:"totalOwed"`
	Approved   bool            `json:"approved"`
	ApprovedAt *time.Time      `json:"approvedAt"`
}
