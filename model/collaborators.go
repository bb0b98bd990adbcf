package model

import "github.com/shopspring/decimal"

// Collaborator request lifecycle. There is no path out of REJECTED.
const (
	CollaboratorStatusPending  = "PENDING"
	CollaboratorStatusApproved = "APPROVED"
	CollaboratorStatusRejected = "REJECTED"
)

// Collaborator is a user's membership record within a purchase list.
// At most one row exists per (list, user) pair; the list creator is enrolled
// automatically as an approved 100% collaborator when the list is created.
type Collaborator struct {
	ID     int `json:"id"`
	ListID int `json:"listID"`
	UserID int `json:"userID"`
	// Percentage is unset until the creator assigns a share.
	Percentage decimal.NullDecimal `json:"percentage"`
	Status     string              `json:"status"`
	IsCreator  bool                `json:"isCreator"`
}

// CollaboratorDetails joins the membership record with the user's names.
type CollaboratorDetails struct {
	Collaborator
	FirstNames string `json:"firstNames"`
	LastNames  string `json:"lastNames"`
}

// CollaboratorTotal adds the sum of the purchases the collaborator has bought
// within the list. Zero when the collaborator has no purchases.
type CollaboratorTotal struct {
	CollaboratorDetails
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
}

type JoinList struct {
	Code   string `json:"code"`
	UserID int    `json:"userID" validate:"numeric,gte=0"`
}

type ReviewCollaborator struct {
	ListID    int  `json:"listID" validate:"numeric,gte=0"`
	CreatorID int  `json:"creatorID" validate:"numeric,gte=0"`
	UserID    int  `json:"userID" validate:"numeric,gte=0"`
	Approve   bool `json:"approve"`
}

type AssignPercentage struct {
	ListID     int             `json:"listID" validate:"numeric,gte=0"`
	CreatorID  int             `json:"creatorID" validate:"numeric,gte=0"`
	UserID     int             `json:"userID" validate:"numeric,gte=0"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CollaboratorFilter selects a list's collaborators. Statuses is an
// IN-filter, Name a substring match against first or last names.
type CollaboratorFilter struct {
	ListID   int      `json:"listID"`
	Statuses []string `json:"statuses,omitempty"`
	Name     string   `json:"name,omitempty"`
}
