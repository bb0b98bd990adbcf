package service

import "errors"

// Message phrases are part of the API contract: clients match on them, so
// they must stay stable.
const (
	MsgRequiredField = "REQUIRED_FIELD"

	MsgUserNotFound     = "The user does not exist."
	MsgUserNotActive    = "The user is not active."
	MsgListNotFound     = "The list does not exist."
	MsgCategoryNotFound = "The category does not exist."
	MsgPurchaseNotFound = "Purchase does not exist."
	MsgMemberNotFound   = "Member does not exist."

	MsgDuplicateUserOnList          = "Duplicate user on purchase list."
	MsgPercentNotAllowed            = "Percent not allowed."
	MsgAmountNotAllowed             = "Amount not allowed."
	MsgAddPurchaseNotAllowed        = "Add purchase not allowed."
	MsgAddCollaboratorNotAllowed    = "Add collaborator not allowed."
	MsgEnableCollaboratorNotAllowed = "Enable collaborator not allowed."
	MsgTotalPercentagesMustBe100    = "Total percentages must be 100 percent."
	MsgPartnerRequestRejected       = "Partner request rejected."
	MsgRequestNotApproved           = "Request has not been approved."
	MsgStatusChangeToCreator        = "Changing the status of the creator's request is not allowed."
	MsgNotAllowedEnable             = "Approve/Reject is not allowed because it is not the creating user."
	MsgHasPendingRequests           = "It is not allowed to start the list with pending requests."
)

// ErrInvalidCredentials is returned by Authenticate and mapped to 401 by the
// transport layer.
var ErrInvalidCredentials = errors.New("Invalid login credentials. Please try again")

// RequestError marks a client-correctable problem: a missing field, an
// unknown referenced entity or an entity in the wrong state for the
// operation.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func NewRequestError(message string) error {
	return &RequestError{Message: message}
}

// BusinessError marks a domain-rule violation: duplicate membership, a
// percentage out of range, a non-creator attempting a creator-only action.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

func NewBusinessError(message string) error {
	return &BusinessError{Message: message}
}
