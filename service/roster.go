package service

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/comprasapp/purchase-list/contract"
	"github.com/comprasapp/purchase-list/model"
)

var one = decimal.NewFromInt(1)

// RosterService manages membership requests, the approval workflow and
// percentage bookkeeping. It never touches purchases; the total-recompute
// and percentage-sum checks live with the purchase and list services.
type RosterService struct {
	collaborators contract.CollaboratorRepo
	lists         contract.PurchaseListRepo
	users         *UserService
	log           *zap.SugaredLogger
}

func NewRosterService(collaborators contract.CollaboratorRepo, lists contract.PurchaseListRepo,
	users *UserService, log *zap.SugaredLogger) *RosterService {
	return &RosterService{
		collaborators: collaborators,
		lists:         lists,
		users:         users,
		log:           log,
	}
}

// Join files a membership request against the list identified by its join
// code. A user who was rejected before gets the rejection surfaced rather
// than a generic duplicate, and may not re-request.
func (s *RosterService) Join(request *model.JoinList) (*model.Collaborator, error) {
	if err := requiredString(request.Code); err != nil {
		return nil, err
	}
	if err := requiredID(request.UserID); err != nil {
		return nil, err
	}

	list, err := s.lists.FindByJoinCode(request.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewRequestError(MsgListNotFound)
	}
	if err != nil {
		return nil, err
	}

	if list.Status != model.ListStatusConfiguring {
		return nil, NewRequestError(MsgAddCollaboratorNotAllowed)
	}

	if err := s.users.Validate(request.UserID); err != nil {
		return nil, err
	}

	if list.CreatorID == request.UserID {
		return nil, NewBusinessError(MsgDuplicateUserOnList)
	}

	existing, err := s.collaborators.FindByListAndUser(list.ID, request.UserID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		if existing.Status == model.CollaboratorStatusRejected {
			return nil, NewBusinessError(MsgPartnerRequestRejected)
		}
		return nil, NewBusinessError(MsgDuplicateUserOnList)
	}

	collaborator := &model.Collaborator{
		ListID: list.ID,
		UserID: request.UserID,
		Status: model.CollaboratorStatusPending,
	}
	saved, err := s.collaborators.Add(collaborator)
	if err != nil {
		return nil, err
	}
	s.log.Infow("collaborator request filed", "listID", list.ID, "userID", request.UserID)
	return saved, nil
}

// Review approves or rejects a pending request. Only the list's creator may
// review, only while the list is CONFIGURING, and never against their own
// membership record.
func (s *RosterService) Review(request *model.ReviewCollaborator) (*model.Collaborator, error) {
	if err := s.reviewPreconditions(request.ListID, request.CreatorID, request.UserID); err != nil {
		return nil, err
	}
	collaborator, err := s.findCollaborator(request.ListID, request.UserID)
	if err != nil {
		return nil, err
	}

	status := model.CollaboratorStatusRejected
	if request.Approve {
		status = model.CollaboratorStatusApproved
	}
	if err := s.collaborators.UpdateStatus(collaborator.ID, status); err != nil {
		return nil, err
	}
	collaborator.Status = status
	s.log.Infow("collaborator reviewed",
		"listID", request.ListID, "userID", request.UserID, "status", status)
	return collaborator, nil
}

// AssignPercentage overwrites an approved collaborator's share. The running
// sum is deliberately not validated here; only the activation transition
// checks the aggregate.
func (s *RosterService) AssignPercentage(request *model.AssignPercentage) (*model.Collaborator, error) {
	if err := requiredAmount(request.Percentage); err != nil {
		return nil, err
	}

	if err := s.reviewPreconditions(request.ListID, request.CreatorID, request.UserID); err != nil {
		return nil, err
	}

	if request.Percentage.LessThan(one) || request.Percentage.GreaterThan(oneHundred) {
		return nil, NewBusinessError(MsgPercentNotAllowed)
	}

	collaborator, err := s.findCollaborator(request.ListID, request.UserID)
	if err != nil {
		return nil, err
	}

	switch collaborator.Status {
	case model.CollaboratorStatusRejected:
		return nil, NewBusinessError(MsgPartnerRequestRejected)
	case model.CollaboratorStatusPending:
		return nil, NewBusinessError(MsgRequestNotApproved)
	}

	if err := s.collaborators.UpdatePercentage(collaborator.ID, request.Percentage); err != nil {
		return nil, err
	}
	collaborator.Percentage = decimal.NewNullDecimal(request.Percentage)
	s.log.Infow("collaborator percentage assigned",
		"listID", request.ListID, "userID", request.UserID, "percentage", request.Percentage)
	return collaborator, nil
}

// reviewPreconditions runs the shared creator-only checks: both users exist
// and are active, the list exists, the caller is its creator, the list is
// still CONFIGURING and the target is not the creator themself.
func (s *RosterService) reviewPreconditions(listID, creatorID, userID int) error {
	if err := requiredID(listID); err != nil {
		return err
	}
	if err := requiredID(creatorID); err != nil {
		return err
	}
	if err := requiredID(userID); err != nil {
		return err
	}

	if err := s.users.Validate(creatorID); err != nil {
		return err
	}
	if err := s.users.Validate(userID); err != nil {
		return err
	}

	list, err := findList(s.lists, listID)
	if err != nil {
		return err
	}

	if list.CreatorID != creatorID {
		return NewBusinessError(MsgNotAllowedEnable)
	}
	if list.Status != model.ListStatusConfiguring {
		return NewRequestError(MsgEnableCollaboratorNotAllowed)
	}
	if list.CreatorID == userID {
		return NewBusinessError(MsgStatusChangeToCreator)
	}
	return nil
}

// findCollaborator resolves the single membership record for the pair.
func (s *RosterService) findCollaborator(listID, userID int) (*model.Collaborator, error) {
	collaborator, err := s.collaborators.FindByListAndUser(listID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewRequestError(MsgMemberNotFound)
	}
	if err != nil {
		return nil, err
	}
	return collaborator, nil
}

// Collaborators lists a list's membership records, largest share first.
func (s *RosterService) Collaborators(filter *model.CollaboratorFilter) ([]model.CollaboratorDetails, error) {
	if _, err := findList(s.lists, filter.ListID); err != nil {
		return nil, err
	}
	return s.collaborators.FindByList(filter)
}

// CollaboratorTotals reports each collaborator alongside the sum of the
// purchases they bought within the list.
func (s *RosterService) CollaboratorTotals(listID int) ([]model.CollaboratorTotal, error) {
	if _, err := findList(s.lists, listID); err != nil {
		return nil, err
	}
	return s.collaborators.FindWithPurchaseTotals(listID)
}
