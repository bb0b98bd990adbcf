package service

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/comprasapp/purchase-list/contract"
	"github.com/comprasapp/purchase-list/model"
)

var oneHundred = decimal.NewFromInt(100)

// ListService owns list creation and the lifecycle transition to PENDING.
// The percentage-sum invariant is enforced only here, at activation time:
// individual assignments are free to leave the sum off 100 while the list is
// being configured.
type ListService struct {
	lists         contract.PurchaseListRepo
	collaborators contract.CollaboratorRepo
	users         *UserService
	codes         *CodeGenerator
	log           *zap.SugaredLogger
}

func NewListService(lists contract.PurchaseListRepo, collaborators contract.CollaboratorRepo,
	users *UserService, codes *CodeGenerator, log *zap.SugaredLogger) *ListService {
	return &ListService{
		lists:         lists,
		collaborators: collaborators,
		users:         users,
		codes:         codes,
		log:           log,
	}
}

func (s *ListService) Create(request *model.CreateList) (*model.PurchaseList, error) {
	if err := requiredString(request.Name); err != nil {
		return nil, err
	}
	if err := requiredID(request.CreatorID); err != nil {
		return nil, err
	}
	if err := s.users.Validate(request.CreatorID); err != nil {
		return nil, err
	}

	list := &model.PurchaseList{
		Name:           request.Name,
		CreatedAt:      time.Now(),
		Status:         model.ListStatusConfiguring,
		TotalPurchases: decimal.Zero,
		CreatorID:      request.CreatorID,
	}

	saved, err := s.lists.Create(list, s.codes.Generate())
	if err != nil {
		return nil, err
	}
	s.log.Infow("purchase list created", "listID", saved.ID, "creatorID", saved.CreatorID)
	return saved, nil
}

// Initialize moves a CONFIGURING list to PENDING. The transition is refused
// while join requests are still pending, and unless the approved
// collaborators' percentages sum to exactly 100.
func (s *ListService) Initialize(listID int) (*model.PurchaseList, error) {
	if _, err := findList(s.lists, listID); err != nil {
		return nil, err
	}

	pending, err := s.collaboratorsByStatus(listID, model.CollaboratorStatusPending)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, NewBusinessError(MsgHasPendingRequests)
	}

	approved, err := s.collaboratorsByStatus(listID, model.CollaboratorStatusApproved)
	if err != nil {
		return nil, err
	}
	if !sumPercentages(approved).Equal(oneHundred) {
		return nil, NewBusinessError(MsgTotalPercentagesMustBe100)
	}

	list, err := s.lists.UpdateStatus(listID, model.ListStatusPending)
	if err != nil {
		return nil, err
	}
	s.log.Infow("purchase list initialized", "listID", listID)
	return list, nil
}

func (s *ListService) collaboratorsByStatus(listID int, status string) ([]model.CollaboratorDetails, error) {
	filter := &model.CollaboratorFilter{
		ListID:   listID,
		Statuses: []string{status},
	}
	return s.collaborators.FindByList(filter)
}

func sumPercentages(collaborators []model.CollaboratorDetails) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range collaborators {
		if c.Percentage.Valid {
			sum = sum.Add(c.Percentage.Decimal)
		}
	}
	return sum
}

// Mine lists the purchase lists the user created, newest first.
func (s *ListService) Mine(filter *model.ListFilter) ([]model.PurchaseList, error) {
	if err := requiredID(filter.UserID); err != nil {
		return nil, err
	}
	if err := s.users.Validate(filter.UserID); err != nil {
		return nil, err
	}
	return s.lists.FindByCreator(filter)
}

const (
	minPage     = 0
	minPageSize = 1
	maxPageSize = 50
)

// Member pages through the lists the user belongs to as an approved
// collaborator.
func (s *ListService) Member(filter *model.ListFilter, page, size int, sort string) (*model.ListPage, error) {
	if err := requiredID(filter.UserID); err != nil {
		return nil, err
	}
	if err := s.users.Validate(filter.UserID); err != nil {
		return nil, err
	}

	if page < minPage {
		page = minPage
	}
	if size < minPageSize || size > maxPageSize {
		size = maxPageSize
	}
	return s.collaborators.FindListsByMember(filter, page, size, sort)
}
