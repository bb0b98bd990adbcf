package service

import (
	"database/sql"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/comprasapp/purchase-list/model"
)

// memStore is an in-memory backend shared by the fake repositories below.
// Multi-write operations mirror the transactional behavior of the MySQL
// repositories: list creation enrolls the creator, purchase mutations
// recompute the owning list's total.
type memStore struct {
	users         map[int]model.User
	categories    map[int]model.Category
	lists         map[int]*model.PurchaseList
	collaborators map[int]*model.Collaborator
	purchases     map[int]*model.Purchase
	nextID        int
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[int]model.User{},
		categories:    map[int]model.Category{},
		lists:         map[int]*model.PurchaseList{},
		collaborators: map[int]*model.Collaborator{},
		purchases:     map[int]*model.Purchase{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(id int, firstNames string, active bool) {
	m.users[id] = model.User{
		ID:         id,
		FirstNames: firstNames,
		LastNames:  "Doe",
		Active:     active,
		Email:      firstNames + "@mail.com",
		Password:   "secret",
	}
}

func (m *memStore) addCategory(id int, name string) {
	m.categories[id] = model.Category{ID: id, Name: name, CreatorID: 1}
}

func (m *memStore) collaboratorByUser(listID, userID int) (*model.Collaborator, error) {
	return fakeCollaboratorRepo{m}.FindByListAndUser(listID, userID)
}

// setPercentage overwrites a share directly, bypassing the service checks.
func (m *memStore) setPercentage(listID, userID int, percentage int64) {
	for _, collaborator := range m.collaborators {
		if collaborator.ListID == listID && collaborator.UserID == userID {
			collaborator.Percentage = decimal.NewNullDecimal(decimal.NewFromInt(percentage))
		}
	}
}

func (m *memStore) recomputeTotal(listID int) {
	total := decimal.Zero
	for _, purchase := range m.purchases {
		if purchase.ListID == listID {
			total = total.Add(purchase.Amount)
		}
	}
	if list, ok := m.lists[listID]; ok {
		list.TotalPurchases = total
	}
}

type fakeUserRepo struct{ *memStore }

func (f fakeUserRepo) FindByID(id int) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

func (f fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeUserRepo) Create(user *model.User) (*model.User, error) {
	user.ID = f.id()
	f.users[user.ID] = *user
	return user, nil
}

type fakeCategoryRepo struct{ *memStore }

func (f fakeCategoryRepo) FindByID(id int) (*model.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &category, nil
}

func (f fakeCategoryRepo) FindAll() ([]model.Category, error) {
	categories := []model.Category{}
	for _, category := range f.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (f fakeCategoryRepo) Create(category *model.Category) (*model.Category, error) {
	category.ID = f.id()
	f.categories[category.ID] = *category
	return category, nil
}

type fakeListRepo struct{ *memStore }

func (f fakeListRepo) Create(list *model.PurchaseList, codeSuffix string) (*model.PurchaseList, error) {
	list.ID = f.id()
	list.JoinCode = strconv.Itoa(list.ID) + codeSuffix
	f.lists[list.ID] = list

	creator := &model.Collaborator{
		ID:         f.id(),
		ListID:     list.ID,
		UserID:     list.CreatorID,
		Percentage: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		Status:     model.CollaboratorStatusApproved,
		IsCreator:  true,
	}
	f.collaborators[creator.ID] = creator
	return list, nil
}

func (f fakeListRepo) FindByID(id int) (*model.PurchaseList, error) {
	list, ok := f.lists[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	l := *list
	return &l, nil
}

func (f fakeListRepo) FindByJoinCode(code string) (*model.PurchaseList, error) {
	for _, list := range f.lists {
		if list.JoinCode == code {
			l := *list
			return &l, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeListRepo) UpdateStatus(id int, status string) (*model.PurchaseList, error) {
	list, ok := f.lists[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	list.Status = status
	l := *list
	return &l, nil
}

func (f fakeListRepo) FindByCreator(filter *model.ListFilter) ([]model.PurchaseList, error) {
	lists := []model.PurchaseList{}
	for _, list := range f.lists {
		if list.CreatorID != filter.UserID {
			continue
		}
		if filter.Status != "" && list.Status != filter.Status {
			continue
		}
		if filter.Name != "" && !strings.Contains(list.Name, filter.Name) {
			continue
		}
		lists = append(lists, *list)
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].CreatedAt.After(lists[j].CreatedAt) })
	return lists, nil
}

type fakeCollaboratorRepo struct{ *memStore }

func (f fakeCollaboratorRepo) Add(collaborator *model.Collaborator) (*model.Collaborator, error) {
	collaborator.ID = f.id()
	f.collaborators[collaborator.ID] = collaborator
	return collaborator, nil
}

func (f fakeCollaboratorRepo) FindByListAndUser(listID, userID int) (*model.Collaborator, error) {
	for _, collaborator := range f.collaborators {
		if collaborator.ListID == listID && collaborator.UserID == userID {
			c := *collaborator
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeCollaboratorRepo) UpdateStatus(id int, status string) error {
	collaborator, ok := f.collaborators[id]
	if !ok {
		return sql.ErrNoRows
	}
	collaborator.Status = status
	return nil
}

func (f fakeCollaboratorRepo) UpdatePercentage(id int, percentage decimal.Decimal) error {
	collaborator, ok := f.collaborators[id]
	if !ok {
		return sql.ErrNoRows
	}
	collaborator.Percentage = decimal.NewNullDecimal(percentage)
	return nil
}

func (f fakeCollaboratorRepo) FindByList(filter *model.CollaboratorFilter) ([]model.CollaboratorDetails, error) {
	details := []model.CollaboratorDetails{}
	for _, collaborator := range f.collaborators {
		if collaborator.ListID != filter.ListID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsString(filter.Statuses, collaborator.Status) {
			continue
		}
		user := f.users[collaborator.UserID]
		if filter.Name != "" &&
			!strings.Contains(user.FirstNames, filter.Name) &&
			!strings.Contains(user.LastNames, filter.Name) {
			continue
		}
		details = append(details, model.CollaboratorDetails{
			Collaborator: *collaborator,
			FirstNames:   user.FirstNames,
			LastNames:    user.LastNames,
		})
	}
	sort.Slice(details, func(i, j int) bool {
		return sortablePercentage(details[i].Percentage).GreaterThan(sortablePercentage(details[j].Percentage))
	})
	return details, nil
}

func (f fakeCollaboratorRepo) FindWithPurchaseTotals(listID int) ([]model.CollaboratorTotal, error) {
	byList, err := f.FindByList(&model.CollaboratorFilter{ListID: listID})
	if err != nil {
		return nil, err
	}

	totals := []model.CollaboratorTotal{}
	for _, details := range byList {
		total := decimal.Zero
		for _, purchase := range f.purchases {
			if purchase.ListID == listID && purchase.BuyerID == details.UserID {
				total = total.Add(purchase.Amount)
			}
		}
		totals = append(totals, model.CollaboratorTotal{CollaboratorDetails: details, TotalPurchases: total})
	}
	return totals, nil
}

func (f fakeCollaboratorRepo) FindListsByMember(filter *model.ListFilter, page, size int, sort string) (*model.ListPage, error) {
	lists := []model.PurchaseList{}
	for _, collaborator := range f.collaborators {
		if collaborator.UserID != filter.UserID || collaborator.Status != model.CollaboratorStatusApproved {
			continue
		}
		list := f.lists[collaborator.ListID]
		if filter.Status != "" && list.Status != filter.Status {
			continue
		}
		if filter.Name != "" && !strings.Contains(list.Name, filter.Name) {
			continue
		}
		lists = append(lists, *list)
	}

	total := len(lists)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	return &model.ListPage{
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Content:       lists[start:end],
	}, nil
}

type fakePurchaseRepo struct{ *memStore }

func (f fakePurchaseRepo) Create(purchase *model.Purchase) (*model.Purchase, error) {
	purchase.ID = f.id()
	f.purchases[purchase.ID] = purchase
	f.recomputeTotal(purchase.ListID)
	return purchase, nil
}

func (f fakePurchaseRepo) Update(purchase *model.Purchase) (*model.Purchase, error) {
	if _, ok := f.purchases[purchase.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	f.purchases[purchase.ID] = purchase
	f.recomputeTotal(purchase.ListID)
	return purchase, nil
}

func (f fakePurchaseRepo) Delete(id int) error {
	purchase, ok := f.purchases[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(f.purchases, id)
	f.recomputeTotal(purchase.ListID)
	return nil
}

func (f fakePurchaseRepo) FindByID(id int) (*model.Purchase, error) {
	purchase, ok := f.purchases[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	p := *purchase
	return &p, nil
}

func (f fakePurchaseRepo) FindWithFilter(filter *model.PurchaseFilter) ([]model.PurchaseDetails, error) {
	details := []model.PurchaseDetails{}
	for _, purchase := range f.purchases {
		if purchase.ListID != filter.ListID || purchase.BuyerID != filter.BuyerID {
			continue
		}
		category := f.categories[purchase.CategoryID]
		if filter.Category != "" && !strings.Contains(category.Name, filter.Category) {
			continue
		}
		if filter.Description != "" && !strings.Contains(purchase.Description, filter.Description) {
			continue
		}
		buyer := f.users[purchase.BuyerID]
		recorder := f.users[purchase.RecorderID]
		details = append(details, model.PurchaseDetails{
			Purchase:           *purchase,
			CategoryName:       category.Name,
			BuyerFirstNames:    buyer.FirstNames,
			BuyerLastNames:     buyer.LastNames,
			RecorderFirstNames: recorder.FirstNames,
			RecorderLastNames:  recorder.LastNames,
		})
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].PurchaseDate.After(details[j].PurchaseDate)
	})
	return details, nil
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func sortablePercentage(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.NewFromInt(-1)
}

// testServices wires every service against one shared in-memory store.
type testServices struct {
	store     *memStore
	users     *UserService
	lists     *ListService
	roster    *RosterService
	purchases *PurchaseService
}

func newTestServices() *testServices {
	store := newMemStore()
	log := zap.NewNop().Sugar()
	users := NewUserService(fakeUserRepo{store})
	categories := NewCategoryService(fakeCategoryRepo{store})
	return &testServices{
		store:  store,
		users:  users,
		lists:  NewListService(fakeListRepo{store}, fakeCollaboratorRepo{store}, users, NewCodeGenerator(), log),
		roster: NewRosterService(fakeCollaboratorRepo{store}, fakeListRepo{store}, users, log),
		purchases: NewPurchaseService(fakePurchaseRepo{store}, fakeListRepo{store},
			users, categories, log),
	}
}
