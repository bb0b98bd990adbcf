package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/comprasapp/purchase-list/model"
	"github.com/comprasapp/purchase-list/service"
)

// Users //

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	credentials := &model.UserLogin{}
	if err := json.NewDecoder(r.Body).Decode(credentials); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := a.Users.Authenticate(credentials.Email, credentials.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		a.respondServiceError(w, err)
		return
	}

	resp, err := a.issueToken(user)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// Purchase lists //

func (a *App) createList(w http.ResponseWriter, r *http.Request) {
	request := &model.CreateList{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(request); err != nil {
		// translate all errors at once
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	list, err := a.Lists.Create(request)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, list)
}

func (a *App) initializeList(w http.ResponseWriter, r *http.Request) {
	listID, ok := queryInt(r, "listID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid request listID parameter")
		return
	}

	list, err := a.Lists.Initialize(listID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (a *App) myLists(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := queryInt(r, "creatorID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid request creatorID parameter")
		return
	}

	filter := &model.ListFilter{
		UserID: creatorID,
		Status: r.FormValue("status"),
		Name:   r.FormValue("name"),
	}
	lists, err := a.Lists.Mine(filter)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, lists)
}

func (a *App) memberLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryInt(r, "userID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid request userID parameter")
		return
	}
	page, ok := queryInt(r, "page")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid request page parameter")
		return
	}
	size, ok := queryInt(r, "size")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid request size parameter")
		return
	}

	filter := &model.ListFilter{
		UserID: userID,
		Status: r.FormValue("status"),
		Name:   r.FormValue("name"),
	}
	result, err := a.Lists.Member(filter, page, size, r.FormValue("sort"))
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// Collaborators //

func (a *App) joinList(w http.ResponseWriter, r *http.Request) {
	request := &model.JoinList{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(request); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	collaborator, err := a.Roster.Join(request)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, collaborator)
}

func (a *App) reviewCollaborator(w http.ResponseWriter, r *http.Request) {
	request := &model.ReviewCollaborator{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(request); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	collaborator, err := a.Roster.Review(request)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, collaborator)
}

func (a *App) assignPercentage(w http.ResponseWriter, r *http.Request) {
	request := &model.AssignPercentage{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(request); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	collaborator, err := a.Roster.AssignPercentage(request)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, collaborator)
}

func (a *App) filterCollaborators(w http.ResponseWriter, r *http.Request) {
	filter := &model.CollaboratorFilter{}
	if err := json.NewDecoder(r.Body).Decode(filter); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	collaborators, err := a.Roster.Collaborators(filter)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, collaborators)
}

func (a *App) collaboratorTotals(w http.ResponseWriter, r *http.Request) {
	listID, ok := queryInt(r, "listID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid request listID parameter")
		return
	}

	totals, err := a.Roster.CollaboratorTotals(listID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, totals)
}

// Purchases //

func (a *App) createPurchase(w http.ResponseWriter, r *http.Request) {
	request := &model.CreatePurchase{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(request); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	purchase, err := a.Purchases.Create(request)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, purchase)
}

func (a *App) editPurchase(w http.ResponseWriter, r *http.Request) {
	request := &model.EditPurchase{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(request); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	purchase, err := a.Purchases.Edit(request)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, purchase)
}

func (a *App) deletePurchase(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid purchase ID")
		return
	}

	if err := a.Purchases.Delete(id); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"result": "deleted"})
}

func (a *App) filterPurchases(w http.ResponseWriter, r *http.Request) {
	filter := &model.PurchaseFilter{}
	if err := json.NewDecoder(r.Body).Decode(filter); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	purchases, err := a.Purchases.Filter(filter)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, purchases)
}

// Categories //

func (a *App) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.Categories.FindAll()
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}
