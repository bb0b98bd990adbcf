package rest

import (
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/comprasapp/purchase-list/repository"
	"github.com/comprasapp/purchase-list/service"
)

type App struct {
	Router *mux.Router
	Logger *zap.Logger

	Users      *service.UserService
	Categories *service.CategoryService
	Lists      *service.ListService
	Roster     *service.RosterService
	Purchases  *service.PurchaseService

	Validator  *validator.Validate
	Translator ut.Translator
}

func (a *App) Init(user, password, dbname string) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	a.Logger = logger
	sugar := logger.Sugar()

	userRepo := repository.NewUserRepoMysql(user, password, dbname)
	categoryRepo := repository.NewCategoryRepoMysql(user, password, dbname)
	listRepo := repository.NewPurchaseListRepoMysql(user, password, dbname)
	collaboratorRepo := repository.NewCollaboratorRepoMysql(user, password, dbname)
	purchaseRepo := repository.NewPurchaseRepoMysql(user, password, dbname)

	if os.Getenv("SEED_DATA") == "true" {
		AddData(userRepo, categoryRepo)
	}

	a.Users = service.NewUserService(userRepo)
	a.Categories = service.NewCategoryService(categoryRepo)
	a.Lists = service.NewListService(listRepo, collaboratorRepo, a.Users, service.NewCodeGenerator(), sugar)
	a.Roster = service.NewRosterService(collaboratorRepo, listRepo, a.Users, sugar)
	a.Purchases = service.NewPurchaseService(purchaseRepo, listRepo, a.Users, a.Categories, sugar)

	a.Validator = validator.New()
	eng := en.New()
	uni := ut.New(eng, eng)

	var found bool
	a.Translator, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(a.Validator, a.Translator); err != nil {
		log.Fatal(err)
	}

	a.Router = mux.NewRouter()
	a.Router.Use(a.logRequests)
	a.initializeRoutes()
}

func (a *App) Run(addr string) {
	defer a.Logger.Sync()
	a.Logger.Info("server listening", zap.String("addr", addr))
	log.Fatal(http.ListenAndServe(addr, a.Router))
}

func (a *App) initializeRoutes() {
	a.Router.HandleFunc("/login", a.login).Methods(http.MethodPost)

	// Auth route
	s := a.Router.PathPrefix("/home").Subrouter()
	s.Use(JwtVerify)
	s.HandleFunc("/lists", a.createList).Methods(http.MethodPost)
	s.HandleFunc("/lists/initialize", a.initializeList).Methods(http.MethodPut)
	s.HandleFunc("/lists/mine", a.myLists).Methods(http.MethodGet)
	s.HandleFunc("/lists/member", a.memberLists).Methods(http.MethodGet)
	s.HandleFunc("/collaborators/join", a.joinList).Methods(http.MethodPost)
	s.HandleFunc("/collaborators/review", a.reviewCollaborator).Methods(http.MethodPost)
	s.HandleFunc("/collaborators/percentage", a.assignPercentage).Methods(http.MethodPost)
	s.HandleFunc("/collaborators/filter", a.filterCollaborators).Methods(http.MethodPost)
	s.HandleFunc("/collaborators/totals", a.collaboratorTotals).Methods(http.MethodGet)
	s.HandleFunc("/purchases", a.createPurchase).Methods(http.MethodPost)
	s.HandleFunc("/purchases", a.editPurchase).Methods(http.MethodPut)
	s.HandleFunc("/purchases/{id:[0-9]+}", a.deletePurchase).Methods(http.MethodDelete)
	s.HandleFunc("/purchases/filter", a.filterPurchases).Methods(http.MethodPost)
	s.HandleFunc("/categories", a.getCategories).Methods(http.MethodGet)
}
