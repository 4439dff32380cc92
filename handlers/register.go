package handlers

import (
	"net/http"
	"os"

	"github.com/companieshouse/chs.go/authentication"
	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/dao"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/driver"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/interceptors"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/service"
	"github.com/gorilla/mux"
)

var tokenizationService *service.TokenizationService
var payPalService *service.PayPalService
var browserSwitchDriver *driver.Driver

// Register defines the route mappings for the main router and it's subrouters
func Register(mainRouter *mux.Router, cfg config.Config) {
	m := dao.NewMongoService(cfg)

	tokenizationService = &service.TokenizationService{
		DAO:    m,
		Config: cfg,
	}

	payPalClient, err := service.GetPayPalClient(cfg)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	payPalService = &service.PayPalService{
		Client:              payPalClient,
		TokenizationService: *tokenizationService,
	}

	gatewayService := &service.GatewayService{Config: cfg}

	browserSwitchDriver = driver.New(browserPresenter{}, gatewayService, cfg.ReturnURLScheme, cfg.DisableAuthSession)

	ta := &interceptors.TokenizationAuthenticationInterceptor{
		Service: *tokenizationService,
	}

	userAuthInterceptor := &authentication.UserAuthenticationInterceptor{
		AllowAPIKeyUser:                true,
		RequireElevatedAPIKeyPrivilege: true,
	}

	mainRouter.HandleFunc("/healthcheck", healthCheck).Methods("GET").Name("get-healthcheck")

	// Create subrouters. All routes except /callback need auth middleware, so the router needs to
	// be split up. This allows per-subrouter middleware.

	// create-tokenization endpoint should not be intercepted by the tokenization auth interceptor,
	// so needs to be it's own subrouter
	rootTokenizationRouter := mainRouter.PathPrefix("/tokenizations").Subrouter()
	rootTokenizationRouter.HandleFunc("", HandleCreateTokenizationSession).Methods("POST").Name("create-tokenization")

	// get-tokenization endpoint needs tokenization and user auth, so needs to be it's own subrouter
	getTokenizationRouter := rootTokenizationRouter.PathPrefix("/{tokenization_id}").Subrouter()
	getTokenizationRouter.HandleFunc("", HandleGetTokenizationSession).Methods("GET").Name("get-tokenization")

	// callback endpoints should not be intercepted by the tokenization auth or user auth
	// interceptors, so needs to be it's own subrouter
	callbackRouter := mainRouter.PathPrefix("/callback").Subrouter()
	callbackRouter.HandleFunc("/tokenizations/paypal/{tokenization_id}", HandlePayPalCallback).Methods("GET").Name("handle-paypal-callback")

	// Set middleware for subrouters
	rootTokenizationRouter.Use(log.Handler, userAuthInterceptor.UserAuthenticationIntercept)
	getTokenizationRouter.Use(ta.TokenizationAuthenticationIntercept)
	callbackRouter.Use(log.Handler)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
