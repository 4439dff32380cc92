package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/driver"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/helpers"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/service"

	"github.com/go-playground/validator/v10"
)

// HandleCreateTokenizationSession creates a tokenization session, begins the browser switch flow
// and returns a journey URL for the calling app to redirect to
func HandleCreateTokenizationSession(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	requestDecoder := json.NewDecoder(req.Body)
	var incomingTokenizationRequest models.IncomingTokenizationRequest
	err := requestDecoder.Decode(&incomingTokenizationRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Ideally all validation would be done in the service layer but due to different response status code here this is handled outside of service for now
	if err = validateTokenizationCreate(incomingTokenizationRequest); err != nil {
		log.ErrorR(req, fmt.Errorf("invalid POST request to create tokenization session: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// once we've read and decoded request body call the tokenization service to handle internal business logic
	tokenizationResource, responseType, err := tokenizationService.CreateTokenizationSession(req, incomingTokenizationRequest)

	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating tokenization resource: [%v]", err))
		switch responseType {
		case service.InvalidData:
			w.WriteHeader(http.StatusBadRequest)
			return
		case service.Error:
			w.WriteHeader(http.StatusInternalServerError)
			return
		default:
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	id := path.Base(tokenizationResource.Links.Self)

	journey, responseType, err := payPalService.CreateApprovalJourney(req, id, tokenizationResource)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating approval journey: [%v]", err), log.Data{"service_response_type": responseType.String()})
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	approvalURL, err := url.Parse(journey.NextURL)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error parsing approval url: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	flowType := driver.Checkout
	if incomingTokenizationRequest.FlowType == driver.Vault.String() {
		flowType = driver.Vault
	}

	handle, err := browserSwitchDriver.Begin(
		flowType,
		&driver.Request{
			Intent:      tokenizationResource.Intent,
			ApprovalURL: approvalURL,
			OfferCredit: tokenizationResource.OfferCredit,
		},
		incomingTokenizationRequest.ClientMetadataID,
		tokenizationCompletionCallback(id),
	)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error beginning browser switch flow: [%v]", err))
		if kind, ok := driver.KindOf(err); ok && kind == driver.InvalidState {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = tokenizationService.StoreExternalApprovalDetails(id, journey.NextURL, journey.OrderID, journey.BillingAgreementToken, handle)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error storing external approval details: [%v]", err))
		// the flow cannot be resumed without the stored details, so clear it
		browserSwitchDriver.End()
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	tokenizationResource.Links.Journey = journey.NextURL
	tokenizationResource.Status = service.InProgress.String()

	// response body contains fully decorated REST model
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", tokenizationResource.Links.Journey)
	w.WriteHeader(http.StatusCreated)

	err = json.NewEncoder(w).Encode(tokenizationResource)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error writing response: %v", err))
		return
	}

	log.InfoR(req, "Successful POST request for new tokenization resource", log.Data{"tokenization_id": id, "status": http.StatusCreated})
}

func validateTokenizationCreate(incomingTokenizationRequest models.IncomingTokenizationRequest) error {
	validate := validator.New()
	return validate.Struct(incomingTokenizationRequest)
}

// tokenizationCompletionCallback builds the completion callback registered with
// the driver when a flow begins. It closes the session with the outcome of the
// browser switch.
func tokenizationCompletionCallback(id string) driver.CompletionCallback {
	return func(accountNonce *models.PayPalAccountNonce, err error) {
		status := service.Complete
		if err != nil {
			status = service.Failed
			if kind, ok := driver.KindOf(err); ok && kind == driver.UserCanceled {
				status = service.Cancelled
			}
			log.Error(fmt.Errorf("tokenization flow did not complete: [%v]", err), log.Data{"tokenization_id": id})
		}

		_, closeErr := tokenizationService.CloseTokenizationSession(id, status, accountNonce)
		if closeErr != nil {
			log.Error(fmt.Errorf("error closing tokenization session: [%v]", closeErr), log.Data{"tokenization_id": id})
		}
	}
}

// HandleGetTokenizationSession retrieves the tokenization session from request context
func HandleGetTokenizationSession(w http.ResponseWriter, req *http.Request) {

	// get tokenization resource from context, put there by TokenizationAuthenticationInterceptor
	tokenizationSession, ok := req.Context().Value(helpers.ContextKeyTokenizationSession).(*models.TokenizationResourceRest)

	if !ok {
		log.ErrorR(req, fmt.Errorf("invalid TokenizationResourceRest in request context"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Check if the tokenization session is expired
	isExpired, err := service.IsExpired(*tokenizationSession, &tokenizationService.Config)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error checking tokenization session expiry status: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if isExpired {
		tokenizationSession.Status = service.Expired.String()
	}

	w.Header().Set("Content-Type", "application/json")

	err = json.NewEncoder(w).Encode(tokenizationSession)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error writing response: %v", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.InfoR(req, "Successful GET request for tokenization resource", log.Data{"tokenization_id": path.Base(tokenizationSession.Links.Self)})
}
