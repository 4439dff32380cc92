package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/driver"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/service"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/utils"
	"github.com/gorilla/mux"
)

// handleTokenizationMessage allows us to mock the call to produceTokenizationMessage for unit tests
var handleTokenizationMessage = produceTokenizationMessage

// HandlePayPalCallback handles the callback from PayPal, dispatches the browser
// return to the active flow and redirects the user
func HandlePayPalCallback(w http.ResponseWriter, req *http.Request) {
	// Get the tokenization session
	vars := mux.Vars(req)
	id := vars["tokenization_id"]
	if id == "" {
		log.ErrorR(req, fmt.Errorf("tokenization id not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// The tokenization session must be retrieved directly to enable access to metadata outside the data block
	tokenizationSession, tokenizationResource, err := tokenizationService.GetTokenizationSession(req, id)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting tokenization session: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if tokenizationSession == nil {
		log.ErrorR(req, fmt.Errorf("tokenization session not found. id: %s", id))
		w.WriteHeader(http.StatusNotFound)
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
		// Set the status of the session and drop any flow still held for it
		if flowBelongsToSession(tokenizationResource) {
			browserSwitchDriver.End()
		}
		responseType, err := tokenizationService.CloseTokenizationSession(id, service.Expired, nil)
		if err != nil {
			log.ErrorR(req, fmt.Errorf("error setting status of expired tokenization session: [%v]", err), log.Data{"service_response_type": responseType.String()})
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		log.ErrorR(req, fmt.Errorf("tokenization session has expired"))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("tokenization session has expired"), http.StatusForbidden)
		return
	}

	// Ensure flow type matches endpoint
	flowType := strings.ToLower(tokenizationSession.FlowType)
	if flowType != driver.Checkout.String() && flowType != driver.Vault.String() {
		log.ErrorR(req, fmt.Errorf("flow type, [%s], for resource [%s] not recognised", tokenizationSession.FlowType, id))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("flow type not recognised"), http.StatusPreconditionFailed)
		return
	}

	// Only dispatch a return that belongs to the flow the driver opened for
	// this session. A stale or mismatched handle means the flow was superseded,
	// so the user is redirected with the stored session status untouched.
	if flowBelongsToSession(tokenizationResource) {
		event := buildReturnEvent(req, flowType, tokenizationResource)

		// Dispatch the return to the active flow. The registered completion
		// callback closes the session with the outcome.
		browserSwitchDriver.HandleReturn(event)
	} else {
		log.InfoR(req, "no active browser switch flow for tokenization session", log.Data{"tokenization_id": id})
	}

	// Re-fetch the session for the final status set by the completion callback
	tokenizationSession, _, err = tokenizationService.GetTokenizationSession(req, id)
	if err != nil || tokenizationSession == nil {
		log.ErrorR(req, fmt.Errorf("error getting closed tokenization session: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Prepare parameters needed for redirecting
	params := models.RedirectParams{
		State:  tokenizationResource.State,
		Ref:    tokenizationSession.Reference,
		Status: tokenizationSession.Status,
	}

	log.InfoR(req, "Successfully handled PayPal callback", log.Data{"tokenization_id": id, "status": tokenizationSession.Status})

	err = handleTokenizationMessage(id)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error producing tokenization kafka message: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	redirectUser(w, req, tokenizationResource.RedirectURI, params)
}

// flowBelongsToSession reports whether the driver's active flow was opened for
// the given tokenization session, by matching the browser switch handle stored
// when the flow began
func flowBelongsToSession(tokenizationResource *models.TokenizationResourceDB) bool {
	handle := browserSwitchDriver.Handle()
	return handle != "" && handle == tokenizationResource.BrowserSwitchHandle
}

// buildReturnEvent resolves the callback request into the return event to
// dispatch. Checkout flows have their order confirmed and captured with PayPal
// before the return is treated as a success; vault flows have their billing
// agreement executed.
func buildReturnEvent(req *http.Request, flowType string, tokenizationResource *models.TokenizationResourceDB) driver.ReturnEvent {
	query := req.URL.Query()

	if query.Get("cancelled") == "true" {
		return driver.CancelReturn()
	}

	if flowType == driver.Vault.String() {
		_, err := payPalService.ExecuteBillingAgreement(tokenizationResource.BillingAgreementToken)
		if err != nil {
			return driver.ErrorReturn(err)
		}
		return driver.SuccessReturn(returnURL(req, "success"))
	}

	statusResponse, responseType, err := payPalService.CheckPaymentProviderStatus(tokenizationResource)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting payment status from paypal: [%v]", err), log.Data{"service_response_type": responseType.String()})
		return driver.ErrorReturn(err)
	}

	if strings.ToUpper(statusResponse.Status) != "APPROVED" {
		return driver.ErrorReturn(fmt.Errorf("paypal order status not approved, status is: [%s]", statusResponse.Status))
	}

	_, err = payPalService.CapturePayment(tokenizationResource.ExternalOrderID)
	if err != nil {
		return driver.ErrorReturn(fmt.Errorf("error capturing paypal order: [%v]", err))
	}

	return driver.SuccessReturn(returnURL(req, "success"))
}

// returnURL rebuilds the callback request as a return URL in the app scheme,
// preserving the token, PayerID and ba_token query params PayPal appends
func returnURL(req *http.Request, action string) *url.URL {
	return &url.URL{
		Scheme:   browserSwitchDriver.ReturnURLScheme,
		Host:     "onetouch",
		Path:     "/v1/" + action,
		RawQuery: req.URL.RawQuery,
	}
}
