package service

import (
	"fmt"
	"math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/dao"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/transformers"
	"github.com/shopspring/decimal"
)

// TokenizationService contains the DAO for db access
type TokenizationService struct {
	DAO    dao.DAO
	Config config.Config
}

// TokenizationStatus Enum Type
type TokenizationStatus int

// Enumeration containing all possible tokenization session statuses
const (
	Pending TokenizationStatus = 1 + iota
	InProgress
	Complete
	Cancelled
	Failed
	Expired
)

// String representation of tokenization session statuses
var tokenizationStatuses = [...]string{
	"pending",
	"in-progress",
	"complete",
	"cancelled",
	"failed",
	"expired",
}

func (tokenizationStatus TokenizationStatus) String() string {
	return tokenizationStatuses[tokenizationStatus-1]
}

var amountFormat = regexp.MustCompile(`^\d+(\.\d{2})?$`)

// CreateTokenizationSession creates a tokenization session resource in the DB for
// the incoming request and returns the decorated REST model
func (service *TokenizationService) CreateTokenizationSession(req *http.Request, incoming models.IncomingTokenizationRequest) (*models.TokenizationResourceRest, ResponseType, error) {

	amount, err := normaliseAmount(incoming.Amount, incoming.FlowType)
	if err != nil {
		return nil, InvalidData, fmt.Errorf("invalid amount on incoming request: [%v]", err)
	}

	user := strings.Split(req.Header.Get("Eric-Authorised-User"), ";")
	email := user[0]
	var forename string
	var surname string

	for i := 1; i < len(user); i++ {
		v := strings.Split(user[i], "=")
		if v[0] == " forename" {
			forename = v[1]
		} else if v[0] == " surname" {
			surname = v[1]
		} else {
			log.ErrorR(req, fmt.Errorf("unexpected format in Eric-Authorised-User: %s", user))
		}
	}

	tokenizationResourceRest := models.TokenizationResourceRest{
		FlowType:         incoming.FlowType,
		Intent:           incoming.Intent,
		Amount:           amount,
		Currency:         currencyOrDefault(incoming.Currency),
		ClientMetadataID: incoming.ClientMetadataID,
		OfferCredit:      incoming.OfferCredit,
		CreatedAt:        time.Now().Truncate(time.Millisecond),
		CreatedBy: models.CreatedByRest{
			ID:       req.Header.Get("Eric-Identity"),
			Email:    email,
			Forename: forename,
			Surname:  surname,
		},
		Reference: incoming.Reference,
		Status:    Pending.String(),
	}

	id := generateID()
	self := fmt.Sprintf("/tokenizations/%s", id)
	tokenizationResourceRest.Links = models.TokenizationLinksRest{
		Self:     self,
		Resource: fmt.Sprintf("%s%s", service.Config.TokenizationAPIURL, self),
	}

	tokenizationResourceDB := transformers.TokenizationTransformer{}.TransformToDB(tokenizationResourceRest)
	tokenizationResourceDB.ID = id
	tokenizationResourceDB.RedirectURI = incoming.RedirectURI
	tokenizationResourceDB.State = incoming.State
	tokenizationResourceDB.ClientMetadataID = incoming.ClientMetadataID

	err = service.DAO.CreateTokenizationResource(&tokenizationResourceDB)
	if err != nil {
		return nil, Error, fmt.Errorf("error writing to MongoDB: %v", err)
	}

	return &tokenizationResourceRest, Success, nil
}

// GetTokenizationSession retrieves the tokenization session with the given id
// from the DB. The second value returned is the full DB resource, needed by
// callers that require access to metadata outside the data block.
func (service *TokenizationService) GetTokenizationSession(req *http.Request, id string) (*models.TokenizationResourceRest, *models.TokenizationResourceDB, error) {
	tokenizationResource, err := service.DAO.GetTokenizationResource(id)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting tokenization resource from db: [%v]", err)
	}
	if tokenizationResource == nil {
		log.TraceR(req, "tokenization session not found", log.Data{"tokenization_id": id})
		return nil, nil, nil
	}

	tokenizationResourceRest := transformers.TokenizationTransformer{}.TransformToRest(*tokenizationResource)

	return &tokenizationResourceRest, tokenizationResource, nil
}

// StoreExternalApprovalDetails saves the external provider references for a
// started flow against the session
func (service *TokenizationService) StoreExternalApprovalDetails(id, approvalURI, orderID, billingAgreementToken, browserSwitchHandle string) error {
	tokenizationResource, err := service.DAO.GetTokenizationResource(id)
	if err != nil {
		return fmt.Errorf("error getting tokenization resource: [%v]", err)
	}
	if tokenizationResource == nil {
		return fmt.Errorf("tokenization session not found. id: %s", id)
	}

	tokenizationResource.ExternalApprovalURI = approvalURI
	tokenizationResource.ExternalOrderID = orderID
	tokenizationResource.BillingAgreementToken = billingAgreementToken
	tokenizationResource.BrowserSwitchHandle = browserSwitchHandle
	tokenizationResource.Data.Status = InProgress.String()

	err = service.DAO.PatchTokenizationResource(id, tokenizationResource)
	if err != nil {
		return fmt.Errorf("error storing external approval details: [%v]", err)
	}
	return nil
}

// CloseTokenizationSession sets the final status of a session, stores the
// tokenized account if the flow completed successfully, and records the
// completion time
func (service *TokenizationService) CloseTokenizationSession(id string, status TokenizationStatus, accountNonce *models.PayPalAccountNonce) (ResponseType, error) {
	tokenizationResource, err := service.DAO.GetTokenizationResource(id)
	if err != nil {
		return Error, fmt.Errorf("error getting tokenization resource: [%v]", err)
	}
	if tokenizationResource == nil {
		return NotFound, fmt.Errorf("tokenization session not found. id: %s", id)
	}

	tokenizationResource.Data.Status = status.String()
	// To match the format time is saved to mongo, e.g. "2018-11-22T08:39:16.782Z", truncate the time
	tokenizationResource.Data.CompletedAt = time.Now().Truncate(time.Millisecond)
	tokenizationResource.Data.AccountNonce = transformers.TokenizationTransformer{}.TransformNonceToDB(accountNonce)

	err = service.DAO.PatchTokenizationResource(id, tokenizationResource)
	if err != nil {
		return Error, fmt.Errorf("error closing tokenization session: [%v]", err)
	}

	log.Info("Successfully closed tokenization session", log.Data{"tokenization_id": id, "status": status.String()})

	return Success, nil
}

// IsExpired returns whether a tokenization session has passed the configured
// expiry window. Completed sessions never expire.
func IsExpired(tokenizationSession models.TokenizationResourceRest, cfg *config.Config) (bool, error) {
	status := tokenizationSession.Status
	if status != Pending.String() && status != InProgress.String() {
		return false, nil
	}

	expiryTimeInMinutes, err := strconv.Atoi(cfg.ExpiryTimeInMinutes)
	if err != nil {
		return false, fmt.Errorf("error converting expiry time in minutes to int: [%v]", err)
	}

	expiryTime := tokenizationSession.CreatedAt.Add(time.Minute * time.Duration(expiryTimeInMinutes))

	return time.Now().After(expiryTime), nil
}

// normaliseAmount validates the amount format for a flow type and returns it
// with exactly two decimal places. Vault flows carry no amount.
func normaliseAmount(amount string, flowType string) (string, error) {
	if flowType == "vault" && amount == "" {
		return "", nil
	}

	if !amountFormat.MatchString(amount) {
		return "", fmt.Errorf("amount [%s] format incorrect", amount)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", err
	}
	return d.StringFixed(2), nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "GBP"
	}
	return currency
}

// Generates a string of 20 numbers made up of 7 random numbers, followed by 13 numbers derived from the current time
func generateID() (i string) {
	rand.Seed(time.Now().UTC().UnixNano())
	ranNumber := fmt.Sprintf("%07d", rand.Intn(9999999))
	millis := strconv.FormatInt(time.Now().UTC().UnixNano()/int64(time.Millisecond), 10)
	return ranNumber + millis
}
