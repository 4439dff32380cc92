package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
	"github.com/plutov/paypal/v4"
)

var client *paypal.Client

// GetPayPalClient returns a PayPal client authenticated against the configured
// environment
func GetPayPalClient(cfg config.Config) (*paypal.Client, error) {
	if client != nil {
		return client, nil
	}

	paypalAPIBase := getPayPalAPIBase(cfg.PaypalEnv)
	if paypalAPIBase == "" {
		return nil, fmt.Errorf("invalid paypal env in config: %s", cfg.PaypalEnv)
	}

	c, err := paypal.NewClient(cfg.PaypalClientID, cfg.PaypalSecret, paypalAPIBase)
	if err != nil {
		return nil, fmt.Errorf("error creating paypal client: [%v]", err)
	}
	_, err = c.GetAccessToken(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting access token: [%v]", err)
	}

	client = c
	return client, nil
}

// PayPalSDK is an interface for all the PayPal client methods that will be used
// in this service
type PayPalSDK interface {
	GetAccessToken(ctx context.Context) (*paypal.TokenResponse, error)
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, payer *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string, captureOrderRequest paypal.CaptureOrderRequest) (*paypal.CaptureOrderResponse, error)
	CreateBillingAgreementToken(ctx context.Context, description *string, shippingAddress *paypal.ShippingAddress, payer *paypal.Payer, plan *paypal.BillingPlan) (*paypal.BillingAgreementToken, error)
	CreateBillingAgreementFromToken(ctx context.Context, tokenID string) (*paypal.BillingAgreement, error)
}

// PayPalService handles the specific functionality of integrating PayPal into tokenization sessions
type PayPalService struct {
	Client              PayPalSDK
	TokenizationService TokenizationService
}

// ApprovalJourney holds the external references for a flow whose approval URL
// has been created with PayPal
type ApprovalJourney struct {
	NextURL               string
	ExternalStatusURI     string
	OrderID               string
	BillingAgreementToken string
}

// CreateApprovalJourney creates the PayPal resource backing a flow and returns
// the approval URL the user must be switched to. Checkout flows create an
// order; vault flows create a billing agreement token.
func (pp *PayPalService) CreateApprovalJourney(req *http.Request, id string, tokenization *models.TokenizationResourceRest) (*ApprovalJourney, ResponseType, error) {

	log.TraceR(req, "performing PayPal request", log.Data{"tokenization_id": id, "flow_type": tokenization.FlowType})

	if tokenization.FlowType == "vault" {
		return pp.createBillingAgreementJourney(id, tokenization)
	}
	return pp.createOrderJourney(id, tokenization)
}

func (pp *PayPalService) createOrderJourney(id string, tokenization *models.TokenizationResourceRest) (*ApprovalJourney, ResponseType, error) {

	order, err := pp.Client.CreateOrder(
		context.Background(),
		orderIntent(tokenization.Intent),
		[]paypal.PurchaseUnitRequest{
			{
				ReferenceID: id,
				Amount: &paypal.PurchaseUnitAmount{
					Value:    tokenization.Amount,
					Currency: tokenization.Currency,
				},
			},
		},
		nil,
		&paypal.ApplicationContext{
			ReturnURL: pp.callbackURL(id),
			CancelURL: pp.callbackURL(id) + "?cancelled=true",
		},
	)
	if err != nil {
		return nil, Error, fmt.Errorf("error creating order: [%v]", err)
	}

	if order.Status != paypal.OrderStatusCreated {
		log.Debug(fmt.Sprintf("paypal order response status: %s", order.Status))
		return nil, Error, fmt.Errorf("failed to correctly create paypal order - status is not CREATED")
	}

	journey := &ApprovalJourney{OrderID: order.ID}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			journey.NextURL = link.Href
		}
		if link.Rel == "self" {
			journey.ExternalStatusURI = link.Href
		}
	}

	if journey.NextURL == "" {
		return nil, Error, fmt.Errorf("no approve link returned from PayPal for order [%s]", order.ID)
	}

	return journey, Success, nil
}

func (pp *PayPalService) createBillingAgreementJourney(id string, tokenization *models.TokenizationResourceRest) (*ApprovalJourney, ResponseType, error) {

	description := fmt.Sprintf("Companies House billing agreement %s", tokenization.Reference)

	// The return and cancel URLs for a billing agreement are carried in the
	// plan's merchant preferences rather than an application context
	token, err := pp.Client.CreateBillingAgreementToken(
		context.Background(),
		&description,
		nil,
		&paypal.Payer{PaymentMethod: "paypal"},
		&paypal.BillingPlan{
			Type: "MERCHANT_INITIATED_BILLING",
			MerchantPreferences: &paypal.MerchantPreferences{
				ReturnURL: pp.callbackURL(id),
				CancelURL: pp.callbackURL(id) + "?cancelled=true",
			},
		},
	)
	if err != nil {
		return nil, Error, fmt.Errorf("error creating billing agreement token: [%v]", err)
	}

	journey := &ApprovalJourney{BillingAgreementToken: token.TokenID}
	for _, link := range token.Links {
		if link.Rel == "approval_url" {
			journey.NextURL = link.Href
		}
		if link.Rel == "self" {
			journey.ExternalStatusURI = link.Href
		}
	}

	if journey.NextURL == "" {
		return nil, Error, fmt.Errorf("no approval_url link returned from PayPal for billing agreement token")
	}

	return journey, Success, nil
}

// CheckPaymentProviderStatus checks the status of the order backing a checkout
// flow with PayPal
func (pp *PayPalService) CheckPaymentProviderStatus(tokenizationResource *models.TokenizationResourceDB) (*models.StatusResponse, ResponseType, error) {

	res, err := pp.Client.GetOrder(
		context.Background(),
		tokenizationResource.ExternalOrderID,
	)
	if err != nil {
		return nil, Error, fmt.Errorf("error checking payment status with PayPal: [%w]", err)
	}

	return &models.StatusResponse{Status: res.Status}, Success, nil
}

// CapturePayment captures the order backing a checkout flow in PayPal
func (pp *PayPalService) CapturePayment(orderID string) (*paypal.CaptureOrderResponse, error) {
	res, err := pp.Client.CaptureOrder(
		context.Background(),
		orderID,
		paypal.CaptureOrderRequest{},
	)
	return res, err
}

// ExecuteBillingAgreement exchanges an approved billing agreement token for a
// billing agreement in PayPal
func (pp *PayPalService) ExecuteBillingAgreement(tokenID string) (*paypal.BillingAgreement, error) {
	agreement, err := pp.Client.CreateBillingAgreementFromToken(context.Background(), tokenID)
	if err != nil {
		return nil, fmt.Errorf("error executing billing agreement: [%v]", err)
	}
	return agreement, nil
}

func (pp *PayPalService) callbackURL(id string) string {
	return fmt.Sprintf("%s/callback/tokenizations/paypal/%s",
		pp.TokenizationService.Config.TokenizationAPIURL, id)
}

func orderIntent(intent string) string {
	if intent == "authorize" {
		return paypal.OrderIntentAuthorize
	}
	return paypal.OrderIntentCapture
}

func getPayPalAPIBase(env string) string {
	switch env {
	case "live":
		return paypal.APIBaseLive
	case "test":
		return paypal.APIBaseSandBox
	default:
		return ""
	}
}
