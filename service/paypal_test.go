package service

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/plutov/paypal/v4"

	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/dao"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/fixtures"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
)

func createMockTokenizationService(mockDAO *dao.MockDAO, cfg *config.Config) TokenizationService {
	return TokenizationService{
		DAO:    mockDAO,
		Config: *cfg,
	}
}

func CreateMockPayPalService(sdk PayPalSDK, service *TokenizationService) PayPalService {
	return PayPalService{
		Client:              sdk,
		TokenizationService: *service,
	}
}

func TestUnitCreateApprovalJourney(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()
	cfg.TokenizationAPIURL = "https://api-test-url.companieshouse.gov.uk"
	mockTokenizationService := createMockTokenizationService(dao.NewMockDAO(mockCtrl), cfg)
	mockPayPalSDK := NewMockPayPalSDK(mockCtrl)
	mockPayPalService := CreateMockPayPalService(mockPayPalSDK, &mockTokenizationService)

	req := httptest.NewRequest("POST", "/tokenizations", nil)

	Convey("Error when creating an order resource in PayPal", t, func() {
		tokenizationSession := models.TokenizationResourceRest{
			FlowType: "checkout",
			Amount:   "3.00",
			Currency: "GBP",
			Status:   Pending.String(),
		}

		mockPayPalSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("error"))

		journey, resType, err := mockPayPalService.CreateApprovalJourney(req, "123", &tokenizationSession)

		So(journey, ShouldBeNil)
		So(resType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error creating order: [error]")
	})

	Convey("Order status is not created - unsuccessful", t, func() {
		tokenizationSession := models.TokenizationResourceRest{
			FlowType: "checkout",
			Amount:   "3.00",
			Currency: "GBP",
			Status:   Pending.String(),
		}

		order := paypal.Order{
			ID:     "123",
			Status: paypal.OrderStatusVoided,
		}

		mockPayPalSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&order, nil)

		journey, resType, err := mockPayPalService.CreateApprovalJourney(req, "123", &tokenizationSession)

		So(journey, ShouldBeNil)
		So(resType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "failed to correctly create paypal order")
	})

	Convey("Successfully create paypal order for checkout flow", t, func() {
		tokenizationSession := models.TokenizationResourceRest{
			FlowType: "checkout",
			Intent:   "capture",
			Amount:   "3.00",
			Currency: "GBP",
			Status:   Pending.String(),
		}

		order := paypal.Order{
			ID:     "ORDER-123",
			Status: paypal.OrderStatusCreated,
			Links: []paypal.Link{
				{
					Href:        "https://www.sandbox.paypal.com/checkoutnow?token=EC-123",
					Rel:         "approve",
					Method:      "GET",
					Description: "Approve an order",
				},
				{
					Href:   "https://api.sandbox.paypal.com/v2/checkout/orders/ORDER-123",
					Rel:    "self",
					Method: "GET",
				},
			},
		}

		mockPayPalSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&order, nil)

		journey, resType, err := mockPayPalService.CreateApprovalJourney(req, "123", &tokenizationSession)

		So(err, ShouldBeNil)
		So(resType, ShouldEqual, Success)
		So(journey.NextURL, ShouldEqual, "https://www.sandbox.paypal.com/checkoutnow?token=EC-123")
		So(journey.ExternalStatusURI, ShouldEqual, "https://api.sandbox.paypal.com/v2/checkout/orders/ORDER-123")
		So(journey.OrderID, ShouldEqual, "ORDER-123")
	})

	Convey("Error when creating a billing agreement token in PayPal", t, func() {
		tokenizationSession := models.TokenizationResourceRest{
			FlowType: "vault",
			Status:   Pending.String(),
		}

		mockPayPalSDK.EXPECT().CreateBillingAgreementToken(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("error"))

		journey, resType, err := mockPayPalService.CreateApprovalJourney(req, "123", &tokenizationSession)

		So(journey, ShouldBeNil)
		So(resType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error creating billing agreement token: [error]")
	})

	Convey("Successfully create billing agreement token for vault flow", t, func() {
		tokenizationSession := models.TokenizationResourceRest{
			FlowType:  "vault",
			Reference: "ref",
			Status:    Pending.String(),
		}

		token := paypal.BillingAgreementToken{
			TokenID: "BA-456",
			Links: []paypal.Link{
				{
					Href: "https://www.sandbox.paypal.com/agreements/approve?ba_token=BA-456",
					Rel:  "approval_url",
				},
			},
		}

		var plan *paypal.BillingPlan
		mockPayPalSDK.EXPECT().CreateBillingAgreementToken(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *string, _ *paypal.ShippingAddress, _ *paypal.Payer, p *paypal.BillingPlan) (*paypal.BillingAgreementToken, error) {
				plan = p
				return &token, nil
			})

		journey, resType, err := mockPayPalService.CreateApprovalJourney(req, "123", &tokenizationSession)

		So(err, ShouldBeNil)
		So(resType, ShouldEqual, Success)
		So(journey.NextURL, ShouldEqual, "https://www.sandbox.paypal.com/agreements/approve?ba_token=BA-456")
		So(journey.BillingAgreementToken, ShouldEqual, "BA-456")

		// the plan's merchant preferences must carry the callback return URLs
		So(plan, ShouldNotBeNil)
		So(plan.MerchantPreferences, ShouldNotBeNil)
		So(plan.MerchantPreferences.ReturnURL, ShouldEqual, "https://api-test-url.companieshouse.gov.uk/callback/tokenizations/paypal/123")
		So(plan.MerchantPreferences.CancelURL, ShouldEqual, "https://api-test-url.companieshouse.gov.uk/callback/tokenizations/paypal/123?cancelled=true")
	})
}

func TestUnitCheckPaymentProviderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()
	mockTokenizationService := createMockTokenizationService(dao.NewMockDAO(mockCtrl), cfg)
	mockPayPalSDK := NewMockPayPalSDK(mockCtrl)
	mockPayPalService := CreateMockPayPalService(mockPayPalSDK, &mockTokenizationService)

	Convey("Error checking order status with PayPal", t, func() {
		mockPayPalSDK.EXPECT().GetOrder(gomock.Any(), "ORDER-123").Return(nil, fmt.Errorf("error"))

		statusResponse, resType, err := mockPayPalService.CheckPaymentProviderStatus(fixtures.GetTokenizationResourceDB("checkout"))

		So(statusResponse, ShouldBeNil)
		So(resType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error checking payment status with PayPal")
	})

	Convey("Successfully check order status with PayPal", t, func() {
		order := paypal.Order{
			ID:     "ORDER-123",
			Status: paypal.OrderStatusApproved,
		}

		mockPayPalSDK.EXPECT().GetOrder(gomock.Any(), "ORDER-123").Return(&order, nil)

		statusResponse, resType, err := mockPayPalService.CheckPaymentProviderStatus(fixtures.GetTokenizationResourceDB("checkout"))

		So(err, ShouldBeNil)
		So(resType, ShouldEqual, Success)
		So(statusResponse.Status, ShouldEqual, paypal.OrderStatusApproved)
	})
}

func TestUnitCapturePayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()
	mockTokenizationService := createMockTokenizationService(dao.NewMockDAO(mockCtrl), cfg)
	mockPayPalSDK := NewMockPayPalSDK(mockCtrl)
	mockPayPalService := CreateMockPayPalService(mockPayPalSDK, &mockTokenizationService)

	Convey("Successfully capture a payment", t, func() {
		response := paypal.CaptureOrderResponse{
			ID: "ORDER-123",
		}

		mockPayPalSDK.EXPECT().CaptureOrder(gomock.Any(), "ORDER-123", gomock.Any()).Return(&response, nil)

		res, err := mockPayPalService.CapturePayment("ORDER-123")

		So(err, ShouldBeNil)
		So(res.ID, ShouldEqual, "ORDER-123")
	})
}

func TestUnitExecuteBillingAgreement(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()
	mockTokenizationService := createMockTokenizationService(dao.NewMockDAO(mockCtrl), cfg)
	mockPayPalSDK := NewMockPayPalSDK(mockCtrl)
	mockPayPalService := CreateMockPayPalService(mockPayPalSDK, &mockTokenizationService)

	Convey("Error executing a billing agreement", t, func() {
		mockPayPalSDK.EXPECT().CreateBillingAgreementFromToken(gomock.Any(), "BA-456").Return(nil, fmt.Errorf("error"))

		agreement, err := mockPayPalService.ExecuteBillingAgreement("BA-456")

		So(agreement, ShouldBeNil)
		So(err.Error(), ShouldContainSubstring, "error executing billing agreement: [error]")
	})

	Convey("Successfully execute a billing agreement", t, func() {
		mockPayPalSDK.EXPECT().CreateBillingAgreementFromToken(gomock.Any(), "BA-456").Return(&paypal.BillingAgreement{ID: "AGREEMENT-1"}, nil)

		agreement, err := mockPayPalService.ExecuteBillingAgreement("BA-456")

		So(err, ShouldBeNil)
		So(agreement.ID, ShouldEqual, "AGREEMENT-1")
	})
}

func TestUnitGetPayPalAPIBase(t *testing.T) {
	Convey("Get PayPal API base", t, func() {
		So(getPayPalAPIBase("live"), ShouldEqual, paypal.APIBaseLive)
		So(getPayPalAPIBase("test"), ShouldEqual, paypal.APIBaseSandBox)
		So(getPayPalAPIBase("other"), ShouldBeEmpty)
	})
}
