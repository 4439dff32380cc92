package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/dao"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/driver"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/fixtures"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/helpers"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/service"
	"github.com/golang/mock/gomock"
	"github.com/plutov/paypal/v4"
	. "github.com/smartystreets/goconvey/convey"
)

func createMockTokenizationService(mockDAO *dao.MockDAO, cfg *config.Config) *service.TokenizationService {
	return &service.TokenizationService{
		DAO:    mockDAO,
		Config: *cfg,
	}
}

// setUpTestServices wires the package level services and driver against mocks
func setUpTestServices(mockDAO *dao.MockDAO, mockSDK *service.MockPayPalSDK, cfg *config.Config) {
	tokenizationService = createMockTokenizationService(mockDAO, cfg)
	payPalService = &service.PayPalService{
		Client:              mockSDK,
		TokenizationService: *tokenizationService,
	}
	browserSwitchDriver = driver.New(browserPresenter{}, &service.GatewayService{Config: *cfg}, cfg.ReturnURLScheme, cfg.DisableAuthSession)
}

// beginTestFlow puts the driver into an active flow registered against the
// given session id, returning the browser switch handle of the opened surface
func beginTestFlow(flow driver.FlowType, id string) string {
	approvalURL, _ := url.Parse("https://www.paypal.com/checkoutnow?token=EC-123")
	handle, _ := browserSwitchDriver.Begin(flow, &driver.Request{
		Intent:      "capture",
		ApprovalURL: approvalURL,
	}, "cmid-1234", tokenizationCompletionCallback(id))
	return handle
}

func createTokenizationRequest(body []byte) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest("POST", "/tokenizations", nil)
	} else {
		req = httptest.NewRequest("POST", "/tokenizations", bytes.NewBuffer(body))
	}
	req.Header.Set("Eric-Identity", "identity")
	req.Header.Set("Eric-Authorised-User", "test@companieshouse.gov.uk; forename=f; surname=s")
	return req
}

var createdOrder = paypal.Order{
	ID:     "ORDER-123",
	Status: paypal.OrderStatusCreated,
	Links: []paypal.Link{
		{Href: "https://www.paypal.com/checkoutnow?token=EC-123", Rel: "approve"},
		{Href: "https://api.paypal.com/v2/checkout/orders/ORDER-123", Rel: "self"},
	},
}

func TestUnitHandleCreateTokenizationSession(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Request body empty", t, func() {
		setUpTestServices(dao.NewMockDAO(mockCtrl), service.NewMockPayPalSDK(mockCtrl), cfg)

		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest(nil))
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Request body invalid", t, func() {
		setUpTestServices(dao.NewMockDAO(mockCtrl), service.NewMockPayPalSDK(mockCtrl), cfg)

		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest([]byte("not json")))
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Request fails validation with no flow type", t, func() {
		setUpTestServices(dao.NewMockDAO(mockCtrl), service.NewMockPayPalSDK(mockCtrl), cfg)

		reqBody := []byte(`{"amount":"10","redirect_uri":"https://example.com/return"}`)
		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest(reqBody))
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Invalid amount on incoming request", t, func() {
		setUpTestServices(dao.NewMockDAO(mockCtrl), service.NewMockPayPalSDK(mockCtrl), cfg)

		reqBody := []byte(`{"flow_type":"checkout","amount":"ten","redirect_uri":"https://example.com/return"}`)
		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest(reqBody))
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Error creating tokenization resource in DB", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		setUpTestServices(mock, service.NewMockPayPalSDK(mockCtrl), cfg)
		mock.EXPECT().CreateTokenizationResource(gomock.Any()).Return(fmt.Errorf("error"))

		reqBody := []byte(`{"flow_type":"checkout","amount":"10","redirect_uri":"https://example.com/return"}`)
		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest(reqBody))
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
	})

	Convey("Error creating approval journey with PayPal", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		mockSDK := service.NewMockPayPalSDK(mockCtrl)
		setUpTestServices(mock, mockSDK, cfg)
		mock.EXPECT().CreateTokenizationResource(gomock.Any()).Return(nil)
		mockSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("error"))

		reqBody := []byte(`{"flow_type":"checkout","amount":"10","redirect_uri":"https://example.com/return"}`)
		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest(reqBody))
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
	})

	Convey("Flow already active", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		mockSDK := service.NewMockPayPalSDK(mockCtrl)
		setUpTestServices(mock, mockSDK, cfg)
		mock.EXPECT().CreateTokenizationResource(gomock.Any()).Return(nil)
		mockSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&createdOrder, nil)

		beginTestFlow(driver.Checkout, "1111111111")

		reqBody := []byte(`{"flow_type":"checkout","amount":"10","redirect_uri":"https://example.com/return"}`)
		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest(reqBody))
		So(w.Code, ShouldEqual, http.StatusConflict)
	})

	Convey("Error storing external approval details clears the flow", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		mockSDK := service.NewMockPayPalSDK(mockCtrl)
		setUpTestServices(mock, mockSDK, cfg)
		mock.EXPECT().CreateTokenizationResource(gomock.Any()).Return(nil)
		mockSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&createdOrder, nil)
		mock.EXPECT().GetTokenizationResource(gomock.Any()).Return(nil, fmt.Errorf("error"))

		reqBody := []byte(`{"flow_type":"checkout","amount":"10","redirect_uri":"https://example.com/return"}`)
		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest(reqBody))
		So(w.Code, ShouldEqual, http.StatusInternalServerError)

		// a new flow must be able to begin after the failure
		approvalURL, _ := url.Parse("https://www.paypal.com/checkoutnow?token=EC-123")
		_, err := browserSwitchDriver.Begin(driver.Checkout, &driver.Request{ApprovalURL: approvalURL}, "", tokenizationCompletionCallback("2222222222"))
		So(err, ShouldBeNil)
	})

	Convey("Successfully create a checkout tokenization session", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		mockSDK := service.NewMockPayPalSDK(mockCtrl)
		setUpTestServices(mock, mockSDK, cfg)
		mock.EXPECT().CreateTokenizationResource(gomock.Any()).Return(nil)
		mockSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&createdOrder, nil)
		mock.EXPECT().GetTokenizationResource(gomock.Any()).Return(fixtures.GetTokenizationResourceDB("checkout"), nil)
		mock.EXPECT().PatchTokenizationResource(gomock.Any(), gomock.Any()).Return(nil)

		reqBody := []byte(`{"flow_type":"checkout","intent":"capture","amount":"10","redirect_uri":"https://example.com/return","state":"abc123"}`)
		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest(reqBody))

		So(w.Code, ShouldEqual, http.StatusCreated)
		So(w.Header().Get("Location"), ShouldEqual, "https://www.paypal.com/checkoutnow?token=EC-123")

		responseBody := models.TokenizationResourceRest{}
		err := json.NewDecoder(w.Body).Decode(&responseBody)
		So(err, ShouldBeNil)
		So(responseBody.Status, ShouldEqual, service.InProgress.String())
		So(responseBody.Links.Journey, ShouldEqual, "https://www.paypal.com/checkoutnow?token=EC-123")
		So(responseBody.Amount, ShouldEqual, "10.00")
		So(responseBody.CreatedBy.Email, ShouldEqual, "test@companieshouse.gov.uk")
	})

	Convey("Successfully create a vault tokenization session", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		mockSDK := service.NewMockPayPalSDK(mockCtrl)
		setUpTestServices(mock, mockSDK, cfg)
		mock.EXPECT().CreateTokenizationResource(gomock.Any()).Return(nil)
		mockSDK.EXPECT().CreateBillingAgreementToken(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&paypal.BillingAgreementToken{
			TokenID: "BA-456",
			Links: []paypal.Link{
				{Href: "https://www.paypal.com/agreements/approve?ba_token=BA-456", Rel: "approval_url"},
			},
		}, nil)
		mock.EXPECT().GetTokenizationResource(gomock.Any()).Return(fixtures.GetTokenizationResourceDB("vault"), nil)
		mock.EXPECT().PatchTokenizationResource(gomock.Any(), gomock.Any()).Return(nil)

		reqBody := []byte(`{"flow_type":"vault","redirect_uri":"https://example.com/return"}`)
		w := httptest.NewRecorder()
		HandleCreateTokenizationSession(w, createTokenizationRequest(reqBody))

		So(w.Code, ShouldEqual, http.StatusCreated)
		So(w.Header().Get("Location"), ShouldEqual, "https://www.paypal.com/agreements/approve?ba_token=BA-456")
	})
}

func TestUnitHandleGetTokenizationSession(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()
	cfg.ExpiryTimeInMinutes = "90"

	Convey("Invalid TokenizationResourceRest in request context", t, func() {
		setUpTestServices(dao.NewMockDAO(mockCtrl), service.NewMockPayPalSDK(mockCtrl), cfg)

		req := httptest.NewRequest("GET", "/tokenizations/1234567890", nil)
		w := httptest.NewRecorder()
		HandleGetTokenizationSession(w, req)
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
	})

	Convey("Successfully get a tokenization session", t, func() {
		setUpTestServices(dao.NewMockDAO(mockCtrl), service.NewMockPayPalSDK(mockCtrl), cfg)

		session := &models.TokenizationResourceRest{
			FlowType:  "checkout",
			Status:    service.InProgress.String(),
			CreatedAt: time.Now(),
			Links:     models.TokenizationLinksRest{Self: "/tokenizations/1234567890"},
		}
		req := httptest.NewRequest("GET", "/tokenizations/1234567890", nil)
		req = req.WithContext(context.WithValue(req.Context(), helpers.ContextKeyTokenizationSession, session))
		w := httptest.NewRecorder()
		HandleGetTokenizationSession(w, req)

		So(w.Code, ShouldEqual, http.StatusOK)
		responseBody := models.TokenizationResourceRest{}
		err := json.NewDecoder(w.Body).Decode(&responseBody)
		So(err, ShouldBeNil)
		So(responseBody.Status, ShouldEqual, service.InProgress.String())
	})

	Convey("Expired tokenization session is reported as expired", t, func() {
		setUpTestServices(dao.NewMockDAO(mockCtrl), service.NewMockPayPalSDK(mockCtrl), cfg)

		session := &models.TokenizationResourceRest{
			FlowType:  "checkout",
			Status:    service.InProgress.String(),
			CreatedAt: time.Now().Add(time.Hour * -2),
			Links:     models.TokenizationLinksRest{Self: "/tokenizations/1234567890"},
		}
		req := httptest.NewRequest("GET", "/tokenizations/1234567890", nil)
		req = req.WithContext(context.WithValue(req.Context(), helpers.ContextKeyTokenizationSession, session))
		w := httptest.NewRecorder()
		HandleGetTokenizationSession(w, req)

		So(w.Code, ShouldEqual, http.StatusOK)
		responseBody := models.TokenizationResourceRest{}
		err := json.NewDecoder(w.Body).Decode(&responseBody)
		So(err, ShouldBeNil)
		So(responseBody.Status, ShouldEqual, service.Expired.String())
	})
}
