package fixtures

import (
	"encoding/json"

	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
)

func GetGatewayTokenizeResponse() *models.IncomingGatewayTokenizeResponse {
	return &models.IncomingGatewayTokenizeResponse{
		Nonce: "fake-paypal-nonce",
		Type:  "PayPalAccount",
		Details: models.GatewayPayPalDetails{
			Email:   "jane.doe@example.com",
			PayerID: "FAKE-PAYER-ID",
			CreditFinancingOffered: json.RawMessage(`{
				"cardAmountImmutable": true,
				"monthlyPayment": {"currency": "USD", "value": "10.00"},
				"term": 12,
				"totalCost": {"currency": "USD", "value": "120.00"},
				"totalInterest": {"currency": "USD", "value": "0.00"}
			}`),
		},
	}
}

func GetTokenizationResourceDB(flowType string) *models.TokenizationResourceDB {
	return &models.TokenizationResourceDB{
		ID:                    "1234567890",
		RedirectURI:           "https://www.companieshouse.gov.uk/redirect",
		State:                 "state",
		ClientMetadataID:      "cmid-1234",
		ExternalOrderID:       "ORDER-123",
		BillingAgreementToken: "BA-456",
		Data: models.TokenizationResourceDataDB{
			FlowType: flowType,
			Intent:   "capture",
			Amount:   "10.00",
			Currency: "GBP",
			Status:   "in-progress",
			Links: models.TokenizationLinksDB{
				Self: "/tokenizations/1234567890",
			},
		},
	}
}
