package models

import "encoding/json"

// OutgoingGatewayTokenizeRequest is the request sent to the gateway to exchange
// an approved browser switch result for a payment method nonce
type OutgoingGatewayTokenizeRequest struct {
	PayPalAccount    GatewayPayPalAccount `json:"paypalAccount"`
	ClientMetadataID string               `json:"correlationId,omitempty"`
}

// GatewayPayPalAccount carries the approval details captured on return from the browser switch
type GatewayPayPalAccount struct {
	PaymentToken          string `json:"paymentToken,omitempty"`
	PayerID               string `json:"payerId,omitempty"`
	BillingAgreementToken string `json:"billingAgreementToken,omitempty"`
	Intent                string `json:"intent,omitempty"`
}

// IncomingGatewayTokenizeResponse is the response expected back from the gateway
// after an approved PayPal account has been successfully tokenized
type IncomingGatewayTokenizeResponse struct {
	Nonce   string                 `json:"nonce"`
	Type    string                 `json:"type"`
	Details GatewayPayPalDetails   `json:"details"`
	Errors  []GatewayResponseError `json:"errors,omitempty"`
}

// GatewayPayPalDetails holds the details block of a tokenized PayPal account.
// CreditFinancingOffered is kept raw so absent or malformed financing terms can
// degrade to empty rather than failing the whole response.
type GatewayPayPalDetails struct {
	Email                  string          `json:"email"`
	PayerID                string          `json:"payerId"`
	CreditFinancingOffered json.RawMessage `json:"creditFinancingOffered,omitempty"`
}

// GatewayResponseError is a single error returned by the gateway
type GatewayResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
