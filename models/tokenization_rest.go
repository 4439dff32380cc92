package models

import "time"

// IncomingTokenizationRequest is the data received in the body of the incoming request
type IncomingTokenizationRequest struct {
	FlowType         string `json:"flow_type"          validate:"required,oneof=checkout vault"`
	Intent           string `json:"intent"             validate:"omitempty,oneof=capture authorize"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	ClientMetadataID string `json:"client_metadata_id"`
	OfferCredit      bool   `json:"offer_credit"`
	RedirectURI      string `json:"redirect_uri"       validate:"required"`
	Reference        string `json:"reference"`
	State            string `json:"state"`
}

// TokenizationResourceRest is public facing tokenization session details to be returned in the response
type TokenizationResourceRest struct {
	FlowType         string                `json:"flow_type"`
	Intent           string                `json:"intent,omitempty"`
	Amount           string                `json:"amount,omitempty"`
	Currency         string                `json:"currency,omitempty"`
	ClientMetadataID string                `json:"client_metadata_id,omitempty"`
	OfferCredit      bool                  `json:"offer_credit,omitempty"`
	CompletedAt      time.Time             `json:"completed_at,omitempty"`
	CreatedAt        time.Time             `json:"created_at,omitempty"`
	CreatedBy        CreatedByRest         `json:"created_by"`
	Reference        string                `json:"reference,omitempty"`
	Status           string                `json:"status"`
	Links            TokenizationLinksRest `json:"links"`
	AccountNonce     *PayPalAccountNonce   `json:"account_nonce,omitempty"`
}

// CreatedByRest is the user who is creating the tokenization session
type CreatedByRest struct {
	Email    string `json:"email"`
	Forename string `json:"forename"`
	ID       string `json:"id"`
	Surname  string `json:"surname"`
}

// TokenizationLinksRest is a set of URLs related to the resource, including self
type TokenizationLinksRest struct {
	Journey  string `json:"journey"`
	Resource string `json:"resource"`
	Self     string `json:"self" validate:"required"`
}

// RedirectParams are the query params allowed in the redirect back to the calling app
type RedirectParams struct {
	State  string
	Ref    string
	Status string
}
