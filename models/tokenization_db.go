package models

import "time"

// TokenizationResourceDB contains all tokenization session details to be stored in the DB
type TokenizationResourceDB struct {
	ID                    string                     `bson:"_id"`
	RedirectURI           string                     `bson:"redirect_uri"`
	State                 string                     `bson:"state"`
	ClientMetadataID      string                     `bson:"client_metadata_id"`
	ExternalApprovalURI   string                     `bson:"external_approval_url"`
	ExternalOrderID       string                     `bson:"external_order_id"`
	BillingAgreementToken string                     `bson:"billing_agreement_token"`
	BrowserSwitchHandle   string                     `bson:"browser_switch_handle"`
	Data                  TokenizationResourceDataDB `bson:"data"`
}

// TokenizationResourceDataDB is the tokenization session data stored within the DB resource
type TokenizationResourceDataDB struct {
	FlowType     string                `bson:"flow_type"`
	Intent       string                `bson:"intent"`
	Amount       string                `bson:"amount"`
	Currency     string                `bson:"currency"`
	OfferCredit  bool                  `bson:"offer_credit"`
	CompletedAt  time.Time             `bson:"completed_at,omitempty"`
	CreatedAt    time.Time             `bson:"created_at,omitempty"`
	CreatedBy    CreatedByDB           `bson:"created_by"`
	Reference    string                `bson:"reference,omitempty"`
	Status       string                `bson:"status"`
	Links        TokenizationLinksDB   `bson:"links"`
	AccountNonce *PayPalAccountNonceDB `bson:"account_nonce,omitempty"`
}

// CreatedByDB is the user who created the tokenization session
type CreatedByDB struct {
	Email    string `bson:"email"`
	Forename string `bson:"forename"`
	ID       string `bson:"id"`
	Surname  string `bson:"surname"`
}

// TokenizationLinksDB is a set of URLs related to the resource, including self
type TokenizationLinksDB struct {
	Journey  string `bson:"journey"`
	Resource string `bson:"resource"`
	Self     string `bson:"self"`
}

// PayPalAccountNonceDB is the tokenized PayPal account stored against a completed session
type PayPalAccountNonceDB struct {
	Nonce           string             `bson:"nonce"`
	Type            string             `bson:"type"`
	Email           string             `bson:"email,omitempty"`
	PayerID         string             `bson:"payer_id,omitempty"`
	CreditFinancing *CreditFinancingDB `bson:"credit_financing,omitempty"`
}

// CreditFinancingDB is the credit financing terms stored against a tokenized account
type CreditFinancingDB struct {
	CardAmountImmutable bool                     `bson:"card_amount_immutable"`
	MonthlyPayment      *CreditFinancingAmountDB `bson:"monthly_payment,omitempty"`
	Term                *int                     `bson:"term,omitempty"`
	TotalCost           *CreditFinancingAmountDB `bson:"total_cost,omitempty"`
	TotalInterest       *CreditFinancingAmountDB `bson:"total_interest,omitempty"`
}

// CreditFinancingAmountDB is a currency and value pair within stored credit financing terms
type CreditFinancingAmountDB struct {
	Currency string `bson:"currency"`
	Value    string `bson:"value"`
}
