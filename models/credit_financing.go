package models

// CreditFinancingAmount is a currency and value pair describing part of a
// PayPal credit financing offer. Value is a decimal held as a string, as
// received on the wire.
type CreditFinancingAmount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// CreditFinancing describes the PayPal credit financing terms attached to a
// tokenized account. All fields other than CardAmountImmutable are optional
// since the source JSON may omit any of them.
type CreditFinancing struct {
	CardAmountImmutable bool                   `json:"card_amount_immutable"`
	MonthlyPayment      *CreditFinancingAmount `json:"monthly_payment,omitempty"`
	Term                *int                   `json:"term,omitempty"`
	TotalCost           *CreditFinancingAmount `json:"total_cost,omitempty"`
	TotalInterest       *CreditFinancingAmount `json:"total_interest,omitempty"`
}
