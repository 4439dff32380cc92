package models

// PayPalAccountNonce is the tokenized PayPal account returned to the caller
// once a browser switch flow completes successfully
type PayPalAccountNonce struct {
	Nonce           string           `json:"nonce"`
	Type            string           `json:"type"`
	Email           string           `json:"email,omitempty"`
	PayerID         string           `json:"payer_id,omitempty"`
	CreditFinancing *CreditFinancing `json:"credit_financing,omitempty"`
}
