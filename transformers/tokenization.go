package transformers

import (
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
)

// TokenizationTransformer transforms tokenization session data between rest and database models
type TokenizationTransformer struct{}

// TransformToDB transforms a tokenization resource rest model into a tokenization resource database model
func (tt TokenizationTransformer) TransformToDB(rest models.TokenizationResourceRest) models.TokenizationResourceDB {
	tokenizationResourceData := models.TokenizationResourceDataDB{
		FlowType:     rest.FlowType,
		Intent:       rest.Intent,
		Amount:       rest.Amount,
		Currency:     rest.Currency,
		OfferCredit:  rest.OfferCredit,
		CompletedAt:  rest.CompletedAt,
		CreatedAt:    rest.CreatedAt,
		Reference:    rest.Reference,
		Status:       rest.Status,
		AccountNonce: tt.TransformNonceToDB(rest.AccountNonce),
	}

	tokenizationResourceData.CreatedBy = models.CreatedByDB(rest.CreatedBy)
	tokenizationResourceData.Links = models.TokenizationLinksDB(rest.Links)

	return models.TokenizationResourceDB{
		Data: tokenizationResourceData,
	}
}

// TransformToRest transforms a tokenization resource database model into a tokenization resource rest model
func (tt TokenizationTransformer) TransformToRest(dbResource models.TokenizationResourceDB) models.TokenizationResourceRest {
	return models.TokenizationResourceRest{
		FlowType:         dbResource.Data.FlowType,
		Intent:           dbResource.Data.Intent,
		Amount:           dbResource.Data.Amount,
		Currency:         dbResource.Data.Currency,
		ClientMetadataID: dbResource.ClientMetadataID,
		OfferCredit:      dbResource.Data.OfferCredit,
		CompletedAt:      dbResource.Data.CompletedAt,
		CreatedAt:        dbResource.Data.CreatedAt,
		CreatedBy:        models.CreatedByRest(dbResource.Data.CreatedBy),
		Reference:        dbResource.Data.Reference,
		Status:           dbResource.Data.Status,
		Links:            models.TokenizationLinksRest(dbResource.Data.Links),
		AccountNonce:     tt.TransformNonceToRest(dbResource.Data.AccountNonce),
	}
}

// TransformNonceToDB transforms a tokenized account rest model into its database model
func (tt TokenizationTransformer) TransformNonceToDB(rest *models.PayPalAccountNonce) *models.PayPalAccountNonceDB {
	if rest == nil {
		return nil
	}
	return &models.PayPalAccountNonceDB{
		Nonce:           rest.Nonce,
		Type:            rest.Type,
		Email:           rest.Email,
		PayerID:         rest.PayerID,
		CreditFinancing: financingToDB(rest.CreditFinancing),
	}
}

// TransformNonceToRest transforms a tokenized account database model into its rest model
func (tt TokenizationTransformer) TransformNonceToRest(dbNonce *models.PayPalAccountNonceDB) *models.PayPalAccountNonce {
	if dbNonce == nil {
		return nil
	}
	return &models.PayPalAccountNonce{
		Nonce:           dbNonce.Nonce,
		Type:            dbNonce.Type,
		Email:           dbNonce.Email,
		PayerID:         dbNonce.PayerID,
		CreditFinancing: financingToRest(dbNonce.CreditFinancing),
	}
}

func financingToDB(rest *models.CreditFinancing) *models.CreditFinancingDB {
	if rest == nil {
		return nil
	}
	return &models.CreditFinancingDB{
		CardAmountImmutable: rest.CardAmountImmutable,
		MonthlyPayment:      amountToDB(rest.MonthlyPayment),
		Term:                rest.Term,
		TotalCost:           amountToDB(rest.TotalCost),
		TotalInterest:       amountToDB(rest.TotalInterest),
	}
}

func financingToRest(dbFinancing *models.CreditFinancingDB) *models.CreditFinancing {
	if dbFinancing == nil {
		return nil
	}
	return &models.CreditFinancing{
		CardAmountImmutable: dbFinancing.CardAmountImmutable,
		MonthlyPayment:      amountToRest(dbFinancing.MonthlyPayment),
		Term:                dbFinancing.Term,
		TotalCost:           amountToRest(dbFinancing.TotalCost),
		TotalInterest:       amountToRest(dbFinancing.TotalInterest),
	}
}

func amountToDB(rest *models.CreditFinancingAmount) *models.CreditFinancingAmountDB {
	if rest == nil {
		return nil
	}
	amount := models.CreditFinancingAmountDB(*rest)
	return &amount
}

func amountToRest(dbAmount *models.CreditFinancingAmountDB) *models.CreditFinancingAmount {
	if dbAmount == nil {
		return nil
	}
	amount := models.CreditFinancingAmount(*dbAmount)
	return &amount
}
