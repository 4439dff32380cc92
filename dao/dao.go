package dao

import "github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"

// DAO is an interface for accessing tokenization session data in a backend store
type DAO interface {
	CreateTokenizationResource(tokenizationResource *models.TokenizationResourceDB) error
	GetTokenizationResource(id string) (*models.TokenizationResourceDB, error)
	PatchTokenizationResource(id string, patch *models.TokenizationResourceDB) error
}
