package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/driver"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/mappers"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
)

// GatewayService exchanges approved browser switch results for payment method
// nonces with the tokenization gateway. It is the Tokenizer collaborator used
// by the browser switch driver.
type GatewayService struct {
	Config config.Config
}

// TokenizeApproval sends the approval details to the gateway and maps the
// response into a tokenized account, including any credit financing terms
// offered
func (g *GatewayService) TokenizeApproval(approval *driver.Approval) (*models.PayPalAccountNonce, error) {
	gatewayRequest := models.OutgoingGatewayTokenizeRequest{
		PayPalAccount: models.GatewayPayPalAccount{
			PaymentToken:          approval.PaymentToken,
			PayerID:               approval.PayerID,
			BillingAgreementToken: approval.BillingAgreementToken,
			Intent:                approval.Intent,
		},
		ClientMetadataID: approval.ClientMetadataID,
	}

	requestBody, err := json.Marshal(gatewayRequest)
	if err != nil {
		return nil, fmt.Errorf("error reading GatewayTokenizeRequest: [%s]", err)
	}

	request, err := http.NewRequest("POST", g.Config.GatewayURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("error generating request for gateway: [%s]", err)
	}

	request.Header.Add("accept", "application/json")
	request.Header.Add("authorization", "Bearer "+g.Config.GatewayBearerToken)
	request.Header.Add("content-type", "application/json")

	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("error sending request to gateway to tokenize approval: [%s]", err)
	}

	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response from gateway: [%s]", err)
	}

	gatewayResponse := &models.IncomingGatewayTokenizeResponse{}
	err = json.Unmarshal(body, gatewayResponse)
	if err != nil {
		return nil, fmt.Errorf("error reading response from gateway: [%s]", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error status [%v] back from gateway: [%s]", resp.StatusCode, firstGatewayError(gatewayResponse))
	}
	if gatewayResponse.Nonce == "" {
		return nil, fmt.Errorf("no nonce returned from gateway")
	}

	return &models.PayPalAccountNonce{
		Nonce:           gatewayResponse.Nonce,
		Type:            nonceType(gatewayResponse.Type),
		Email:           gatewayResponse.Details.Email,
		PayerID:         gatewayResponse.Details.PayerID,
		CreditFinancing: mappers.CreditFinancingFromJSON(gatewayResponse.Details.CreditFinancingOffered),
	}, nil
}

func firstGatewayError(gatewayResponse *models.IncomingGatewayTokenizeResponse) string {
	if len(gatewayResponse.Errors) == 0 {
		return "no error detail"
	}
	return gatewayResponse.Errors[0].Message
}

func nonceType(responseType string) string {
	if responseType == "" {
		return "PayPalAccount"
	}
	return responseType
}
