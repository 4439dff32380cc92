// Package mappers converts provider wire formats into the REST models served
// by this API.
package mappers

import (
	"bytes"
	"encoding/json"

	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
	"github.com/shopspring/decimal"
)

var jsonNull = []byte("null")

// CreditFinancingAmountFromJSON maps a single financing amount node into a
// CreditFinancingAmount. An absent or null node, a missing currency or value,
// or a value that does not parse as a decimal all return nil rather than an
// error - missing financing terms are not a failure.
func CreditFinancingAmountFromJSON(raw json.RawMessage) *models.CreditFinancingAmount {
	fields, ok := objectFields(raw)
	if !ok {
		return nil
	}

	currency, ok := stringField(fields, "currency")
	if !ok {
		return nil
	}
	value, ok := stringField(fields, "value")
	if !ok {
		return nil
	}
	if _, err := decimal.NewFromString(value); err != nil {
		return nil
	}

	return &models.CreditFinancingAmount{
		Currency: currency,
		Value:    value,
	}
}

// CreditFinancingFromJSON maps a creditFinancingOffered node into a
// CreditFinancing. An absent or null node returns nil. Absent or malformed
// sub-fields degrade to empty so a partial offer never fails the overall
// tokenization response.
func CreditFinancingFromJSON(raw json.RawMessage) *models.CreditFinancing {
	fields, ok := objectFields(raw)
	if !ok {
		return nil
	}

	financing := &models.CreditFinancing{
		MonthlyPayment: CreditFinancingAmountFromJSON(fields["monthlyPayment"]),
		TotalCost:      CreditFinancingAmountFromJSON(fields["totalCost"]),
		TotalInterest:  CreditFinancingAmountFromJSON(fields["totalInterest"]),
	}

	if immutable, ok := boolField(fields, "cardAmountImmutable"); ok {
		financing.CardAmountImmutable = immutable
	}
	if term, ok := intField(fields, "term"); ok {
		financing.Term = &term
	}

	return financing
}

// objectFields unmarshals raw into its top level fields, reporting false for
// anything that is not a JSON object
func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, present := fields[key]
	if !present {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func boolField(fields map[string]json.RawMessage, key string) (bool, bool) {
	raw, present := fields[key]
	if !present {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

func intField(fields map[string]json.RawMessage, key string) (int, bool) {
	raw, present := fields[key]
	if !present {
		return 0, false
	}
	var i int
	if err := json.Unmarshal(raw, &i); err != nil {
		return 0, false
	}
	return i, true
}
