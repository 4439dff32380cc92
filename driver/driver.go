// Package driver mediates PayPal tokenization flows through an external
// browser switch. A driver holds the state of the single in-flight flow,
// presents the approval URL through a browser switch strategy, and dispatches
// the browser return to the completion callback registered for that flow.
package driver

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
)

// FlowType Enum Type
type FlowType int

// Enumeration containing all flow types a driver can run
const (
	// Checkout is a one-time payment flow
	Checkout FlowType = 1 + iota

	// Vault is a billing agreement flow
	Vault
)

// String representation of flow types
var flowTypes = [...]string{
	"checkout",
	"vault",
}

func (flowType FlowType) String() string {
	return flowTypes[flowType-1]
}

// Request describes the flow being started
type Request struct {
	Intent      string
	ApprovalURL *url.URL
	OfferCredit bool
}

// CompletionCallback is invoked exactly once per completed flow with a
// tokenized account or an error - never both
type CompletionCallback func(accountNonce *models.PayPalAccountNonce, err error)

// Approval is the result of a successful browser switch return, ready to be
// exchanged for a payment method nonce
type Approval struct {
	Flow                  FlowType
	PaymentToken          string
	PayerID               string
	BillingAgreementToken string
	ClientMetadataID      string
	Intent                string
}

// Tokenizer exchanges an approval for a tokenized account. Implemented by the
// external API client collaborator.
type Tokenizer interface {
	TokenizeApproval(approval *Approval) (*models.PayPalAccountNonce, error)
}

// ReturnEvent is the signal delivered when control returns from the external
// browser
type ReturnEvent struct {
	returnURL *url.URL
	canceled  bool
	err       error
}

// SuccessReturn builds a return event carrying the URL the browser returned on
func SuccessReturn(returnURL *url.URL) ReturnEvent {
	return ReturnEvent{returnURL: returnURL}
}

// CancelReturn builds a return event for an explicit user cancellation
func CancelReturn() ReturnEvent {
	return ReturnEvent{canceled: true}
}

// ErrorReturn builds a return event for a browser switch that failed outright
func ErrorReturn(err error) ReturnEvent {
	return ReturnEvent{err: err}
}

type pendingFlow struct {
	flow     FlowType
	callback CompletionCallback
}

// Driver holds the state of the in-flight browser switch flow. At most one
// flow is active at a time. A driver is not safe for concurrent use - begin
// and return events are expected to arrive on a single serialized sequence,
// with the wall-clock gap between them owned by the external browser.
type Driver struct {
	ReturnURLScheme    string
	DisableAuthSession bool

	presenter Presenter
	tokenizer Tokenizer

	pending          *pendingFlow
	request          *Request
	clientMetadataID string
	switcher         BrowserSwitcher
	handle           string
	sessionStarted   bool
}

// New returns a driver using the given presenter and tokenizer collaborators
func New(presenter Presenter, tokenizer Tokenizer, returnURLScheme string, disableAuthSession bool) *Driver {
	return &Driver{
		ReturnURLScheme:    returnURLScheme,
		DisableAuthSession: disableAuthSession,
		presenter:          presenter,
		tokenizer:          tokenizer,
	}
}

// Begin starts a flow: it stores the request state, opens a browser switch
// surface for the approval URL and registers the completion callback for the
// flow type. It returns the opaque handle of the presented surface. Beginning
// a flow while another is active fails with an invalid-state error and leaves
// the active flow untouched.
func (d *Driver) Begin(flow FlowType, request *Request, clientMetadataID string, callback CompletionCallback) (string, error) {
	if d.pending != nil {
		return "", newFlowError(InvalidState, "a %s flow is already active", d.pending.flow)
	}
	if request == nil || request.ApprovalURL == nil {
		return "", fmt.Errorf("no approval url supplied for %s flow", flow)
	}
	if callback == nil {
		return "", fmt.Errorf("no completion callback supplied for %s flow", flow)
	}

	switcher := d.newSwitcher()
	handle, err := switcher.Open(request.ApprovalURL)
	if err != nil {
		return "", fmt.Errorf("error opening browser switch for %s flow: [%v]", flow, err)
	}

	d.pending = &pendingFlow{flow: flow, callback: callback}
	d.request = request
	d.clientMetadataID = clientMetadataID
	d.switcher = switcher
	d.handle = handle
	d.sessionStarted = true

	d.presenter.RequestPresent(request.ApprovalURL)

	return handle, nil
}

// Handle returns the opaque handle of the presented browser switch surface,
// or the empty string when no flow is active. Callers use it to correlate a
// browser return with the flow that opened the switch.
func (d *Driver) Handle() string {
	return d.handle
}

// End clears all flow state unconditionally. Safe to call at any time,
// including when no flow is active.
func (d *Driver) End() {
	if d.switcher != nil {
		d.switcher.Close()
	}
	d.pending = nil
	d.request = nil
	d.clientMetadataID = ""
	d.switcher = nil
	d.handle = ""
	d.sessionStarted = false
}

// HandleReturn dispatches a return event from the external browser. With no
// active flow it is a no-op, defending against spurious OS callbacks.
// Otherwise the event resolves to an approval, a cancellation or an error,
// state is cleared, the browser surface is dismissed, and the callback
// registered for the active flow fires exactly once.
func (d *Driver) HandleReturn(event ReturnEvent) {
	if d.pending == nil {
		return
	}

	flow := d.pending.flow
	callback := d.pending.callback

	approval, err := d.resolve(flow, event)

	// Clear state before invoking the callback so a new flow can begin
	// immediately, and dismiss the presented surface regardless of outcome.
	d.End()
	d.presenter.RequestDismiss()

	if err != nil {
		callback(nil, err)
		return
	}

	accountNonce, err := d.tokenizer.TokenizeApproval(approval)
	if err != nil {
		callback(nil, err)
		return
	}
	callback(accountNonce, nil)
}

// resolve parses a return event into an approval or a flow error
func (d *Driver) resolve(flow FlowType, event ReturnEvent) (*Approval, error) {
	if event.canceled {
		return nil, newFlowError(UserCanceled, "user canceled the %s flow", flow)
	}
	if event.err != nil {
		return nil, newFlowError(TransportError, "browser switch failed for %s flow: [%v]", flow, event.err)
	}
	if event.returnURL == nil {
		return nil, newFlowError(TransportError, "no return url for %s flow", flow)
	}
	if d.ReturnURLScheme != "" && event.returnURL.Scheme != d.ReturnURLScheme {
		return nil, newFlowError(TransportError, "return url scheme [%s] does not match expected scheme [%s]", event.returnURL.Scheme, d.ReturnURLScheme)
	}

	switch action(event.returnURL) {
	case "success":
		return d.approvalFromURL(flow, event.returnURL)
	case "cancel":
		return nil, newFlowError(UserCanceled, "user canceled the %s flow", flow)
	default:
		return nil, newFlowError(TransportError, "unexpected return url path [%s]", event.returnURL.Path)
	}
}

// approvalFromURL extracts the approval details from a success return URL
func (d *Driver) approvalFromURL(flow FlowType, returnURL *url.URL) (*Approval, error) {
	query := returnURL.Query()

	approval := &Approval{
		Flow:                  flow,
		PaymentToken:          query.Get("token"),
		PayerID:               query.Get("PayerID"),
		BillingAgreementToken: query.Get("ba_token"),
		ClientMetadataID:      d.clientMetadataID,
	}
	if d.request != nil {
		approval.Intent = d.request.Intent
	}

	switch flow {
	case Checkout:
		if approval.PaymentToken == "" {
			return nil, newFlowError(TransportError, "no payment token in checkout return url")
		}
	case Vault:
		if approval.BillingAgreementToken == "" && approval.PaymentToken == "" {
			return nil, newFlowError(TransportError, "no billing agreement token in vault return url")
		}
	}

	return approval, nil
}

// newSwitcher picks the browser switch strategy for this driver
func (d *Driver) newSwitcher() BrowserSwitcher {
	if d.DisableAuthSession {
		return &ViewSwitcher{}
	}
	return &AuthenticationSessionSwitcher{}
}

// action returns the final segment of a return URL path, which names the
// outcome of the browser switch
func action(returnURL *url.URL) string {
	path := strings.TrimSuffix(returnURL.Path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
