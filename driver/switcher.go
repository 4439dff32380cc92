package driver

import (
	"fmt"
	"math/rand"
	"net/url"
	"time"
)

// Presenter is the UI collaborator notified when a browser surface needs to be
// presented or dismissed
type Presenter interface {
	RequestPresent(approvalURL *url.URL)
	RequestDismiss()
}

// BrowserSwitcher hands control to an external browser surface for user
// approval and reports an opaque handle for the presented surface. The two
// implementations are interchangeable strategies - which one a driver uses is
// decided by its DisableAuthSession flag.
type BrowserSwitcher interface {
	Open(approvalURL *url.URL) (string, error)
	Close()
}

// AuthenticationSessionSwitcher presents the approval URL in an ephemeral
// authentication session
type AuthenticationSessionSwitcher struct {
	// Started reports whether an authentication session has been started
	Started bool

	handle string
}

// Open starts an authentication session for the approval URL
func (s *AuthenticationSessionSwitcher) Open(approvalURL *url.URL) (string, error) {
	if approvalURL == nil {
		return "", fmt.Errorf("no approval url supplied")
	}
	s.Started = true
	s.handle = generateHandle("auth-session")
	return s.handle, nil
}

// Close ends the authentication session
func (s *AuthenticationSessionSwitcher) Close() {
	s.Started = false
	s.handle = ""
}

// ViewSwitcher presents the approval URL in an in-app browser view. Kept as a
// fallback strategy for hosts where the authentication session is disabled.
type ViewSwitcher struct {
	handle string
}

// Open presents an in-app browser view for the approval URL
func (s *ViewSwitcher) Open(approvalURL *url.URL) (string, error) {
	if approvalURL == nil {
		return "", fmt.Errorf("no approval url supplied")
	}
	s.handle = generateHandle("browser-view")
	return s.handle, nil
}

// Close dismisses the in-app browser view
func (s *ViewSwitcher) Close() {
	s.handle = ""
}

// Generates an opaque handle for a presented browser surface, made up of the
// strategy name followed by 7 random numbers
func generateHandle(strategy string) string {
	rand.Seed(time.Now().UTC().UnixNano())
	return fmt.Sprintf("%s-%07d", strategy, rand.Intn(9999999))
}
