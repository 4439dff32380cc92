package handlers

import (
	"net/url"

	"github.com/companieshouse/chs.go/log"
)

// browserPresenter satisfies driver.Presenter for the API. The user's browser is driven remotely
// via the approval URL returned on session creation, so presentation requests only need recording.
type browserPresenter struct{}

func (browserPresenter) RequestPresent(approvalURL *url.URL) {
	log.Info("requesting browser switch", log.Data{"approval_url": approvalURL.String()})
}

func (browserPresenter) RequestDismiss() {
	log.Info("requesting browser dismiss")
}
