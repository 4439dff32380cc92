package interceptors

import (
	"context"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/helpers"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/service"
	"github.com/gorilla/mux"
)

// TokenizationAuthenticationInterceptor contains the tokenization service used in the interceptor
type TokenizationAuthenticationInterceptor struct {
	Service service.TokenizationService
}

// TokenizationAuthenticationIntercept checks that the user is authenticated for the tokenization session
func (interceptor TokenizationAuthenticationInterceptor) TokenizationAuthenticationIntercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check for a tokenization ID in request
		vars := mux.Vars(r)
		id := vars["tokenization_id"]
		if id == "" {
			log.ErrorR(r, fmt.Errorf("TokenizationAuthenticationInterceptor error: no tokenization id"))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Get identity type from request
		identityType := helpers.GetAuthorisedIdentityType(r)
		if !(identityType == helpers.Oauth2IdentityType || identityType == helpers.APIKeyIdentityType) {
			log.Error(fmt.Errorf("authentication interceptor unauthorised: not oauth2 or API key identity type"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		authorisedUser := ""

		if identityType == helpers.Oauth2IdentityType {
			authorisedUser = helpers.GetAuthorisedIdentity(r)
			if authorisedUser == "" {
				log.Error(fmt.Errorf("TokenizationAuthenticationInterceptor unauthorised: no authorised identity"))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
		}

		// Get the tokenization session from the ID in request
		tokenizationSession, _, err := interceptor.Service.GetTokenizationSession(r, id)
		if err != nil {
			log.Error(fmt.Errorf("TokenizationAuthenticationInterceptor error when retrieving tokenization session: [%v]", err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		if tokenizationSession == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// Store tokenizationSession in context to use later in the handler
		ctx := context.WithValue(r.Context(), helpers.ContextKeyTokenizationSession, tokenizationSession)

		// Set up variables that are used to determine authorisation below
		isGetRequest := http.MethodGet == r.Method
		authUserIsSessionCreator := authorisedUser == tokenizationSession.CreatedBy.ID
		authUserHasLookupRole := helpers.IsRoleAuthorised(r, helpers.AdminTokenizationLookupRole)
		isAPIKeyRequest := identityType == helpers.APIKeyIdentityType
		apiKeyHasElevatedPrivileges := helpers.IsKeyElevatedPrivilegesAuthorised(r)

		// Set up debug map for logging at each exit point
		debugMap := log.Data{
			"tokenization_id":                        id,
			"auth_user_is_session_creator":           authUserIsSessionCreator,
			"auth_user_has_tokenization_lookup_role": authUserHasLookupRole,
			"api_key_has_elevated_privileges":        apiKeyHasElevatedPrivileges,
			"request_method":                         r.Method,
		}

		// Now that we have the session data and authorised user there are
		// multiple cases that can be allowed through:
		switch {
		case authUserIsSessionCreator:
			// 1) Authorised user created the tokenization session
			log.InfoR(r, "TokenizationAuthenticationInterceptor authorised as creator", debugMap)
			next.ServeHTTP(w, r.WithContext(ctx))
		case authUserHasLookupRole && isGetRequest:
			// 2) Authorised user has permission to look up any tokenization
			// session and the request is a GET i.e. to see session data but not
			// modify it
			log.InfoR(r, "TokenizationAuthenticationInterceptor authorised as tokenization lookup role on GET", debugMap)
			next.ServeHTTP(w, r.WithContext(ctx))
		case isAPIKeyRequest && apiKeyHasElevatedPrivileges:
			// 3) An API key with elevated privileges is an internal API key that
			// we trust
			log.InfoR(r, "TokenizationAuthenticationInterceptor authorised as api key elevated user", debugMap)
			next.ServeHTTP(w, r.WithContext(ctx))
		default:
			// If none of the conditions above are met then the request is
			// unauthorised
			w.WriteHeader(http.StatusUnauthorized)
			log.InfoR(r, "TokenizationAuthenticationInterceptor unauthorised", debugMap)
		}
	})
}
