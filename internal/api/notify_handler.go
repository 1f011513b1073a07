package api

import (
	"encoding/json"
	"net/http"

	"github.com/sitecard/notify-relay/internal/logger"
	"github.com/sitecard/notify-relay/internal/service"
)

// authorizeRequest is the JSON body for authorize, unauthorize, and status
// calls. The identifier is always the encrypted form; plaintext recipient
// identifiers never appear on this surface.
type authorizeRequest struct {
	Euid string `json:"euid"`
}

// contactMessageRequest is the JSON body for submitting a contact event.
type contactMessageRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Body  string `json:"body"`
}

// linkRequest is the JSON body for issuing an authorization link. This is an
// internal operation; the recipient identifier arrives in plaintext and the
// response carries only its encrypted form inside the link.
type linkRequest struct {
	RecipientID string `json:"recipient_id"`
}

// linkResponse extends the standard envelope with the issued link.
type linkResponse struct {
	rpcResponse
	URL string `json:"url,omitempty"`
}

// statusResponse extends the standard envelope with the authorization flag.
type statusResponse struct {
	rpcResponse
	Authorized bool `json:"authorized"`
}

// AuthorizeHandler handles POST /rpc/v1/authorize.
func AuthorizeHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authorizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.AuthorizeRecipient(r.Context(), req.Euid); err != nil {
			writeServiceError(w, r, err)
			return
		}
		respondOK(w)
	}
}

// UnauthorizeHandler handles POST /rpc/v1/unauthorize.
func UnauthorizeHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authorizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.UnauthorizeRecipient(r.Context(), req.Euid); err != nil {
			writeServiceError(w, r, err)
			return
		}
		respondOK(w)
	}
}

// StatusHandler handles GET /rpc/v1/status. The encrypted identifier is
// passed as the euid query parameter.
func StatusHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		euid := r.URL.Query().Get("euid")

		authorized, err := svc.RecipientStatus(r.Context(), euid)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, statusResponse{
			rpcResponse: rpcResponse{Success: true},
			Authorized:  authorized,
		})
	}
}

// ContactMessageHandler handles POST /rpc/v1/contact-messages. A 200 means
// the message was accepted and queued, not that it was delivered.
func ContactMessageHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.DeliverContactMessage(r.Context(), req.Name, req.Email, req.Body); err != nil {
			writeServiceError(w, r, err)
			return
		}
		respondOK(w)
	}
}

// AuthorizationLinkHandler handles POST /rpc/v1/authorization-links.
func AuthorizationLinkHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req linkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		link, err := svc.BuildAuthorizationLink(req.RecipientID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, linkResponse{
			rpcResponse: rpcResponse{Success: true},
			URL:         link,
		})
	}
}

// writeServiceError maps a service error to an HTTP response. Validation
// failures surface their message with a 400; anything else is logged and
// hidden behind a fixed 500 message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if service.IsValidation(err) {
		respondError(w, http.StatusBadRequest, service.ValidationMessage(err))
		return
	}

	log := logger.FromContext(r.Context())
	log.Error().
		Err(err).
		Str("path", r.URL.Path).
		Msg("request failed")
	respondError(w, http.StatusInternalServerError, "internal server error")
}
