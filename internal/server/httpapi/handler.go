// Package httpapi exposes the account service over a JSON HTTP API. Every
// response is an envelope with either data or a coded error; the refresh and
// passcode credentials ride in http-only cookies the handlers set and clear.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
	"github.com/irabeny89/ebbs2022-sub000/internal/logging"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/auth"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/models"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/services"
)

// MsgPasscodeSent confirms a recovery code went out without revealing
// anything about the account it went to.
const MsgPasscodeSent = "Passcode sent! Check your inbox and spam folder."

type Handler struct {
	accounts        *services.AccountService
	authenticator   *auth.RequestAuthenticator
	refreshCarrier  auth.CredentialCarrier
	passcodeCarrier auth.CredentialCarrier
	refreshTTL      time.Duration
	passcodeTTL     time.Duration
	logger          logging.Logger
}

func NewHandler(
	accounts *services.AccountService,
	authenticator *auth.RequestAuthenticator,
	refreshCarrier, passcodeCarrier auth.CredentialCarrier,
	refreshTTL, passcodeTTL time.Duration,
	logger logging.Logger,
) *Handler {
	return &Handler{
		accounts:        accounts,
		authenticator:   authenticator,
		refreshCarrier:  refreshCarrier,
		passcodeCarrier: passcodeCarrier,
		refreshTTL:      refreshTTL,
		passcodeTTL:     passcodeTTL,
		logger:          logger.With("module", "httpapi"),
	}
}

// sessionResponse is the data payload of every call that mints or renews an
// access token. The refresh token never appears here: it travels only in
// its cookie.
type sessionResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type profileResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Audience  string `json:"audience"`
	ServiceID string `json:"serviceId,omitempty"`
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.ValidationError(common.MsgSomethingWentWrong)
	}
	return nil
}

// fail logs the full error before the generic wire mapping hides it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if common.KindOf(err) == common.KindInternal {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	} else {
		h.logger.Debug(r.Context(), "request rejected", "path", r.URL.Path, "error", err.Error())
	}
	writeError(w, err)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, r, common.ValidationError(err.Error()))
		return
	}

	pair, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.refreshCarrier.Write(w, pair.RefreshToken, h.refreshTTL)
	writeData(w, http.StatusOK, sessionResponse{AccessToken: pair.AccessToken})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	sealed, err := h.passcodeCarrier.Read(r)
	if err != nil {
		h.fail(w, r, common.ForbiddenError(common.MsgPasscodeFailed))
		return
	}

	pair, err := h.accounts.Register(r.Context(), sealed, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// The record is single-use: the consuming call retires the cookie.
	h.passcodeCarrier.Clear(w)
	h.refreshCarrier.Write(w, pair.RefreshToken, h.refreshTTL)
	writeData(w, http.StatusCreated, sessionResponse{AccessToken: pair.AccessToken})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	token, err := h.refreshCarrier.Read(r)
	if err != nil {
		h.fail(w, r, common.AuthenticationError(common.MsgAuthenticationFailed))
		return
	}

	access, err := h.accounts.Refresh(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeData(w, http.StatusOK, sessionResponse{AccessToken: access})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.refreshCarrier.Clear(w)
	writeData(w, http.StatusOK, messageResponse{Message: "Logged out."})
}

func (h *Handler) requestPasscode(w http.ResponseWriter, r *http.Request) {
	var req models.RequestPasscodeRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, r, common.ValidationError(err.Error()))
		return
	}

	sealed, err := h.accounts.RequestPasscode(r.Context(), req.Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.passcodeCarrier.Write(w, sealed, h.passcodeTTL)
	writeData(w, http.StatusOK, messageResponse{Message: MsgPasscodeSent})
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	sealed, err := h.passcodeCarrier.Read(r)
	if err != nil {
		h.fail(w, r, common.ForbiddenError(common.MsgPasscodeFailed))
		return
	}

	pair, err := h.accounts.ChangePassword(r.Context(), sealed, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.passcodeCarrier.Clear(w)
	h.refreshCarrier.Write(w, pair.RefreshToken, h.refreshTTL)
	writeData(w, http.StatusOK, sessionResponse{AccessToken: pair.AccessToken})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, err := CallerClaims(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	identity := claims.Identity()
	writeData(w, http.StatusOK, profileResponse{
		ID:        identity.SubjectID,
		Username:  identity.Username,
		Audience:  string(identity.Audience),
		ServiceID: identity.ServiceID,
	})
}
