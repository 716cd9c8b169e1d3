package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/irabeny89/ebbs2022-sub000/internal/client/config"
	"github.com/irabeny89/ebbs2022-sub000/internal/client/session"
	"github.com/irabeny89/ebbs2022-sub000/internal/common"
	"github.com/irabeny89/ebbs2022-sub000/internal/logging"
)

const (
	retryBase     = 300 * time.Millisecond
	retryJitter   = 50 * time.Millisecond
	retryAttempts = 4 // retries after the first attempt

	refreshKey = "refresh"
)

// HTTPClient talks to the backend's JSON API. The refresh credential lives
// in the cookie jar and is never touched directly; the access token comes
// from the session and is renewed in place when the server reports it
// expired mid-call.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	session *session.Session

	// refreshGroup collapses concurrent renewals into one upstream call.
	refreshGroup   singleflight.Group
	refreshTimeout time.Duration

	logger logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func New(cfg *config.Config, sess *session.Session, logger logging.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar init error: %w", err)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout,
		},
		session:        sess,
		refreshTimeout: cfg.RefreshTimeout,
		logger:         logger.With("module", "http_client"),
	}, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *wireError      `json:"error"`
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func mapError(e *wireError) error {
	switch e.Code {
	case common.CodeUnauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, e.Message)
	case common.CodeForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, e.Message)
	case common.CodeBadUserInput:
		return fmt.Errorf("%w: %s", ErrInvalidInput, e.Message)
	default:
		return fmt.Errorf("%w: %s", ErrUnavailable, e.Message)
	}
}

// call marshals the body once and runs the request with token renewal
// enabled. Auth endpoints go through callNoRenew instead: replaying a
// failed login after a refresh could never succeed.
func (c *HTTPClient) call(ctx context.Context, method, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, payload, out, true)
}

func (c *HTTPClient) callNoRenew(ctx context.Context, method, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, payload, out, false)
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("request marshal error: %w", err)
	}
	return payload, nil
}

// do sends the request and decodes the envelope. When the server reports
// the access token expired and renewal is allowed, it refreshes once and
// replays the original call exactly once, with renewal disabled so a second
// rejection surfaces instead of looping.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload []byte, out any, allowRenew bool) error {
	env, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if env.Error != nil {
		if env.Error.Code == common.CodeUnauthenticated && allowRenew && c.session.Active() {
			if refreshErr := c.refreshAccessToken(ctx); refreshErr != nil {
				c.logger.Debug(ctx, "token renewal failed", "error", refreshErr.Error())
				return mapError(env.Error)
			}
			return c.do(ctx, method, path, payload, out, false)
		}
		return mapError(env.Error)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("response unmarshal error: %w", err)
		}
	}

	return nil
}

// send performs one logical request, retrying transport-level failures with
// jittered exponential backoff. A response from the server, whatever its
// status, ends the retrying: only failures to reach the server at all are
// retried. The payload is already marshalled, so every attempt rebuilds its
// reader from the same bytes.
func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte) (*envelope, error) {
	var env envelope

	backoff := retry.WithJitter(retryJitter, retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBase)))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if token := c.session.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		env = envelope{}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return fmt.Errorf("response decode error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &env, nil
}

// refreshAccessToken trades the cookie-held refresh credential for a new
// access token. Concurrent callers share one upstream call through the
// singleflight group, and the call runs on its own deadline so an almost
// exhausted request context cannot starve a renewal other callers wait on.
func (c *HTTPClient) refreshAccessToken(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do(refreshKey, func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
		defer cancel()

		var res sessionPayload
		if err := c.callNoRenew(refreshCtx, http.MethodPost, "/api/auth/refresh", nil, &res); err != nil {
			return nil, err
		}

		c.session.Set(res.AccessToken)
		return nil, nil
	})
	return err
}

type sessionPayload struct {
	AccessToken string `json:"accessToken"`
}

type messagePayload struct {
	Message string `json:"message"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Passcode string `json:"passcode"`
}

type passcodePayload struct {
	Email string `json:"email"`
}

type changePasswordPayload struct {
	Passcode    string `json:"passcode"`
	NewPassword string `json:"newPassword"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	var res sessionPayload
	err := c.callNoRenew(ctx, http.MethodPost, "/api/auth/login", loginPayload{Email: email, Password: password}, &res)
	if err != nil {
		return err
	}
	c.session.Set(res.AccessToken)
	return nil
}

func (c *HTTPClient) RequestPasscode(ctx context.Context, email string) (string, error) {
	var msg messagePayload
	err := c.callNoRenew(ctx, http.MethodPost, "/api/auth/passcode", passcodePayload{Email: email}, &msg)
	if err != nil {
		return "", err
	}
	return msg.Message, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password, passcode string) error {
	var res sessionPayload
	err := c.callNoRenew(ctx, http.MethodPost, "/api/auth/register", registerPayload{
		Username: username, Password: password, Passcode: passcode,
	}, &res)
	if err != nil {
		return err
	}
	c.session.Set(res.AccessToken)
	return nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, passcode, newPassword string) error {
	var res sessionPayload
	err := c.callNoRenew(ctx, http.MethodPost, "/api/auth/password", changePasswordPayload{
		Passcode: passcode, NewPassword: newPassword,
	}, &res)
	if err != nil {
		return err
	}
	c.session.Set(res.AccessToken)
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.call(ctx, http.MethodGet, "/api/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout drops the local session even if the server call fails: the user
// asked to be logged out, and the worst case is an orphaned cookie.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.callNoRenew(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.session.Clear()
	return err
}

func (c *HTTPClient) Active() bool {
	return c.session.Active()
}
