package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ataboo/go-furglo-web/pkg/common"
	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/ataboo/go-furglo-web/pkg/session"
	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const HeaderRequestID = "X-Request-ID"

type Client struct {
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	store       session.Store
	log         logrus.FieldLogger
	redirectURI string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRedirectURI is appended to OAuth redirect URLs so the backend knows where to return.
func WithRedirectURI(redirectURI string) Option {
	return func(c *Client) {
		c.redirectURI = redirectURI
	}
}

func New(baseURL string, timeout time.Duration, store session.Store, logger logrus.FieldLogger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = common.DefaultAPITimeout
	}

	if logger == nil {
		logger = common.NopLogger()
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		store:      store,
		log:        logger.WithField("component", "apiclient"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Store() session.Store {
	return c.store
}

// Do sends a JSON request and returns the raw JSON body of a 2xx response.
// Every call is bounded by the client timeout.
func (c *Client) Do(ctx context.Context, method string, path string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	if token := c.accessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Warn("request timed out")
			return nil, ErrTimeout
		}

		log.WithError(err).Warn("request failed")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}

		return nil, &NetworkError{Err: err}
	}

	log = log.WithField("status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug("request rejected")
		return nil, c.handleErrorResponse(ctx, resp.StatusCode, raw)
	}

	log.Debug("request complete")

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	if !json.Valid(raw) {
		log.Warn("success response was not json")
		return nil, &HTTPError{Status: constants.StatusBadGateway, Message: constants.ErrMsgServer}
	}

	return raw, nil
}

func (c *Client) accessToken(ctx context.Context) string {
	sess, err := c.store.Load(ctx)
	if err != nil {
		c.log.WithError(err).Warn("failed to load session")
		return ""
	}

	if sess == nil {
		return ""
	}

	return sess.AccessToken
}

func (c *Client) handleErrorResponse(ctx context.Context, status int, raw []byte) error {
	if status == constants.StatusUnauthorized {
		// The session is cleared even if the caller's deadline has passed.
		if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
			c.log.WithError(err).Error("failed to clear expired session")
		}

		return ErrSessionExpired
	}

	errorData := struct {
		Message string `json:"message"`
	}{}
	_ = json.Unmarshal(raw, &errorData)

	message := errorData.Message
	if message == "" {
		message = defaultStatusMessage(status)
	}

	return &HTTPError{Status: status, Message: message}
}

// Envelope is the backend's response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type AuthData struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         json.RawMessage `json:"user,omitempty"`
	Professional json.RawMessage `json:"professional,omitempty"`
}

func (d AuthData) Profile() json.RawMessage {
	if len(d.User) > 0 && string(d.User) != "null" {
		return d.User
	}

	if len(d.Professional) > 0 && string(d.Professional) != "null" {
		return d.Professional
	}

	return nil
}

type AuthResponse struct {
	Message string
	Data    AuthData
}

func decodeEnvelope(raw json.RawMessage) (*Envelope, error) {
	env := &Envelope{}
	if len(raw) == 0 {
		return env, nil
	}

	if err := json.Unmarshal(raw, env); err != nil {
		return nil, errors.Wrap(err, "failed to decode response envelope")
	}

	return env, nil
}

// doEnvelope requires success=true, failing with the server message or fallback.
func (c *Client) doEnvelope(ctx context.Context, method string, path string, body interface{}, fallback string) (*Envelope, error) {
	raw, err := c.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fallback
		}

		return nil, &ResponseError{Message: msg}
	}

	return env, nil
}

func (c *Client) authCall(ctx context.Context, kind session.ActorKind, path string, body interface{}, fallback string) (*AuthResponse, error) {
	env, err := c.doEnvelope(ctx, http.MethodPost, path, body, fallback)
	if err != nil {
		return nil, err
	}

	resp := &AuthResponse{Message: env.Message}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &resp.Data); err != nil {
			return nil, errors.Wrap(err, "failed to decode auth data")
		}
	}

	if resp.Data.AccessToken != "" {
		if err := c.saveAuth(ctx, resp.Data, kind); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (c *Client) saveAuth(ctx context.Context, data AuthData, kind session.ActorKind) error {
	return c.store.Save(ctx, session.Session{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		ActorKind:    kind,
		Profile:      data.Profile(),
	})
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login persists the returned session before returning.
func (c *Client) Login(ctx context.Context, kind session.ActorKind, email string, password string) (*AuthResponse, error) {
	return c.authCall(ctx, kind, kind.Endpoints().Login, credentials{Email: email, Password: password}, constants.ErrMsgLoginFailed)
}

// Register sends the assembled registration payload. A session is persisted
// only when the backend confirms with tokens.
func (c *Client) Register(ctx context.Context, kind session.ActorKind, payload interface{}) (*AuthResponse, error) {
	return c.authCall(ctx, kind, kind.Endpoints().Register, payload, constants.ErrMsgRegistrationFailed)
}

func (c *Client) LoginProfessional(ctx context.Context, email string, password string) (*AuthResponse, error) {
	return c.Login(ctx, session.ActorProfessional, email, password)
}

func (c *Client) LoginUser(ctx context.Context, email string, password string) (*AuthResponse, error) {
	return c.Login(ctx, session.ActorUser, email, password)
}

func (c *Client) RegisterProfessional(ctx context.Context, payload interface{}) (*AuthResponse, error) {
	return c.Register(ctx, session.ActorProfessional, payload)
}

func (c *Client) RegisterUser(ctx context.Context, payload interface{}) (*AuthResponse, error) {
	return c.Register(ctx, session.ActorUser, payload)
}

func (c *Client) storedKind(ctx context.Context) (*session.Session, session.ActorKind) {
	sess, err := c.store.Load(ctx)
	if err != nil {
		c.log.WithError(err).Warn("failed to load session")
	}

	if sess != nil && sess.ActorKind == session.ActorProfessional {
		return sess, session.ActorProfessional
	}

	return sess, session.ActorUser
}

// Logout always clears the local session. Server failures are logged and ignored.
func (c *Client) Logout(ctx context.Context) error {
	_, kind := c.storedKind(ctx)

	if _, err := c.Do(ctx, http.MethodPost, kind.Endpoints().Logout, nil); err != nil {
		c.log.WithError(err).Warn("logout request failed")
	}

	return c.store.Clear(context.WithoutCancel(ctx))
}

func (c *Client) ForgotPassword(ctx context.Context, kind session.ActorKind, email string) (*Envelope, error) {
	raw, err := c.Do(ctx, http.MethodPost, kind.Endpoints().ForgotPassword, map[string]string{"email": email})
	if err != nil {
		return nil, err
	}

	return decodeEnvelope(raw)
}

func (c *Client) ResetPassword(ctx context.Context, kind session.ActorKind, token string, password string) (*Envelope, error) {
	body := map[string]string{"token": token, "password": password}

	return c.doEnvelope(ctx, http.MethodPost, kind.Endpoints().ResetPassword, body, constants.ErrMsgServer)
}

// VerifyEmail confirms the token from a verification link.
func (c *Client) VerifyEmail(ctx context.Context, kind session.ActorKind, token string) (*Envelope, error) {
	path := kind.Endpoints().VerifyEmail + "?" + url.Values{"token": {token}}.Encode()

	return c.doEnvelope(ctx, http.MethodGet, path, nil, constants.ErrMsgServer)
}

// ResendVerification asks the backend to send a fresh verification email.
func (c *Client) ResendVerification(ctx context.Context, kind session.ActorKind, email string) (*Envelope, error) {
	return c.doEnvelope(ctx, http.MethodPost, kind.Endpoints().VerifyEmail, map[string]string{"email": email}, constants.ErrMsgServer)
}

// RefreshToken swaps the stored refresh token for new tokens, keeping the
// stored actor kind and profile.
func (c *Client) RefreshToken(ctx context.Context) (*AuthResponse, error) {
	sess, kind := c.storedKind(ctx)
	if sess == nil || sess.RefreshToken == "" {
		return nil, ErrSessionExpired
	}

	env, err := c.doEnvelope(ctx, http.MethodPost, kind.Endpoints().RefreshToken, map[string]string{"refreshToken": sess.RefreshToken}, constants.ErrMsgSessionExpired)
	if err != nil {
		return nil, err
	}

	resp := &AuthResponse{Message: env.Message}
	if err := json.Unmarshal(env.Data, &resp.Data); err != nil || resp.Data.AccessToken == "" {
		return nil, &ResponseError{Message: constants.ErrMsgSessionExpired}
	}

	updated := *sess
	updated.AccessToken = resp.Data.AccessToken
	if resp.Data.RefreshToken != "" {
		updated.RefreshToken = resp.Data.RefreshToken
	}
	if profile := resp.Data.Profile(); profile != nil {
		updated.Profile = profile
	}

	if err := c.store.Save(ctx, updated); err != nil {
		return nil, err
	}

	return resp, nil
}

// Profile fetches the signed-in principal and refreshes the stored copy.
func (c *Client) Profile(ctx context.Context) (json.RawMessage, error) {
	sess, kind := c.storedKind(ctx)
	if sess == nil || sess.AccessToken == "" {
		return nil, ErrSessionExpired
	}

	env, err := c.doEnvelope(ctx, http.MethodGet, kind.Endpoints().Profile, nil, constants.ErrMsgServer)
	if err != nil {
		return nil, err
	}

	profile := env.Data
	data := AuthData{}
	if json.Unmarshal(env.Data, &data) == nil && data.Profile() != nil {
		profile = data.Profile()
	}

	updated := *sess
	updated.Profile = profile
	if err := c.store.Save(ctx, updated); err != nil {
		return nil, err
	}

	return profile, nil
}

func (c *Client) oauthURL(path string) string {
	target := c.baseURL + path
	if c.redirectURI != "" {
		target += "?" + url.Values{"redirect_uri": {c.redirectURI}}.Encode()
	}

	return target
}

// GoogleAuthURL is where the browser is sent to start the OAuth flow.
func (c *Client) GoogleAuthURL(kind session.ActorKind) string {
	return c.oauthURL(kind.Endpoints().GoogleAuth)
}

func (c *Client) AppleAuthURL(kind session.ActorKind) string {
	return c.oauthURL(kind.Endpoints().AppleAuth)
}
