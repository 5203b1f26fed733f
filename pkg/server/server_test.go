package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"
	"time"

	"github.com/ataboo/go-furglo-web/pkg/apiclient"
	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/ataboo/go-furglo-web/pkg/geocode"
	"github.com/ataboo/go-furglo-web/pkg/notify"
	"github.com/ataboo/go-furglo-web/pkg/session"
	"github.com/ataboo/go-furglo-web/pkg/testhelpers"
	"github.com/ataboo/go-furglo-web/pkg/wizard"
	"github.com/friendsofgo/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var professional = constants.ProfessionalEndpoints

func initTestServer(t *testing.T) (*Server, *testhelpers.FakeBackend, session.Store) {
	fb := testhelpers.NewFakeBackend(t)
	store := session.NewKVStore(session.NewMemoryKV())

	s, err := newServer(Deps{
		API:      apiclient.New(fb.URL, time.Second, store, nil, apiclient.WithRedirectURI("http://client.test/auth/callback")),
		Geocoder: geocode.New(fb.URL, time.Second, nil),
	})
	require.NoError(t, err)
	t.Cleanup(s.presenter.HideAll)

	return s, fb, store
}

func lastNotification(t *testing.T, p *notify.Presenter) notify.Notification {
	list := p.List()
	require.NotEmpty(t, list)

	return list[len(list)-1]
}

func decode(t *testing.T, body *bytes.Buffer, out interface{}) {
	require.NoError(t, json.Unmarshal(body.Bytes(), out))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	//====== Rejected locally when email is invalid ==========
	s, fb, store := initTestServer(t)

	g, response := testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/login", LoginData{Email: "not-an-email", Password: "Secret1!"})
	s.handleLogin(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	errResp := ErrorResponse{}
	decode(t, response.Body, &errResp)
	assert.Equal(t, ErrorResponse{Error: constants.ErrMsgEmailInvalid, Field: "email"}, errResp)
	assert.Equal(t, constants.ErrMsgEmailInvalid, lastNotification(t, s.presenter).Message)
	assert.Empty(t, fb.Requests())

	//====== Rejected locally when password is missing ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/login", LoginData{Email: "ada@example.com"})
	s.handleLogin(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Equal(t, constants.ErrMsgPasswordRequired, lastNotification(t, s.presenter).Message)

	//====== Unknown actor kind ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/login", LoginData{Email: "ada@example.com", Password: "x", ActorKind: "admin"})
	s.handleLogin(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Empty(t, fb.Requests())

	//====== Success persists the session ==========
	fb.RespondJSON(http.MethodPost, professional.Login, http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"accessToken":  "access",
			"refreshToken": "refresh",
			"professional": gin.H{"id": "p1"},
		},
	})

	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/login", LoginData{Email: " ada@example.com ", Password: "Secret1!"})
	s.handleLogin(g)

	require.Equal(t, http.StatusOK, response.Code)
	loginResp := LoginResponse{}
	decode(t, response.Body, &loginResp)
	assert.Equal(t, DashboardPage, loginResp.Redirect)
	assert.Equal(t, session.ActorProfessional, loginResp.ActorKind)
	assert.JSONEq(t, `{"id":"p1"}`, string(loginResp.Profile))
	assert.Equal(t, constants.MsgLoginSuccess, lastNotification(t, s.presenter).Message)

	requests := fb.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "ada@example.com", requests[0].Body["email"])

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "access", sess.AccessToken)
	assert.Equal(t, session.ActorProfessional, sess.ActorKind)

	//====== Session reports the stored principal ==========
	g, response = testhelpers.NewGinTestContext()
	g.Request = httptest.NewRequest(http.MethodGet, "/session", nil)
	s.handleSession(g)

	sessResp := SessionResponse{}
	decode(t, response.Body, &sessResp)
	assert.True(t, sessResp.Authenticated)
	assert.Equal(t, session.ActorProfessional, sessResp.ActorKind)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()

	//====== Failure envelope carries the server message ==========
	s, fb, _ := initTestServer(t)
	fb.RespondJSON(http.MethodPost, professional.Login, http.StatusOK, gin.H{"success": false, "message": "Account locked"})

	g, response := testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/login", LoginData{Email: "ada@example.com", Password: "Secret1!"})
	s.handleLogin(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Equal(t, "Account locked", lastNotification(t, s.presenter).Message)

	//====== Upstream 401 clears the session ==========
	s, fb, store := initTestServer(t)
	require.NoError(t, store.Save(ctx, session.Session{AccessToken: "stale", RefreshToken: "r", ActorKind: session.ActorProfessional}))
	fb.RespondJSON(http.MethodPost, professional.Login, http.StatusUnauthorized, gin.H{"message": "nope"})

	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/login", LoginData{Email: "ada@example.com", Password: "Secret1!"})
	s.handleLogin(g)

	assert.Equal(t, http.StatusUnauthorized, response.Code)
	assert.Equal(t, constants.ErrMsgSessionExpired, lastNotification(t, s.presenter).Message)

	sess, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Nil(t, sess)

	//====== Upstream 409 passes the status through ==========
	s, fb, _ = initTestServer(t)
	fb.RespondJSON(http.MethodPost, professional.Login, http.StatusConflict, gin.H{})

	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/login", LoginData{Email: "ada@example.com", Password: "Secret1!"})
	s.handleLogin(g)

	assert.Equal(t, http.StatusConflict, response.Code)
	assert.Equal(t, constants.ErrMsgEmailExists, lastNotification(t, s.presenter).Message)

	//====== Non-json success body is a bad gateway ==========
	s, fb, store = initTestServer(t)
	fb.Engine.POST(professional.Login, func(g *gin.Context) {
		g.Data(http.StatusOK, "text/html", []byte("<html>captive portal</html>"))
	})

	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/login", LoginData{Email: "ada@example.com", Password: "Secret1!"})
	s.handleLogin(g)

	assert.Equal(t, http.StatusBadGateway, response.Code)
	errResp := ErrorResponse{}
	decode(t, response.Body, &errResp)
	assert.Equal(t, constants.ErrMsgServer, errResp.Error)

	sess, err = store.Load(ctx)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	s, fb, store := initTestServer(t)
	require.NoError(t, store.Save(ctx, session.Session{AccessToken: "a", RefreshToken: "r", ActorKind: session.ActorProfessional}))
	fb.RespondJSON(http.MethodPost, professional.Logout, http.StatusInternalServerError, gin.H{})

	g, response := testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/logout", nil)
	s.handleLogout(g)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, constants.MsgLogoutSuccess, lastNotification(t, s.presenter).Message)

	sess, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Nil(t, sess)

	requests := fb.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "Bearer a", requests[0].Authorization)
}

func TestForgotPassword(t *testing.T) {
	//====== Email must be entered first ==========
	s, fb, _ := initTestServer(t)

	g, response := testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/forgot-password", EmailData{})
	s.handleForgotPassword(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Equal(t, constants.ErrMsgEmailFirst, lastNotification(t, s.presenter).Message)
	assert.Empty(t, fb.Requests())

	//====== Sent ==========
	fb.RespondJSON(http.MethodPost, professional.ForgotPassword, http.StatusOK, gin.H{"success": true})

	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/forgot-password", EmailData{Email: "ada@example.com"})
	s.handleForgotPassword(g)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, constants.MsgPasswordResetSent, lastNotification(t, s.presenter).Message)

	//====== Upstream failure uses the reset message ==========
	s, fb, _ = initTestServer(t)
	fb.RespondJSON(http.MethodPost, professional.ForgotPassword, http.StatusInternalServerError, gin.H{})

	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/forgot-password", EmailData{Email: "ada@example.com"})
	s.handleForgotPassword(g)

	assert.Equal(t, http.StatusInternalServerError, response.Code)
	assert.Equal(t, constants.ErrMsgResetEmailFailed, lastNotification(t, s.presenter).Message)
}

func TestResetPasswordAndVerify(t *testing.T) {
	s, fb, _ := initTestServer(t)
	fb.RespondJSON(http.MethodPost, professional.ResetPassword, http.StatusOK, gin.H{"success": true})
	fb.RespondJSON(http.MethodGet, professional.VerifyEmail, http.StatusOK, gin.H{"success": true})

	//====== Weak password never reaches the backend ==========
	g, response := testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/reset-password", ResetPasswordData{Token: "t", Password: "short"})
	s.handleResetPassword(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Equal(t, constants.ErrMsgPasswordWeak, lastNotification(t, s.presenter).Message)
	assert.Empty(t, fb.Requests())

	//====== Reset ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/reset-password", ResetPasswordData{Token: "t", Password: "Secret1!"})
	s.handleResetPassword(g)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, constants.MsgPasswordResetSuccess, lastNotification(t, s.presenter).Message)

	//====== Verify ==========
	g, response = testhelpers.NewGinTestContext()
	g.Request = httptest.NewRequest(http.MethodGet, "/verify-email?token=abc", nil)
	s.handleVerifyEmail(g)

	assert.Equal(t, http.StatusOK, response.Code)
	requests := fb.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "abc", requests[1].Query.Get("token"))
}

func TestOAuthRedirects(t *testing.T) {
	s, fb, _ := initTestServer(t)

	g, response := testhelpers.NewGinTestContext()
	g.Request = httptest.NewRequest(http.MethodGet, "/auth/google?actor=user", nil)
	s.handleGoogleAuth(g)

	assert.Equal(t, http.StatusFound, response.Code)
	location, err := url.Parse(response.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, constants.UserEndpoints.GoogleAuth, location.Path)
	assert.Equal(t, "http://client.test/auth/callback", location.Query().Get("redirect_uri"))
	assert.Empty(t, fb.Requests())

	g, response = testhelpers.NewGinTestContext()
	g.Request = httptest.NewRequest(http.MethodGet, "/auth/apple", nil)
	s.handleAppleAuth(g)

	assert.Equal(t, http.StatusNotImplemented, response.Code)
	assert.Equal(t, constants.ErrMsgAppleUnavailable, lastNotification(t, s.presenter).Message)
}

func vetSteps() []url.Values {
	return []url.Values{
		{
			"first_name":    {"Ada"},
			"last_name":     {"Lovelace"},
			"email":         {"ada@example.com"},
			"mobile_number": {"5551234567"},
			"password":      {"Secret1!"},
		},
		{
			"license_number": {"VET-1234"},
			"specialization": {"surgery"},
		},
		{
			"city":        {"Calgary"},
			"tue_morning": {"on"},
		},
	}
}

func TestRegistration(t *testing.T) {
	//====== Submit without a profession ==========
	s, fb, _ := initTestServer(t)
	fb.RespondJSON(http.MethodPost, professional.Register, http.StatusCreated, gin.H{"success": true, "message": "Registered"})

	g, response := testhelpers.NewGinTestContext()
	testhelpers.SetTestFormPostRequest(g, "/register/submit", url.Values{"terms": {"on"}})
	s.handleRegisterSubmit(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Equal(t, constants.ErrMsgSelectProvider, lastNotification(t, s.presenter).Message)
	assert.Empty(t, fb.Requests())

	//====== Next without a profession ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestFormPostRequest(g, "/register/next", url.Values{"email": {"ada@example.com"}})
	s.handleRegisterNext(g)

	assert.Equal(t, http.StatusConflict, response.Code)

	//====== Unknown profession ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/register/profession", ProfessionData{Provider: "astronaut"})
	s.handleSelectProfession(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)

	//====== Select ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/register/profession", ProfessionData{Provider: "vet"})
	s.handleSelectProfession(g)

	require.Equal(t, http.StatusOK, response.Code)
	view := wizard.View{}
	decode(t, response.Body, &view)
	assert.Equal(t, wizard.ProviderVet, view.Provider)
	assert.Equal(t, 1, view.State.CurrentStep)
	assert.Equal(t, 4, view.State.TotalSteps)

	//====== Next with a missing required field stays put ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestFormPostRequest(g, "/register/next", url.Values{"first_name": {"Ada"}})
	s.handleRegisterNext(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	errResp := ErrorResponse{}
	decode(t, response.Body, &errResp)
	assert.Equal(t, "last_name", errResp.Field)
	assert.Equal(t, "Last Name is required", lastNotification(t, s.presenter).Message)

	//====== Walk every step ==========
	for i, values := range vetSteps() {
		g, response = testhelpers.NewGinTestContext()
		testhelpers.SetTestFormPostRequest(g, "/register/next", values)
		s.handleRegisterNext(g)

		require.Equal(t, http.StatusOK, response.Code, response.Body.String())
		view = wizard.View{}
		decode(t, response.Body, &view)
		assert.Equal(t, i+2, view.State.CurrentStep)
	}

	//====== Prev and back ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/register/prev", nil)
	s.handleRegisterPrev(g)

	view = wizard.View{}
	decode(t, response.Body, &view)
	assert.Equal(t, 3, view.State.CurrentStep)
	assert.Equal(t, []int{1, 2, 3}, view.State.Completed)

	g, _ = testhelpers.NewGinTestContext()
	testhelpers.SetTestFormPostRequest(g, "/register/next", url.Values{})
	s.handleRegisterNext(g)

	//====== Terms are required on submit ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestFormPostRequest(g, "/register/submit", url.Values{})
	s.handleRegisterSubmit(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.True(t, lastNotification(t, s.presenter).Critical)
	assert.Empty(t, fb.Requests())

	//====== Submit ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestFormPostRequest(g, "/register/submit", url.Values{"terms": {"on"}})
	s.handleRegisterSubmit(g)

	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())
	regResp := RegistrationResponse{}
	decode(t, response.Body, &regResp)
	assert.Equal(t, "Registered", regResp.Message)
	assert.True(t, regResp.View.Submitted)
	assert.Equal(t, constants.MsgRegistrationSuccess, lastNotification(t, s.presenter).Message)

	requests := fb.Requests()
	require.Len(t, requests, 1)
	body := requests[0].Body
	assert.Equal(t, "veterinarian", body["profession_type"])
	assert.Equal(t, "Ada", body["first_name"])
	assert.Equal(t, "Calgary", body["city"])
	assert.Equal(t, map[string]interface{}{"available": false}, body["emergency_services"])
	assert.Equal(t, []interface{}{"morning"}, body["availability"].(map[string]interface{})["tue"])
	_, hasClinic := body["affiliated_clinic"]
	assert.False(t, hasClinic)

	//====== Inert after submit ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/register/cancel", nil)
	s.handleRegisterCancel(g)

	assert.Equal(t, http.StatusConflict, response.Code)
}

func TestLocate(t *testing.T) {
	s, fb, _ := initTestServer(t)
	fb.RespondJSON(http.MethodGet, "/reverse", http.StatusOK, gin.H{"address": gin.H{"village": "Bragg Creek", "country": "Canada"}})

	//====== Coordinates are required ==========
	g, response := testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/register/locate", gin.H{"lat": 51.0})
	s.handleLocate(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)

	//====== City written into the active form ==========
	require.NoError(t, s.registration.SelectProfession(wizard.ProviderSitter))

	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/register/locate", gin.H{"lat": 50.95, "lon": -114.57})
	s.handleLocate(g)

	require.Equal(t, http.StatusOK, response.Code, response.Body.String())
	locResp := LocateResponse{}
	decode(t, response.Body, &locResp)
	assert.Equal(t, "Bragg Creek, Canada", locResp.Label)
	assert.Equal(t, constants.MsgLocationDetected, lastNotification(t, s.presenter).Message)

	//====== Geocoder without a city ==========
	s, fb, _ = initTestServer(t)
	fb.RespondJSON(http.MethodGet, "/reverse", http.StatusOK, gin.H{"address": gin.H{"country": "Canada"}})
	require.NoError(t, s.registration.SelectProfession(wizard.ProviderSitter))

	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/register/locate", gin.H{"lat": 0, "lon": 0})
	s.handleLocate(g)

	assert.Equal(t, http.StatusBadGateway, response.Code)
	assert.Equal(t, constants.ErrMsgLocationFailed, lastNotification(t, s.presenter).Message)
}

func addUpload(t *testing.T, w *multipart.Writer, name string, contentType string, content []byte) {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="documents"; filename="`+name+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
}

func TestUploadPreview(t *testing.T) {
	s, _, _ := initTestServer(t)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	addUpload(t, w, "avatar.png", "", []byte("\x89PNG\r\n\x1a\n0000"))
	addUpload(t, w, "license.pdf", "application/pdf", []byte("%PDF-1.4"))
	addUpload(t, w, "intro.mp4", "video/mp4", []byte("0000"))
	addUpload(t, w, "notes.txt", "text/plain; charset=utf-8", []byte("hello"))
	require.NoError(t, w.Close())

	g, response := testhelpers.NewGinTestContext()
	g.Request = httptest.NewRequest(http.MethodPost, "/uploads/preview", body)
	g.Request.Header.Set("Content-Type", w.FormDataContentType())
	s.handleUploadPreview(g)

	require.Equal(t, http.StatusOK, response.Code, response.Body.String())
	previews := []UploadPreview{}
	decode(t, response.Body, &previews)
	require.Len(t, previews, 4)

	kinds := []string{}
	for _, p := range previews {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []string{PreviewImage, PreviewPDF, PreviewVideo, PreviewFile}, kinds)
	assert.Equal(t, "image/png", previews[0].ContentType)

	//====== Not multipart ==========
	g, response = testhelpers.NewGinTestContext()
	testhelpers.SetTestJsonPostRequest(g, "/uploads/preview", gin.H{})
	s.handleUploadPreview(g)

	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestNotificationRoutes(t *testing.T) {
	fb := testhelpers.NewFakeBackend(t)
	presenter := notify.New()
	defer presenter.HideAll()

	router, err := NewRouter(Deps{
		API:       apiclient.New(fb.URL, time.Second, session.NewKVStore(session.NewMemoryKV()), nil),
		Presenter: presenter,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(MaxUploadMemory), router.MaxMultipartMemory)

	first := presenter.Info("one")
	presenter.Warning("two")

	response := httptest.NewRecorder()
	router.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/notifications", nil))

	list := []NotificationData{}
	decode(t, response.Body, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Message)
	assert.Equal(t, int64(3000), list[0].DismissMs)

	//====== Hide one, twice ==========
	for i := 0; i < 2; i++ {
		response = httptest.NewRecorder()
		router.ServeHTTP(response, httptest.NewRequest(http.MethodDelete, "/notifications/"+first, nil))
		assert.Equal(t, http.StatusNoContent, response.Code)
	}
	assert.Equal(t, 1, presenter.Len())

	//====== Hide all ==========
	response = httptest.NewRecorder()
	router.ServeHTTP(response, httptest.NewRequest(http.MethodDelete, "/notifications", nil))
	assert.Equal(t, http.StatusNoContent, response.Code)
	assert.Equal(t, 0, presenter.Len())

	//====== Liveness ==========
	response = httptest.NewRecorder()
	router.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "furglo-web", response.Body.String())
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apiclient.ErrSessionExpired, http.StatusUnauthorized},
		{errors.Wrap(apiclient.ErrTimeout, "login"), http.StatusGatewayTimeout},
		{&apiclient.NetworkError{Err: errors.New("refused")}, http.StatusBadGateway},
		{&apiclient.HTTPError{Status: http.StatusForbidden}, http.StatusForbidden},
		{&apiclient.HTTPError{Status: http.StatusOK}, http.StatusBadGateway},
		{&apiclient.ResponseError{Message: "no"}, http.StatusBadRequest},
		{wizard.ErrSubmitInFlight, http.StatusConflict},
		{wizard.ErrLastStep, http.StatusConflict},
		{errors.Wrap(wizard.ErrUnknownProvider, "x"), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equal(t, c.status, statusFor(c.err), c.err.Error())
	}

	_, err := newServer(Deps{})
	assert.Error(t, err)
}
