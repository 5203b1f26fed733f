package server

import (
	"net/http"

	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/ataboo/go-furglo-web/pkg/session"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleLogin(g *gin.Context) {
	data := LoginData{}
	if err := g.ShouldBindJSON(&data); err != nil {
		g.AbortWithStatus(http.StatusBadRequest)
		return
	}

	kind, err := parseActorKind(data.ActorKind)
	if err != nil {
		s.fail(g, err)
		return
	}

	if err := validateLogin(&data); err != nil {
		s.fail(g, err)
		return
	}

	resp, err := s.api.Login(g.Request.Context(), kind, data.Email, data.Password)
	if err != nil {
		s.fail(g, err)
		return
	}

	s.presenter.Success(constants.MsgLoginSuccess)

	g.JSON(http.StatusOK, LoginResponse{
		Message:   constants.MsgLoginSuccess,
		Redirect:  DashboardPage,
		ActorKind: kind,
		Profile:   resp.Data.Profile(),
	})
}

func (s *Server) handleLogout(g *gin.Context) {
	if err := s.api.Logout(g.Request.Context()); err != nil {
		s.fail(g, err)
		return
	}

	s.presenter.Success(constants.MsgLogoutSuccess)

	g.JSON(http.StatusOK, MessageResponse{Message: constants.MsgLogoutSuccess})
}

func (s *Server) handleForgotPassword(g *gin.Context) {
	data := EmailData{}
	if err := g.ShouldBindJSON(&data); err != nil {
		g.AbortWithStatus(http.StatusBadRequest)
		return
	}

	kind, err := parseActorKind(data.ActorKind)
	if err != nil {
		s.fail(g, err)
		return
	}

	if err := validateEmailRequest(&data); err != nil {
		s.fail(g, err)
		return
	}

	if _, err := s.api.ForgotPassword(g.Request.Context(), kind, data.Email); err != nil {
		s.log.WithError(err).Warn("password reset request failed")
		s.presenter.Error(constants.ErrMsgResetEmailFailed)
		s.respondError(g, err)
		return
	}

	s.presenter.Success(constants.MsgPasswordResetSent)

	g.JSON(http.StatusOK, MessageResponse{Message: constants.MsgPasswordResetSent})
}

func (s *Server) handleResetPassword(g *gin.Context) {
	data := ResetPasswordData{}
	if err := g.ShouldBindJSON(&data); err != nil {
		g.AbortWithStatus(http.StatusBadRequest)
		return
	}

	kind, err := parseActorKind(data.ActorKind)
	if err != nil {
		s.fail(g, err)
		return
	}

	if err := validateResetPassword(&data); err != nil {
		s.fail(g, err)
		return
	}

	if _, err := s.api.ResetPassword(g.Request.Context(), kind, data.Token, data.Password); err != nil {
		s.fail(g, err)
		return
	}

	s.presenter.Success(constants.MsgPasswordResetSuccess)

	g.JSON(http.StatusOK, MessageResponse{Message: constants.MsgPasswordResetSuccess})
}

func (s *Server) handleVerifyEmail(g *gin.Context) {
	kind, err := parseActorKind(g.Query("actor"))
	if err != nil {
		s.fail(g, err)
		return
	}

	token := g.Query("token")
	if token == "" {
		g.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Verification token is required.", Field: "token"})
		return
	}

	if _, err := s.api.VerifyEmail(g.Request.Context(), kind, token); err != nil {
		s.fail(g, err)
		return
	}

	s.presenter.Success(constants.MsgEmailVerified)

	g.JSON(http.StatusOK, MessageResponse{Message: constants.MsgEmailVerified})
}

func (s *Server) handleResendVerification(g *gin.Context) {
	data := EmailData{}
	if err := g.ShouldBindJSON(&data); err != nil {
		g.AbortWithStatus(http.StatusBadRequest)
		return
	}

	kind, err := parseActorKind(data.ActorKind)
	if err != nil {
		s.fail(g, err)
		return
	}

	if err := validateEmailRequest(&data); err != nil {
		s.fail(g, err)
		return
	}

	env, err := s.api.ResendVerification(g.Request.Context(), kind, data.Email)
	if err != nil {
		s.fail(g, err)
		return
	}

	message := env.Message
	if message == "" {
		message = "Verification email sent."
	}
	s.presenter.Success(message)

	g.JSON(http.StatusOK, MessageResponse{Message: message})
}

func (s *Server) handleSession(g *gin.Context) {
	sess, err := session.Current(g.Request.Context(), s.store, s.now())
	if err != nil {
		s.respondError(g, err)
		return
	}

	if sess == nil {
		g.JSON(http.StatusOK, SessionResponse{})
		return
	}

	resp := SessionResponse{
		Authenticated: true,
		ActorKind:     sess.ActorKind,
		Profile:       sess.Profile,
	}
	if exp, ok := sess.ExpiresAt(); ok {
		resp.ExpiresAt = exp.Unix()
	}

	g.JSON(http.StatusOK, resp)
}

func (s *Server) handleRefresh(g *gin.Context) {
	if _, err := s.api.RefreshToken(g.Request.Context()); err != nil {
		s.fail(g, err)
		return
	}

	s.handleSession(g)
}

func (s *Server) handleProfile(g *gin.Context) {
	profile, err := s.api.Profile(g.Request.Context())
	if err != nil {
		s.fail(g, err)
		return
	}

	g.JSON(http.StatusOK, profile)
}

func (s *Server) handleGoogleAuth(g *gin.Context) {
	kind, err := parseActorKind(g.Query("actor"))
	if err != nil {
		s.fail(g, err)
		return
	}

	g.Redirect(http.StatusFound, s.api.GoogleAuthURL(kind))
}

func (s *Server) handleAppleAuth(g *gin.Context) {
	s.presenter.Error(constants.ErrMsgAppleUnavailable)

	g.AbortWithStatusJSON(http.StatusNotImplemented, ErrorResponse{Error: constants.ErrMsgAppleUnavailable})
}
