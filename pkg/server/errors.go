package server

import (
	"net/http"

	"github.com/ataboo/go-furglo-web/pkg/apiclient"
	"github.com/ataboo/go-furglo-web/pkg/validation"
	"github.com/ataboo/go-furglo-web/pkg/wizard"
	"github.com/friendsofgo/errors"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	cause := errors.Cause(err)

	switch cause.(type) {
	case *validation.Error:
		return http.StatusBadRequest
	case *apiclient.ResponseError:
		return http.StatusBadRequest
	}

	switch {
	case apiclient.IsSessionExpired(err):
		return http.StatusUnauthorized
	case apiclient.IsTimeout(err):
		return http.StatusGatewayTimeout
	case apiclient.IsNetwork(err):
		return http.StatusBadGateway
	case apiclient.StatusOf(err) >= http.StatusBadRequest:
		return apiclient.StatusOf(err)
	case apiclient.StatusOf(err) != 0:
		return http.StatusBadGateway
	}

	switch cause {
	case wizard.ErrUnknownProvider:
		return http.StatusBadRequest
	case wizard.ErrNoProfession, wizard.ErrNotFinalStep, wizard.ErrSubmitted,
		wizard.ErrSubmitInFlight, wizard.ErrFirstStep, wizard.ErrLastStep:
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

func errorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: apiclient.Message(err)}
	if vErr, ok := errors.Cause(err).(*validation.Error); ok {
		resp.Field = vErr.Field
	}

	return resp
}

// respondError writes err without notifying; callers that already surfaced
// the message use this directly.
func (s *Server) respondError(g *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", g.Request.URL.Path).Error("request failed")
	}

	g.AbortWithStatusJSON(status, errorResponse(err))
}

// fail surfaces err through the presenter and writes it.
func (s *Server) fail(g *gin.Context, err error) {
	s.presenter.Error(apiclient.Message(err))
	s.respondError(g, err)
}
