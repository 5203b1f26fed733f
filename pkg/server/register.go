package server

import (
	"net/http"

	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/ataboo/go-furglo-web/pkg/wizard"
	"github.com/friendsofgo/errors"
	"github.com/gin-gonic/gin"
)

// wizardError writes a wizard failure. Validation and registration failures
// were already surfaced by the controller.
func (s *Server) wizardError(g *gin.Context, err error) {
	if errors.Cause(err) == wizard.ErrNoProfession {
		s.presenter.Error(constants.ErrMsgSelectProvider)
	}

	s.respondError(g, err)
}

func (s *Server) mergeForm(g *gin.Context) error {
	if err := g.Request.ParseForm(); err != nil {
		return err
	}

	if len(g.Request.PostForm) == 0 {
		return nil
	}

	return s.registration.Merge(g.Request.PostForm)
}

func (s *Server) handleRegisterView(g *gin.Context) {
	g.JSON(http.StatusOK, s.registration.View())
}

func (s *Server) handleSelectProfession(g *gin.Context) {
	data := ProfessionData{}
	if err := g.ShouldBind(&data); err != nil {
		g.AbortWithStatus(http.StatusBadRequest)
		return
	}

	provider, err := wizard.ParseProviderType(data.Provider)
	if err != nil {
		s.presenter.Error(constants.ErrMsgSelectProvider)
		s.respondError(g, err)
		return
	}

	if err := s.registration.SelectProfession(provider); err != nil {
		s.wizardError(g, err)
		return
	}

	g.JSON(http.StatusOK, s.registration.View())
}

func (s *Server) handleRegisterNext(g *gin.Context) {
	if err := s.mergeForm(g); err != nil {
		s.wizardError(g, err)
		return
	}

	if err := s.registration.Next(); err != nil {
		s.wizardError(g, err)
		return
	}

	g.JSON(http.StatusOK, s.registration.View())
}

func (s *Server) handleRegisterPrev(g *gin.Context) {
	if err := s.registration.Prev(); err != nil {
		s.wizardError(g, err)
		return
	}

	g.JSON(http.StatusOK, s.registration.View())
}

func (s *Server) handleRegisterSubmit(g *gin.Context) {
	if err := s.mergeForm(g); err != nil && errors.Cause(err) != wizard.ErrNoProfession {
		s.wizardError(g, err)
		return
	}

	resp, err := s.registration.Submit(g.Request.Context())
	if err != nil {
		s.respondError(g, err)
		return
	}

	message := constants.MsgRegistrationSuccess
	if resp != nil && resp.Message != "" {
		message = resp.Message
	}

	g.JSON(http.StatusCreated, RegistrationResponse{
		Message: message,
		View:    s.registration.View(),
	})
}

func (s *Server) handleRegisterCancel(g *gin.Context) {
	if err := s.registration.Cancel(); err != nil {
		s.wizardError(g, err)
		return
	}

	g.JSON(http.StatusOK, s.registration.View())
}

func (s *Server) handleLocate(g *gin.Context) {
	data := LocateData{}
	if err := g.ShouldBindJSON(&data); err != nil || data.Latitude == nil || data.Longitude == nil {
		g.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Latitude and longitude are required."})
		return
	}

	if s.geocoder == nil {
		s.presenter.Error(constants.ErrMsgLocationFailed)
		g.AbortWithStatusJSON(http.StatusNotImplemented, ErrorResponse{Error: constants.ErrMsgLocationFailed})
		return
	}

	place, err := s.geocoder.Reverse(g.Request.Context(), *data.Latitude, *data.Longitude)
	if err != nil {
		s.log.WithError(err).Warn("reverse geocoding failed")
		s.presenter.Error(constants.ErrMsgLocationFailed)
		g.AbortWithStatusJSON(http.StatusBadGateway, ErrorResponse{Error: constants.ErrMsgLocationFailed, Field: "city"})
		return
	}

	if err := s.registration.SetCity(place.Label()); err != nil {
		s.wizardError(g, err)
		return
	}

	s.presenter.Success(constants.MsgLocationDetected)

	g.JSON(http.StatusOK, LocateResponse{
		City:    place.City,
		Country: place.Country,
		Label:   place.Label(),
		View:    s.registration.View(),
	})
}
