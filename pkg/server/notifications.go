package server

import (
	"net/http"

	"github.com/ataboo/go-furglo-web/pkg/notify"
	"github.com/gin-gonic/gin"
)

func notificationData(n notify.Notification) NotificationData {
	return NotificationData{
		ID:        n.ID,
		Severity:  string(n.Severity),
		Message:   n.Message,
		Critical:  n.Critical,
		DismissMs: n.AutoDismissAfter.Milliseconds(),
		CreatedAt: n.CreatedAt,
	}
}

func (s *Server) handleListNotifications(g *gin.Context) {
	list := s.presenter.List()

	out := make([]NotificationData, len(list))
	for i, n := range list {
		out[i] = notificationData(n)
	}

	g.JSON(http.StatusOK, out)
}

func (s *Server) handleHideNotification(g *gin.Context) {
	s.presenter.Hide(g.Param("id"))

	g.Status(http.StatusNoContent)
}

func (s *Server) handleHideAllNotifications(g *gin.Context) {
	s.presenter.HideAll()

	g.Status(http.StatusNoContent)
}
