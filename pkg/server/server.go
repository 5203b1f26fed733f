package server

import (
	"time"

	"github.com/ataboo/go-furglo-web/pkg/apiclient"
	"github.com/ataboo/go-furglo-web/pkg/common"
	"github.com/ataboo/go-furglo-web/pkg/geocode"
	"github.com/ataboo/go-furglo-web/pkg/notify"
	"github.com/ataboo/go-furglo-web/pkg/session"
	"github.com/ataboo/go-furglo-web/pkg/wizard"
	"github.com/friendsofgo/errors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DashboardPage   = "dashboard.html"
	MaxUploadMemory = 32 << 20
)

type Deps struct {
	API          *apiclient.Client
	Geocoder     *geocode.Client
	Presenter    *notify.Presenter
	Registration *wizard.Registration
	Logger       logrus.FieldLogger
}

type Server struct {
	api          *apiclient.Client
	store        session.Store
	geocoder     *geocode.Client
	presenter    *notify.Presenter
	registration *wizard.Registration
	log          logrus.FieldLogger
	now          func() time.Time
}

func newServer(deps Deps) (*Server, error) {
	if deps.API == nil {
		return nil, errors.New("server requires an api client")
	}

	if deps.Presenter == nil {
		deps.Presenter = notify.New()
	}

	if deps.Logger == nil {
		deps.Logger = common.NopLogger()
	}

	if deps.Registration == nil {
		deps.Registration = wizard.NewRegistration(deps.API, deps.Presenter, deps.Logger)
	}

	return &Server{
		api:          deps.API,
		store:        deps.API.Store(),
		geocoder:     deps.Geocoder,
		presenter:    deps.Presenter,
		registration: deps.Registration,
		log:          deps.Logger.WithField("component", "server"),
		now:          time.Now,
	}, nil
}

func NewRouter(deps Deps) (*gin.Engine, error) {
	s, err := newServer(deps)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.MaxMultipartMemory = MaxUploadMemory
	router.Use(gin.Recovery(), requestLogger(s.log))

	router.GET("/", func(c *gin.Context) {
		c.String(200, "furglo-web")
	})

	router.POST("login", s.handleLogin)
	router.POST("logout", s.handleLogout)
	router.POST("forgot-password", s.handleForgotPassword)
	router.POST("reset-password", s.handleResetPassword)
	router.GET("verify-email", s.handleVerifyEmail)
	router.POST("verify-email/resend", s.handleResendVerification)
	router.GET("session", s.handleSession)
	router.POST("session/refresh", s.handleRefresh)
	router.GET("profile", s.handleProfile)
	router.GET("auth/google", s.handleGoogleAuth)
	router.GET("auth/apple", s.handleAppleAuth)

	registerGroup := router.Group("register")
	registerGroup.GET("", s.handleRegisterView)
	registerGroup.POST("profession", s.handleSelectProfession)
	registerGroup.POST("next", s.handleRegisterNext)
	registerGroup.POST("prev", s.handleRegisterPrev)
	registerGroup.POST("submit", s.handleRegisterSubmit)
	registerGroup.POST("cancel", s.handleRegisterCancel)
	registerGroup.POST("locate", s.handleLocate)

	router.POST("uploads/preview", s.handleUploadPreview)

	router.GET("notifications", s.handleListNotifications)
	router.DELETE("notifications/:id", s.handleHideNotification)
	router.DELETE("notifications", s.handleHideAllNotifications)

	return router, nil
}

func StartServer(cfg *common.Config, deps Deps) error {
	router, err := NewRouter(deps)
	if err != nil {
		return err
	}

	if deps.Logger != nil {
		deps.Logger.WithField("address", cfg.ServerHostname).Info("starting server")
	}

	return router.Run(cfg.ServerHostname)
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(g *gin.Context) {
		start := time.Now()
		g.Next()

		log.WithFields(logrus.Fields{
			"method":  g.Request.Method,
			"path":    g.Request.URL.Path,
			"status":  g.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("handled request")
	}
}
