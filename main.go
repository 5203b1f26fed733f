package main

import (
	"context"

	"github.com/ataboo/go-furglo-web/pkg/apiclient"
	"github.com/ataboo/go-furglo-web/pkg/common"
	"github.com/ataboo/go-furglo-web/pkg/geocode"
	"github.com/ataboo/go-furglo-web/pkg/notify"
	"github.com/ataboo/go-furglo-web/pkg/server"
	"github.com/ataboo/go-furglo-web/pkg/session"
	"github.com/ataboo/go-furglo-web/pkg/wizard"
	"github.com/sirupsen/logrus"
)

func main() {
	common.MustLoadEnv()

	cfg, err := common.LoadConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logger := common.NewLogger(cfg.LogLevel)

	store, closer, err := session.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer closer.Close()

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, store, logger, apiclient.WithRedirectURI(cfg.OAuthRedirectURI))
	presenter := notify.New()

	deps := server.Deps{
		API:          api,
		Geocoder:     geocode.New(cfg.GeocoderBaseURL, cfg.APITimeout, logger),
		Presenter:    presenter,
		Registration: wizard.NewRegistration(api, presenter, logger),
		Logger:       logger,
	}

	if err := server.StartServer(cfg, deps); err != nil {
		logger.Fatal(err)
	}
}
