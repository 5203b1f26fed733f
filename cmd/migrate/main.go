package main

import (
	"flag"
	"os"

	"github.com/ataboo/go-furglo-web/pkg/common"
	"github.com/ataboo/go-furglo-web/pkg/dbcontext"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := common.LoadEnv(); err != nil {
		logrus.WithError(err).Warn("no .env file loaded")
	}

	up := flag.Bool("up", false, "run the up migrations")
	down := flag.Bool("down", false, "run the down migrations")
	force := flag.Int("force", 0, "force the migration to a specific version")
	flag.Parse()

	db, err := dbcontext.InitBoilerDb(os.Getenv(common.EnvDbConnectionString))
	if err != nil {
		logrus.Fatal(err)
	}
	defer db.Close()

	m, err := dbcontext.NewMigrator(db)
	if err != nil {
		logrus.Fatal(err)
	}

	if *up {
		logrus.Info("Running migration up...")
		if err := m.Up(); err != nil {
			logrus.Fatal(err)
		}
	}

	if *down {
		logrus.Info("Running migration down...")
		if err := m.Down(); err != nil {
			logrus.Fatal(err)
		}
	}

	if *force != 0 {
		logrus.Infof("Forcing migration to %d...", *force)
		if err := m.Force(*force); err != nil {
			logrus.Fatal(err)
		}
	}
}
