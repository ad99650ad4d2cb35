package main

import (
	"context"
	"homegame-server/pkg/db"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	dbh, err := db.Open(context.Background(), time.Second*10)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}
	defer dbh.Close()

	if err := db.Migrate(dbh); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}
}
