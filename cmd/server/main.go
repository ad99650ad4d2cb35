package main

import (
	"context"
	"errors"
	"flag"
	"homegame-server/internal/config"
	"homegame-server/internal/jwt"
	"homegame-server/internal/mux"
	"homegame-server/pkg/db"
	"homegame-server/pkg/handrank"
	"homegame-server/pkg/history"
	"homegame-server/pkg/room"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const dbTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the configuration")

func main() {
	flag.Parse()
	if err := config.Load(); err != nil {
		logrus.WithError(err).Fatal("could not load configuration")
	}

	setupLogger()

	opts := room.OptionsFromConfig()

	// fail fast
	oracle, err := handrank.New(config.Instance().Oracle)
	if err != nil {
		logrus.WithError(err).Fatal("could not create hand ranking oracle")
	}
	opts.Oracle = oracle

	signer, err := jwt.FromConfig()
	if err != nil {
		logrus.WithError(err).Fatal("could not create seat token signer")
	}
	opts.Tokens = signer

	recorder := setupHistory()
	opts.Recorder = recorder

	pitBoss := room.NewPitBoss(opts)
	pitBoss.StartShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listen := config.Instance().Addr
	if *addr != "" {
		listen = *addr
	}

	srv := &http.Server{
		Addr:         listen,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("addr", srv.Addr).WithField("version", Version).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("could not listen")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("could not shut down cleanly")
	}

	// flush the hands that are still queued
	recorder.Close()
}

// setupHistory records hands to postgres when a DSN is configured
func setupHistory() *history.Async {
	dbh, err := db.Open(context.Background(), dbTimeout)
	if errors.Is(err, db.ErrNotConfigured) {
		logrus.Info("no database configured, hand history is not recorded")
		return history.NewAsync(history.Nop{}, logrus.StandardLogger())
	} else if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	// run the db migrations
	if err := db.Migrate(dbh); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	return history.NewAsync(history.NewPostgres(dbh), logrus.StandardLogger())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(config.Instance().Log.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
