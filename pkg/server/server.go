package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/cidadeviva/edu-admissions/pkg/authenticator"
	"github.com/cidadeviva/edu-admissions/pkg/config"
	"github.com/cidadeviva/edu-admissions/pkg/evaluation"
	"github.com/cidadeviva/edu-admissions/pkg/guard"
	"github.com/cidadeviva/edu-admissions/pkg/notify"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.Config

	Guard  *guard.Guard
	Writer *evaluation.Writer
	Mailer notify.Mailer

	// Authenticators backs the alternative sign-in routes; nil means
	// password login only.
	Authenticators *authenticator.Registry

	ProfilesStore     store.ProfilesStore
	SessionsStore     store.SessionsStore
	ApplicationsStore store.ApplicationsStore
	ReviewsStore      store.ReviewsStore
	HealthStore       store.HealthStore

	srv *http.Server
}

func NewServer(
	db *gorm.DB,
	cfg *config.Config,
	g *guard.Guard,
	writer *evaluation.Writer,
	mailer notify.Mailer,
	profiles store.ProfilesStore,
	sessions store.SessionsStore,
	applications store.ApplicationsStore,
	reviews store.ReviewsStore,
	health store.HealthStore,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:            router,
		DB:                db,
		Config:            cfg,
		Guard:             g,
		Writer:            writer,
		Mailer:            mailer,
		ProfilesStore:     profiles,
		SessionsStore:     sessions,
		ApplicationsStore: applications,
		ReviewsStore:      reviews,
		HealthStore:       health,
		srv:               srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
