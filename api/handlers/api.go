package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/linesmerrill/training-calendar-api/api"
	"github.com/linesmerrill/training-calendar-api/api/scheduler"
	"github.com/linesmerrill/training-calendar-api/config"
	"github.com/linesmerrill/training-calendar-api/databases"
	"github.com/linesmerrill/training-calendar-api/models"
	"github.com/linesmerrill/training-calendar-api/notifier"
	"github.com/linesmerrill/training-calendar-api/registration"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router       *mux.Router
	Config       config.Config
	Metrics      *api.Metrics
	Registration *registration.Service
	Scheduler    *scheduler.Scheduler

	client   databases.ClientHelper
	dbHelper databases.DatabaseHelper
	limiter  *api.RateLimiter
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Metrics == nil {
		a.Metrics = api.NewMetrics()
	}
	if a.limiter == nil {
		a.limiter = api.NewRateLimiter(rate.Limit(a.Config.RateLimitRPS), a.Config.RateLimitBurst)
	}
	timeout := a.Config.RequestTimeout
	if timeout <= 0 {
		timeout = api.QueryTimeout
	}

	r := mux.NewRouter()
	r.Use(a.Metrics.Middleware, api.TimeoutMiddleware(timeout))

	// healthchex
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	r.Handle("/metrics", a.Metrics.Handler()).Methods("GET")

	reg := Registration{Service: a.Registration}
	users := r.PathPrefix("/api/v1/users").Subrouter()
	users.Handle("/register", a.limiter.Limit(http.HandlerFunc(reg.RegisterHandler))).Methods("POST")
	users.Handle("/verify-otp", a.limiter.Limit(http.HandlerFunc(reg.VerifyOTPHandler))).Methods("POST")
	users.Handle("/resend-otp", a.limiter.Limit(http.HandlerFunc(reg.ResendOTPHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database, wire the
// registration service and reminder scheduler, and create a router
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("training-calendar-api has connected to the database")

	udb := databases.NewUserDatabase(a.dbHelper)
	if err := udb.EnsureIndexes(ctx); err != nil {
		zap.S().With(err).Error("failed to create user indexes")
		return err
	}

	mailer, err := notifier.New(&a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to configure mail transport")
		return err
	}

	a.Metrics = api.NewMetrics()

	a.Registration = registration.NewService(udb, mailer, registration.Policy{
		CodeTTL:     a.Config.OTPTTL,
		MaxAttempts: a.Config.OTPMaxAttempts,
	})
	a.Registration.Recorder = a.Metrics

	a.Scheduler = scheduler.NewScheduler(
		databases.NewTrainingDatabase(a.dbHelper),
		mailer,
		a.Config.ReminderSchedule,
		a.Config.ReminderWindowDays,
		a.Config.ReminderLocation,
	)
	a.Scheduler.Recorder = a.Metrics

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Close stops background work and disconnects from the database
func (a *App) Close(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.client != nil {
		return a.client.Disconnect(ctx)
	}
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, models.HealthCheckResponse{
		Alive: true,
	})
}
