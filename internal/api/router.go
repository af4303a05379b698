package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fitcontest/internal/api/handler"
	"fitcontest/internal/api/middleware"
)

const signupPath = "/api/users"

type Options struct {
	Production     bool
	AllowedOrigins []string
	// RequireAuth gates every write except signup behind a bearer token from TokenAuth.
	RequireAuth bool
	TokenAuth   *jwtauth.JWTAuth
	Logger      *zap.Logger
	Registry    *prometheus.Registry
}

type Dependencies struct {
	Users        handler.UserService
	Contests     handler.ContestStore
	ContestUsers handler.ContestUserStore
	CurrentStats handler.CurrentStatsStore
	Measurements handler.MeasurementStore
	Weighins     handler.WeighinService
	Workouts     handler.WorkoutStore
	Points       handler.PointsService
	Wins         handler.WinStore
}

func NewRouter(opts Options, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.NewMetrics(opts.Registry).Handler)
	r.Use(middleware.RequestLogger(opts.Logger, opts.Production))
	r.Use(middleware.NewErrorResponder(opts.Production, opts.Logger).Handler)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello, world!"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		if opts.RequireAuth {
			api.Use(jwtauth.Verifier(opts.TokenAuth))
			api.Use(middleware.AuthenticateWrites(signupPath))
		}

		api.Route("/users", handler.NewUserHandler(deps.Users).RegisterRoutes)
		api.Route("/contests", handler.NewContestHandler(deps.Contests).RegisterRoutes)
		api.Route("/contesttouser", handler.NewContestUserHandler(deps.ContestUsers).RegisterRoutes)
		api.Route("/currentstats", handler.NewCurrentStatsHandler(deps.CurrentStats).RegisterRoutes)
		api.Route("/measurements", handler.NewMeasurementHandler(deps.Measurements).RegisterRoutes)
		api.Route("/weighins", handler.NewWeighinHandler(deps.Weighins).RegisterRoutes)
		api.Route("/workouts", handler.NewWorkoutHandler(deps.Workouts).RegisterRoutes)
		api.Route("/points", handler.NewPointsHandler(deps.Points).RegisterRoutes)
		api.Route("/wins", handler.NewWinHandler(deps.Wins).RegisterRoutes)
	})

	return r
}
