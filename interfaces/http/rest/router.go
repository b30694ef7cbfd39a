// Package rest wires the chi router: global middleware, the public login
// endpoint and the authenticated restaurant routes.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"tastetrail-backend/interfaces/http/rest/handlers"
	"tastetrail-backend/interfaces/http/rest/middleware"
	"tastetrail-backend/pkg/auth"
	"tastetrail-backend/pkg/observability"
)

// Router creates and configures the HTTP router.
type Router struct {
	authHandler       *handlers.AuthHandler
	restaurantHandler *handlers.RestaurantHandler
	reviewHandler     *handlers.ReviewHandler
	validator         *auth.JWTValidator
	metrics           *observability.Metrics
	// trustGatewayHeaders is only set behind the Lambda entrypoint, which
	// strips inbound identity headers before re-deriving them from verified
	// authorizer claims. The local server must never set it.
	trustGatewayHeaders bool
	enableCORS          bool
	logger              *zap.Logger
}

// NewRouter creates a new router instance.
func NewRouter(
	authHandler *handlers.AuthHandler,
	restaurantHandler *handlers.RestaurantHandler,
	reviewHandler *handlers.ReviewHandler,
	validator *auth.JWTValidator,
	metrics *observability.Metrics,
	trustGatewayHeaders bool,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:         authHandler,
		restaurantHandler:   restaurantHandler,
		reviewHandler:       reviewHandler,
		validator:           validator,
		metrics:             metrics,
		trustGatewayHeaders: trustGatewayHeaders,
		enableCORS:          enableCORS,
		logger:              logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger, rt.metrics))

	if rt.enableCORS {
		// Permissive CORS with credentials; the API serves a single-page app
		// whose origin varies per deployment.
		router.Use(cors.Handler(cors.Options{
			AllowOriginFunc: func(r *http.Request, origin string) bool {
				return true
			},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)

	router.Post("/auth/login", rt.authHandler.Login)

	router.Route("/restaurants", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.trustGatewayHeaders, rt.logger))

		r.Post("/", rt.restaurantHandler.CreateRestaurant)
		r.Get("/", rt.restaurantHandler.ListRestaurants)
		r.Get("/{restaurantID}", rt.restaurantHandler.GetRestaurant)
		r.Put("/{restaurantID}", rt.restaurantHandler.UpdateRestaurant)
		r.Put("/{restaurantID}/rating", rt.restaurantHandler.UpdateRating)
		r.Post("/{restaurantID}/reviews", rt.reviewHandler.AddReview)
		r.Get("/{restaurantID}/reviews", rt.reviewHandler.ListReviews)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
