package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"ptalk-server/server/handlers"
	"ptalk-server/server/middleware"
)

// Handlers groups the endpoint handlers mounted by the Router.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Merchant   *handlers.MerchantHandler
	Venue      *handlers.VenueHandler
	Comment    *handlers.CommentHandler
	Tag        *handlers.TagHandler
	SmartPaste *handlers.SmartPasteHandler
}

type Router struct {
	handlers      Handlers
	authenticator middleware.Authenticator
	rateLimiter   *middleware.RateLimiter
	router        *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	h Handlers,
	authenticator middleware.Authenticator,
	rateLimiter *middleware.RateLimiter,
	router *mux.Router) *Router {
	return &Router{
		handlers:      h,
		authenticator: authenticator,
		rateLimiter:   rateLimiter,
		router:        router,
	}
}

func (r *Router) RegisterRoutes() {
	requireAuth := middleware.RequireAuth(r.authenticator)
	if r.rateLimiter != nil {
		r.router.Use(r.rateLimiter.Middleware)
	}

	r.router.HandleFunc("/ping", r.handlers.Venue.Ping).Methods("GET")

	auth := r.router.PathPrefix("/v1/auth").Subrouter()
	auth.HandleFunc("/login", r.handlers.Auth.Login).Methods("POST")
	auth.HandleFunc("/register", r.handlers.Auth.Register).Methods("POST")
	auth.HandleFunc("/refresh", r.handlers.Auth.Refresh).Methods("POST")
	auth.Handle("/logout", requireAuth(http.HandlerFunc(r.handlers.Auth.Logout))).Methods("POST")

	v1 := r.router.PathPrefix("/v1").Subrouter()
	v1.Use(requireAuth)

	v1.HandleFunc("/merchant/profile", r.handlers.Merchant.GetProfile).Methods("GET")
	v1.HandleFunc("/merchant/profile", r.handlers.Merchant.UpdateProfile).Methods("PUT")
	v1.HandleFunc("/merchant/change-password", r.handlers.Merchant.ChangePassword).Methods("POST")

	// expects ?status=all|active|pending|closed&keyword=&page=&pageSize=
	v1.HandleFunc("/venues", r.handlers.Venue.ListVenues).Methods("GET")
	v1.HandleFunc("/venues/stats", r.handlers.Venue.GetStats).Methods("GET")
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float)}
	v1.HandleFunc("/venues/nearby", r.handlers.Venue.GetVenuesNearby).Methods("GET")
	v1.HandleFunc("/venues/map", r.handlers.Venue.GetVenueMap).Methods("GET")
	v1.HandleFunc("/venues/{id}", r.handlers.Venue.GetVenue).Methods("GET")
	v1.HandleFunc("/venues/{id}", r.handlers.Venue.UpdateVenue).Methods("PUT")
	v1.HandleFunc("/venues/{id}", r.handlers.Venue.DeleteVenue).Methods("DELETE")
	v1.HandleFunc("/venues/{id}/toggle-status", r.handlers.Venue.ToggleStatus).Methods("POST")
	v1.HandleFunc("/venues/{id}/opening-hours/preview", r.handlers.Venue.PreviewOpeningHours).Methods("POST")
	v1.HandleFunc("/venues/{id}/opening-hours/apply", r.handlers.Venue.ApplyOpeningHours).Methods("POST")
	v1.HandleFunc("/venues/{id}/opening-hours/quick-set", r.handlers.Venue.QuickSetOpeningHours).Methods("POST")
	v1.HandleFunc("/venues/{id}/location/parse", r.handlers.Venue.ParseLocation).Methods("POST")
	v1.HandleFunc("/venues/{id}/comments", r.handlers.Comment.ListComments).Methods("GET")
	v1.HandleFunc("/tags", r.handlers.Tag.ListTags).Methods("GET")

	v1.HandleFunc("/smart-paste/opening-hours", r.handlers.SmartPaste.ParseOpeningHours).Methods("POST")
	v1.HandleFunc("/smart-paste/coordinate", r.handlers.SmartPaste.ParseCoordinate).Methods("POST")
	v1.HandleFunc("/smart-paste/register", r.handlers.SmartPaste.ParseRegister).Methods("POST")
}
