package httpserver

import "net/http"

// Routes groups the handlers served by the router. Protected handlers are
// wrapped with the auth middleware before registration.
type Routes struct {
	Login           http.HandlerFunc
	StartSession    http.HandlerFunc
	EndSession      http.HandlerFunc
	Sessions        http.HandlerFunc
	FilteredSession http.HandlerFunc
	Vehicle         http.HandlerFunc
	VehicleHistory  http.HandlerFunc
	VehicleSearch   http.HandlerFunc
	Aggregates      http.HandlerFunc
	StationStats    http.HandlerFunc
	Health          http.HandlerFunc
}

// NewRouter wires all HTTP routes. The auth middleware is applied to every
// route except login and health.
func NewRouter(routes Routes, auth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	protect := func(h http.HandlerFunc) http.HandlerFunc {
		if auth == nil {
			return h
		}
		return auth(h).ServeHTTP
	}

	if routes.Login != nil {
		mux.Handle("/api/login", method(http.MethodPost, routes.Login))
	}
	if routes.StartSession != nil {
		mux.Handle("/api/sessions/start", method(http.MethodPost, protect(routes.StartSession)))
	}
	if routes.EndSession != nil {
		mux.Handle("/api/sessions/end", method(http.MethodPost, protect(routes.EndSession)))
	}
	if routes.Sessions != nil {
		mux.Handle("/api/sessions", method(http.MethodGet, protect(routes.Sessions)))
	}
	if routes.FilteredSession != nil {
		mux.Handle("/api/sessions/filtered", method(http.MethodGet, protect(routes.FilteredSession)))
	}
	if routes.VehicleSearch != nil {
		mux.Handle("/api/vehicles/search", method(http.MethodGet, protect(routes.VehicleSearch)))
	}
	if routes.Vehicle != nil {
		mux.Handle("/api/vehicles/{vehicle_no}", method(http.MethodGet, protect(routes.Vehicle)))
	}
	if routes.VehicleHistory != nil {
		mux.Handle("/api/vehicles/{vehicle_no}/history", method(http.MethodGet, protect(routes.VehicleHistory)))
	}
	if routes.Aggregates != nil {
		mux.Handle("/api/reports/aggregates", method(http.MethodGet, protect(routes.Aggregates)))
	}
	if routes.StationStats != nil {
		mux.Handle("/api/stats/station/{station_name}", method(http.MethodGet, protect(routes.StationStats)))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
