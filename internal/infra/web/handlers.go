package web

import (
	"encoding/json"
	"net/http"
)

type loginRequest struct {
	Password string `json:"password"`
}

// loginHandler exchanges the admin password for a session JWT.
func (s *Server) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if !s.passwordMatches(req.Password) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		token, err := s.auth.Mint(w)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to mint admin token")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Token string `json:"token"`
		}{Token: token})
	}
}

// statsHandler serves the same aggregate numbers the in-bot admin panel
// shows, for dashboards and monitoring.
func (s *Server) statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := s.statsUC.Totals(r.Context())
		if err != nil {
			s.log.Error().Err(err).Msg("stats aggregation failed")
			http.Error(w, "Failed to get totals", http.StatusInternalServerError)
			return
		}

		response := struct {
			Content int   `json:"content_total"`
			Parts   int   `json:"parts_total"`
			Users   int   `json:"users_total"`
			Views   int64 `json:"views_total"`
		}{
			Content: st.Content,
			Parts:   st.Parts,
			Users:   st.Users,
			Views:   st.Views,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
