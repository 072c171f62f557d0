package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/reviewnexus/reviewnexus/internal/models"
)

func (s *Server) getSettingsHandler(w http.ResponseWriter, _ *http.Request) {
	settings, err := s.store.GetSettings()
	if err != nil {
		slog.Error("Server.getSettingsHandler: load failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	writeJSONResponse(w, http.StatusOK, settings)
}

func (s *Server) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		slog.Warn("Server.updateSettingsHandler: failed to decode JSON", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := s.store.SaveSettings(settings); err != nil {
		slog.Error("Server.updateSettingsHandler: save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	slog.Info("Server.updateSettingsHandler: settings saved", "site_name", settings.SiteName)
	writeJSONResponse(w, http.StatusOK, settings)
}
