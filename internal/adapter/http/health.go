package httpadapter

import "net/http"

type healthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// handleHealth reports that the API process is up. It does not probe the
// database: the API stays useful through the fallback during an outage.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		Message: "Campaign Analytics API is running",
		Status:  "healthy",
	})
}
