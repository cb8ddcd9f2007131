package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"ptalk-server/models"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.NewErrorResponse(code, message)); err != nil {
		log.Println("[Middleware] Error encoding response:", err)
	}
}
