package handlers

import (
	"delivery-zone-service/internal/ports"
	"log"
	"net/http"
)

// StoreHandler serves the store directory the map page pins.
type StoreHandler struct {
	Repo ports.StoreRepository
}

// List responds with a bare JSON array, the shape the page expects.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.Repo.ListStores(r.Context())
	if err != nil {
		log.Printf("list stores failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toStoreResponses(stores))
}
