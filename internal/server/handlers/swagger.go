package handlers

import (
	"net/http"

	"github.com/swaggo/swag"
)

// HandleSwaggerDoc serves the OpenAPI document registered by the docs package.
func HandleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "OpenAPI document not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
