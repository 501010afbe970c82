package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func runErrorHandler(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	return w
}

func TestRespondWithError(t *testing.T) {
	w := runErrorHandler(func(c *gin.Context) {
		RespondNotFound(c, "Image non trouvée")
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Success {
		t.Error("Expected success=false")
	}
	if body.Error != "Image non trouvée" {
		t.Errorf("Unexpected error message: %q", body.Error)
	}
}

func TestRespondStorageErrorIncludesDetails(t *testing.T) {
	w := runErrorHandler(func(c *gin.Context) {
		RespondStorageError(c, "Erreur lors de la récupération des images", errors.New("disk io"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Details == "" {
		t.Error("Expected details in storage error body")
	}
}
