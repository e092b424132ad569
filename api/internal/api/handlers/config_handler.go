package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/featurelist/configseal/api/internal/core/domain"
)

// Use a single instance of Validate, it caches struct info
var validate = validator.New()

// ==============================================================================
// 1. Request / Response Payloads
// ==============================================================================

type ObfuscateRequest struct {
	// Any string is accepted, including the empty one.
	Payload string `json:"payload"`
}

type ObfuscateResponse struct {
	Obfuscated string `json:"obfuscated"`
}

type DeobfuscateRequest struct {
	Obfuscated string `json:"obfuscated" validate:"required"`
}

type DeobfuscateResponse struct {
	Payload string `json:"payload"`
}

type SealRequest struct {
	Config domain.EditConfig `json:"config" validate:"required"`
}

type SealResponse struct {
	Sealed string `json:"sealed"`
}

type OpenRequest struct {
	Sealed string `json:"sealed" validate:"required"`
}

type OpenResponse struct {
	Config domain.EditConfig `json:"config"`
}

// EditConfigSealer is the slice of the edit config service the handlers need.
type EditConfigSealer interface {
	Seal(ctx context.Context, cfg domain.EditConfig) (string, error)
	Open(ctx context.Context, sealed string) (domain.EditConfig, error)
}

// ==============================================================================
// 2. The Handler Struct (Dependency Injection)
// ==============================================================================

type ConfigHandler struct {
	Obfuscator domain.ConfigObfuscator
	Configs    EditConfigSealer
}

func NewConfigHandler(obfuscator domain.ConfigObfuscator, configs EditConfigSealer) *ConfigHandler {
	return &ConfigHandler{
		Obfuscator: obfuscator,
		Configs:    configs,
	}
}

// ==============================================================================
// 3. HTTP Methods
// ==============================================================================

// Obfuscate handles POST /api/v1/config/obfuscate
func (h *ConfigHandler) Obfuscate(w http.ResponseWriter, r *http.Request) {
	var req ObfuscateRequest
	if !decode(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, ObfuscateResponse{
		Obfuscated: h.Obfuscator.Obfuscate(r.Context(), req.Payload),
	})
}

// Deobfuscate handles POST /api/v1/config/deobfuscate
func (h *ConfigHandler) Deobfuscate(w http.ResponseWriter, r *http.Request) {
	var req DeobfuscateRequest
	if !decode(w, r, &req) {
		return
	}

	payload, err := h.Obfuscator.Deobfuscate(r.Context(), req.Obfuscated)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DeobfuscateResponse{Payload: payload})
}

// Seal handles POST /api/v1/config/seal
func (h *ConfigHandler) Seal(w http.ResponseWriter, r *http.Request) {
	var req SealRequest
	if !decode(w, r, &req) {
		return
	}

	sealed, err := h.Configs.Seal(r.Context(), req.Config)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SealResponse{Sealed: sealed})
}

// Open handles POST /api/v1/config/open
func (h *ConfigHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenRequest
	if !decode(w, r, &req) {
		return
	}

	cfg, err := h.Configs.Open(r.Context(), req.Sealed)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OpenResponse{Config: cfg})
}

// decode reads and validates a JSON body, writing the error response itself.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", "")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON payload", "")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		HandleError(w, r, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
