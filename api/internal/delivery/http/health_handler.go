package http

import (
	"context"
	"net/http"
	"time"

	"github.com/featurelist/configseal/api/internal/core/domain"
)

const canaryPayload = `{"health":"canary"}`

type HealthHandler struct {
	obfuscator domain.ConfigObfuscator
}

func NewHealthHandler(obfuscator domain.ConfigObfuscator) *HealthHandler {
	return &HealthHandler{obfuscator: obfuscator}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	// 🛡️ SLA: Use a tight timeout for health checks
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	// The codec must reproduce a known payload end to end.
	got, err := h.obfuscator.Deobfuscate(ctx, h.obfuscator.Obfuscate(ctx, canaryPayload))
	if err != nil || got != canaryPayload || ctx.Err() != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unhealthy: obfuscation round-trip failed"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("healthy"))
}
