package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/featurelist/configseal/api/internal/core/domain"
	"github.com/featurelist/configseal/api/internal/infrastructure/obfuscation"
)

// ErrInvalidConfig is returned by Open when the recovered payload has the
// {...} shape but is not parseable as a JSON object.
var ErrInvalidConfig = errors.New("config: payload is not a valid JSON object")

type EditConfigService struct {
	obfuscator domain.ConfigObfuscator
	logger     *slog.Logger
}

func NewEditConfigService(obfuscator domain.ConfigObfuscator, logger *slog.Logger) *EditConfigService {
	return &EditConfigService{
		obfuscator: obfuscator,
		logger:     logger,
	}
}

// Seal serializes the config to JSON and obfuscates it.
func (s *EditConfigService) Seal(ctx context.Context, cfg domain.EditConfig) (string, error) {
	if cfg == nil {
		cfg = domain.EditConfig{}
	}

	plaintext, err := json.Marshal(cfg)
	if err != nil {
		s.logger.Warn("Edit config serialization failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to serialize edit config: %w", err)
	}

	return s.obfuscator.Obfuscate(ctx, string(plaintext)), nil
}

// Open deobfuscates a sealed config and parses it back into an object.
// Codec errors are returned unchanged so callers can branch on their kind.
func (s *EditConfigService) Open(ctx context.Context, sealed string) (domain.EditConfig, error) {
	plaintext, err := s.obfuscator.Deobfuscate(ctx, sealed)
	if err != nil {
		// 🛡️ Never log the payload itself, only the rejecting stage
		s.logger.Info("Rejected sealed config", slog.String("kind", obfuscation.KindOf(err).String()))
		return nil, err
	}

	var cfg domain.EditConfig
	if err := json.Unmarshal([]byte(plaintext), &cfg); err != nil {
		s.logger.Info("Sealed config is not valid JSON", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}
