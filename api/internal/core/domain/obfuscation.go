package domain

import "context"

// ConfigObfuscator defines the contract for the reversible config encoding.
// It is NOT encryption: it only deters casual inspection of a payload.
type ConfigObfuscator interface {
	// Obfuscate encodes any string. It never fails.
	Obfuscate(ctx context.Context, payload string) string

	// Deobfuscate recovers a payload produced by Obfuscate. The returned error
	// carries the rejecting stage (decode, encoding, key or format).
	Deobfuscate(ctx context.Context, obfuscated string) (string, error)
}

// EditConfig is a structured feature-list configuration as edited in the UI.
type EditConfig map[string]any
