package obfuscation

import (
	"context"
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// Key frames every payload on both sides before encoding. It is not a secret
// in any cryptographic sense, and it is never transmitted: both ends must be
// built with the same value. Changing it breaks every previously obfuscated
// payload, as there is no version marker in the output.
const Key = "FeatureListWasmKey2025"

// Strict decoding rejects non-zero trailing bits, so every character of the
// encoded form is significant.
var strictEncoding = base64.StdEncoding.Strict()

// Go's decoder skips CR and LF even in strict mode; they are not part of the
// alphabet and must fail like any other foreign character.
const lineBreaks = "\r\n"

// Obfuscate wraps json in Key, base64-encodes it and reverses the encoded text.
// It accepts any string.
func Obfuscate(json string) string {
	mixed := Key + json + Key
	return reverse(base64.StdEncoding.EncodeToString([]byte(mixed)))
}

// Deobfuscate undoes Obfuscate and checks that the result is framed by Key
// and shaped like a JSON object. Failures are returned as *Error.
func Deobfuscate(obfuscated string) (string, error) {
	encoded := reverse(obfuscated)
	if i := strings.IndexAny(encoded, lineBreaks); i >= 0 {
		return "", &Error{Kind: DecodeError, Err: base64.CorruptInputError(i)}
	}

	data, err := strictEncoding.DecodeString(encoded)
	if err != nil {
		return "", &Error{Kind: DecodeError, Err: err}
	}

	if !utf8.Valid(data) {
		return "", &Error{Kind: EncodingError}
	}
	mixed := string(data)

	// A lone Key satisfies both checks by overlap; it still has no room for a payload.
	if len(mixed) < 2*len(Key) || !strings.HasPrefix(mixed, Key) || !strings.HasSuffix(mixed, Key) {
		return "", &Error{Kind: KeyMismatchError}
	}

	json := mixed[len(Key) : len(mixed)-len(Key)]
	if !strings.HasPrefix(json, "{") || !strings.HasSuffix(json, "}") {
		return "", &Error{Kind: FormatError}
	}

	return json, nil
}

// reverse flips the encoded text. The base64 alphabet is single-byte ASCII,
// but reversal is done per rune so that arbitrary (invalid) input cannot
// shuffle bytes inside a multi-byte sequence.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Service exposes the codec behind domain.ConfigObfuscator.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Obfuscate(ctx context.Context, payload string) string {
	return Obfuscate(payload)
}

func (s *Service) Deobfuscate(ctx context.Context, obfuscated string) (string, error) {
	return Deobfuscate(obfuscated)
}
