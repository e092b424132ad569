package obfuscation

import (
	"errors"
	"fmt"
)

// ErrorKind tags the stage at which deobfuscation rejected its input.
type ErrorKind int

const (
	DecodeError ErrorKind = iota + 1
	EncodingError
	KeyMismatchError
	FormatError
)

func (k ErrorKind) String() string {
	switch k {
	case DecodeError:
		return "DecodeError"
	case EncodingError:
		return "EncodingError"
	case KeyMismatchError:
		return "KeyMismatchError"
	case FormatError:
		return "FormatError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is matching. A *Error matches the sentinel of its Kind.
var (
	ErrDecode      = errors.New("obfuscation: base64 decode error")
	ErrEncoding    = errors.New("obfuscation: utf-8 decode error")
	ErrKeyMismatch = errors.New("obfuscation: invalid obfuscation key")
	ErrFormat      = errors.New("obfuscation: not a valid JSON object")
)

// Error is returned by Deobfuscate. Err holds the underlying cause when there is one.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	msg := e.sentinel().Error()
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case DecodeError:
		return ErrDecode
	case EncodingError:
		return ErrEncoding
	case KeyMismatchError:
		return ErrKeyMismatch
	case FormatError:
		return ErrFormat
	}
	return errors.New("obfuscation: unknown error")
}

// KindOf reports the ErrorKind carried by err, or 0 if err did not come from Deobfuscate.
func KindOf(err error) ErrorKind {
	var oerr *Error
	if errors.As(err, &oerr) {
		return oerr.Kind
	}
	return 0
}
