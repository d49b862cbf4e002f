package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrSentinelMissing is returned when output lacks the sentinel.
var ErrSentinelMissing = errors.New("output sentinel not found")

var errEmptyPayload = errors.New("empty payload")

// DecodeError reports a payload that is not valid UTF-8.
type DecodeError struct {
	Offset int // byte offset of the first invalid sequence within the payload
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("payload is not valid UTF-8 (first invalid byte at offset %d)", e.Offset)
}

// MalformedEnvelopeError reports a payload that is not a JSON object.
type MalformedEnvelopeError struct {
	Payload string
	Err     error
}

func (e *MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("malformed envelope: %v", e.Err)
}

func (e *MalformedEnvelopeError) Unwrap() error {
	return e.Err
}

// CountSentinels returns how often the sentinel appears in raw.
func CountSentinels(raw []byte) int {
	return bytes.Count(raw, sentinelBytes)
}

// Split returns the bytes strictly after the first sentinel.
func Split(raw []byte) ([]byte, error) {
	idx := bytes.Index(raw, sentinelBytes)
	if idx < 0 {
		return nil, ErrSentinelMissing
	}
	return raw[idx+len(sentinelBytes):], nil
}

// DecodeText validates payload as UTF-8 and drops a leading byte order mark.
func DecodeText(payload []byte) (string, error) {
	if !utf8.Valid(payload) {
		return "", &DecodeError{Offset: firstInvalid(payload)}
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), payload)
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	return string(out), nil
}

func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}

// Parse extracts and decodes the envelope from raw script output.
//
// Errors: ErrSentinelMissing, *DecodeError, or *MalformedEnvelopeError. In the
// malformed case the returned envelope is empty but non-nil.
func Parse(raw []byte) (*Envelope, error) {
	payload, err := Split(raw)
	if err != nil {
		return nil, err
	}
	text, err := DecodeText(payload)
	if err != nil {
		return nil, err
	}
	return ParsePayload(text)
}

// ParsePayload decodes the JSON text that follows the sentinel.
func ParsePayload(text string) (*Envelope, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &Envelope{}, &MalformedEnvelopeError{Payload: text, Err: errEmptyPayload}
	}
	if trimmed[0] != '{' {
		return &Envelope{}, &MalformedEnvelopeError{Payload: text, Err: errors.New("payload is not a JSON object")}
	}

	var env Envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return &Envelope{}, &MalformedEnvelopeError{Payload: text, Err: err}
	}
	env.Raw = json.RawMessage(trimmed)
	return &env, nil
}
