// Package store fetches the current weather data from the OpenWeather API
package store

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure of a weather fetch
type ErrorKind int

const (
	// KindUnknown covers failures that fit no other kind
	KindUnknown ErrorKind = iota
	// KindInvalidInput is a blank city name, rejected before any request
	KindInvalidInput
	// KindUnreachable is a transport failure (DNS, refused connection, timeout)
	KindUnreachable
	// KindNotFound is a 404 from the provider
	KindNotFound
	// KindUnauthorized is a 401 from the provider
	KindUnauthorized
	// KindServerError is any other non-2xx status
	KindServerError
	// KindDecoding is a 2xx body that does not match the provider schema
	KindDecoding
)

// Fixed user-facing messages
const (
	MessageInvalidCity   = "Please enter a valid city name"
	MessageUnreachable   = "No internet connection. Please check your network."
	MessageCityNotFound  = "City not found. Please check the spelling."
	MessageUnauthorized  = "API key is invalid. Please check your configuration."
	MessageDecodingError = "Unable to process server response."
	MessageGenericError  = "Something went wrong. Please try again."
)

// KindMessageMap maps error kind to its user-facing message
var KindMessageMap = map[ErrorKind]string{
	KindInvalidInput: MessageInvalidCity,
	KindUnreachable:  MessageUnreachable,
	KindNotFound:     MessageCityNotFound,
	KindUnauthorized: MessageUnauthorized,
	KindDecoding:     MessageDecodingError,
	KindUnknown:      MessageGenericError,
}

var kindNames = map[ErrorKind]string{
	KindUnknown:      "unknown",
	KindInvalidInput: "invalid input",
	KindUnreachable:  "unreachable",
	KindNotFound:     "not found",
	KindUnauthorized: "unauthorized",
	KindServerError:  "server error",
	KindDecoding:     "decoding error",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// FetchError is the only error type returned by a WeatherReporter
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

// Sentinel values for errors.Is; only the kind is compared
var (
	ErrInvalidInput = &FetchError{Kind: KindInvalidInput}
	ErrUnreachable  = &FetchError{Kind: KindUnreachable}
	ErrNotFound     = &FetchError{Kind: KindNotFound}
	ErrUnauthorized = &FetchError{Kind: KindUnauthorized}
	ErrServerError  = &FetchError{Kind: KindServerError}
	ErrDecoding     = &FetchError{Kind: KindDecoding}
	ErrUnknown      = &FetchError{Kind: KindUnknown}
)

func (e *FetchError) Error() string {
	msg := "weather fetch failed: " + e.Kind.String()
	if e.Kind == KindServerError {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s, %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a FetchError of the same kind
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Message returns the user-facing text for this error
func (e *FetchError) Message() string {
	if e.Kind == KindServerError {
		return fmt.Sprintf("Server error (Code: %d). Please try again later.", e.StatusCode)
	}
	if message, ok := KindMessageMap[e.Kind]; ok {
		return message
	}
	return MessageGenericError
}

// MessageForError maps any error to a user-facing message
func MessageForError(err error) string {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Message()
	}
	return MessageGenericError
}

func newFetchError(kind ErrorKind, err error) *FetchError {
	return &FetchError{Kind: kind, Err: err}
}
