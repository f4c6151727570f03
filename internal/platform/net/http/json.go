package http

import (
	"net/http"

	"criticode/internal/platform/net/http/bind"
)

// envelope wraps a handler result; a returned Response passes through so
// handlers can pick their own status, anything else becomes a 200
func envelope(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// JSONHandler decodes and validates the body into T before fn runs
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return envelope(fn(r, in))
	})
}

// JSONHandlerNoBody is the bodyless variant
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return envelope(fn(r))
	})
}
