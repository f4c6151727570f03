package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusBadRequest},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeParse, http.StatusInternalServerError},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "db failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	e4 := Wrapf(src, ErrorCodeForbidden, "nope %s", "here")
	if want := "nope here: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}

	if got, ok := As(e4); !ok || got.Code() != ErrorCodeForbidden {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}
}

func TestWithDetailCopyOnWrite(t *testing.T) {
	base := TooManyRequestsf("too many analysis requests")
	withRetry := WithDetail(base, "retryAfter", 120)
	withBoth := WithDetail(withRetry, "limit", 5)

	if _, ok := DetailOf(base, "retryAfter"); ok {
		t.Fatalf("WithDetail mutated the original error")
	}
	if v, ok := DetailOf(withRetry, "retryAfter"); !ok || v != 120 {
		t.Fatalf("retryAfter detail = %v, %v", v, ok)
	}
	if v, ok := DetailOf(withBoth, "limit"); !ok || v != 5 {
		t.Fatalf("limit detail = %v, %v", v, ok)
	}
	if v, ok := DetailOf(withBoth, "retryAfter"); !ok || v != 120 {
		t.Fatalf("retryAfter detail lost after second WithDetail: %v, %v", v, ok)
	}

	// foreign errors pass through unchanged
	foreign := stderrs.New("plain")
	if got := WithDetail(foreign, "k", 1); got != foreign {
		t.Fatalf("WithDetail wrapped a foreign error")
	}
}

func TestWireFromCarriesDetails(t *testing.T) {
	err := WithDetail(WithDetail(TooManyRequestsf("slow down"), "retryAfter", 60), "limit", 30)
	w := WireFrom(err)
	if w.Code != ErrorCodeTooManyRequests {
		t.Fatalf("wire code = %v", w.Code)
	}
	if w.Details["retryAfter"] != 60 || w.Details["limit"] != 30 {
		t.Fatalf("wire details = %#v", w.Details)
	}
}

func TestRetryableCodes(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{Timeoutf("attempt deadline"), true},
		{DBf("transient contention"), true},
		{Parsef("model returned garbage"), false},
		{Unavailablef("invoker not configured"), false},
		{InvalidArgf("empty code"), false},
		{Unauthorizedf("bad token"), false},
		{stderrs.New("connection reset by peer"), true}, // foreign transport error
	}
	for _, c := range cases {
		if got := Retryable(c.err); got != c.want {
			t.Fatalf("Retryable(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
