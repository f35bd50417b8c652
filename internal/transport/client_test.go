package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"imfdata/internal/feeds"
)

func newTestClient(opts ...Option) *Client {
	return NewClient(Config{RequestsPerSecond: -1}, opts...)
}

func TestGetReturnsPayloadWithCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got == "" {
			t.Error("expected User-Agent header to be set")
		}
		w.Header().Set("Content-Type", "text/xml; charset=ISO-8859-1")
		if _, err := w.Write([]byte("<doc/>")); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	payload, err := newTestClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(payload.Body) != "<doc/>" {
		t.Fatalf("unexpected body %q", payload.Body)
	}
	if payload.Charset != "iso-8859-1" {
		t.Fatalf("unexpected charset %q", payload.Charset)
	}
	if payload.FinalURL == "" {
		t.Fatal("expected final URL to be recorded")
	}
}

func TestGetMapsNotFoundToNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newTestClient().Get(context.Background(), server.URL)
	if !errors.Is(err, feeds.ErrNoData) {
		t.Fatalf("expected no-data error for 404, got %v", err)
	}
}

func TestGetMapsServerErrorToConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient().Get(context.Background(), server.URL)
	if !errors.Is(err, feeds.ErrConnection) {
		t.Fatalf("expected connection error for 500, got %v", err)
	}
	if errors.Is(err, feeds.ErrNoData) {
		t.Fatalf("500 must not classify as no-data: %v", err)
	}
}

func TestGetMapsNetworkFailureToConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newTestClient().Get(context.Background(), server.URL)
	if !errors.Is(err, feeds.ErrConnection) {
		t.Fatalf("expected connection error for refused connection, got %v", err)
	}
}

func TestPostFormEncodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostFormValue("__EVENTTARGET"); got != "lbnTSV" {
			t.Errorf("unexpected form value %q", got)
		}
		if _, err := w.Write([]byte("ok")); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	form := url.Values{"__EVENTTARGET": {"lbnTSV"}}
	payload, err := newTestClient().PostForm(context.Background(), server.URL, form)
	if err != nil {
		t.Fatalf("PostForm returned error: %v", err)
	}
	if string(payload.Body) != "ok" {
		t.Fatalf("unexpected body %q", payload.Body)
	}
}

func TestErrorsCarryFeedFromContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	ctx := feeds.WithFeed(context.Background(), "weo")
	_, err := newTestClient().Get(ctx, server.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "weo") || !strings.Contains(msg, "not published") {
		t.Fatalf("expected feed context in error %q", msg)
	}
}

func TestGetHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient().Get(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation to surface, got %v", err)
	}
}
