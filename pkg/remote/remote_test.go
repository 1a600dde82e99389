package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-contractgen/pkg/remote"
)

func TestTransport_DecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprintf(w, `{"echo":%q}`, in["k"])
	}))
	defer srv.Close()

	req, err := remote.JSON("echo", http.MethodPost, srv.URL, map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var out struct {
		Echo string `json:"echo"`
	}
	if err := remote.NewTransport().Do(context.Background(), req, &out); err != nil {
		t.Fatalf("do: %v", err)
	}
	if out.Echo != "v" {
		t.Fatalf("echo = %q", out.Echo)
	}
}

func TestTransport_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Шаблон не найден"}`))
	}))
	defer srv.Close()

	err := remote.NewTransport().Do(context.Background(), remote.Request{Op: "generate", URL: srv.URL}, nil)
	if !errors.Is(err, remote.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	var netErr *remote.NetworkError
	if !errors.As(err, &netErr) || netErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %#v", err)
	}
	if got := remote.Message(err, "fallback"); got != "Шаблон не найден" {
		t.Fatalf("message = %q", got)
	}
}

func TestTransport_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	var out map[string]any
	err := remote.NewTransport().Do(context.Background(), remote.Request{Op: "fetch", URL: srv.URL}, &out)
	if !errors.Is(err, remote.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestTransport_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	tr := remote.NewTransport(remote.WithTimeout(20 * time.Millisecond))
	err := tr.Do(context.Background(), remote.Request{Op: "slow", URL: srv.URL}, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if !errors.Is(err, remote.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestTransport_MissingURL(t *testing.T) {
	err := remote.NewTransport().Do(context.Background(), remote.Request{Op: "fetch"}, nil)
	if !errors.Is(err, remote.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "service", err: &remote.ServiceError{Op: "generate", Message: "Ошибка генерации"}, want: "Ошибка генерации"},
		{name: "wrapped service", err: fmt.Errorf("submit: %w", &remote.ServiceError{Op: "generate", Message: "нет"}), want: "нет"},
		{name: "network cause", err: &remote.NetworkError{Op: "fetch", Err: errors.New("connection refused")}, want: "connection refused"},
		{name: "network fallback", err: &remote.NetworkError{Op: "fetch", Status: 503}, want: "fallback"},
		{name: "plain", err: errors.New("boom"), want: "boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := remote.Message(tc.err, "fallback"); got != tc.want {
				t.Fatalf("Message() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFlexString(t *testing.T) {
	cases := map[string]string{
		`{"n":42}`:     "42",
		`{"n":"42"}`:   "42",
		`{"n":" 7 "}`:  "7",
		`{"n":null}`:   "",
		`{}`:           "",
		`{"n":1e3}`:    "1e3",
	}
	for raw, want := range cases {
		var out struct {
			N remote.FlexString `json:"n"`
		}
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if out.N.String() != want {
			t.Fatalf("%s => %q, want %q", raw, out.N, want)
		}
	}

	var bad struct {
		N remote.FlexString `json:"n"`
	}
	if err := json.Unmarshal([]byte(`{"n":true}`), &bad); err == nil {
		t.Fatalf("expected error for boolean")
	}
}
