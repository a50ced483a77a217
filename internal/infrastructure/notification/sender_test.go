package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestHTTPSenderDelivers(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewHTTPSender(srv.URL, zerolog.Nop())
	s.Send(context.Background(), "11111111111", "hello")

	if got.NationalID != "11111111111" || got.Message != "hello" {
		t.Fatalf("delivered payload = %+v", got)
	}
	if got.ID == "" {
		t.Fatal("expected a delivery id")
	}
}

func TestHTTPSenderSwallowsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// Must not panic or propagate anything.
	s := NewHTTPSender(srv.URL, zerolog.Nop())
	s.Send(context.Background(), "11111111111", "hello")
}

func TestHTTPSenderSwallowsConnectionError(t *testing.T) {
	s := NewHTTPSender("http://127.0.0.1:1", zerolog.Nop())
	s.Send(context.Background(), "11111111111", "hello")
}

func TestLogSenderNeverFails(t *testing.T) {
	s := NewLogSender(zerolog.Nop())
	s.Send(context.Background(), "11111111111", "hello")
}
