package fonnte_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storecrm_backend/pkg/fonnte"
)

func TestSend(t *testing.T) {
	var gotAuth, gotTarget, gotMessage, gotCountry string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/send" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotAuth = r.Header.Get("Authorization")
		gotTarget = r.PostFormValue("target")
		gotMessage = r.PostFormValue("message")
		gotCountry = r.PostFormValue("countryCode")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": true}`))
	}))
	defer srv.Close()

	client := fonnte.NewClientWithBaseURL(srv.URL)
	result, err := client.Send(context.Background(), "secret-token", "08123456789", "hello")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if !result.Status {
		t.Errorf("result.Status = false, want true")
	}
	if gotAuth != "secret-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "secret-token")
	}
	if gotTarget != "08123456789" || gotMessage != "hello" {
		t.Errorf("form target/message = %q/%q", gotTarget, gotMessage)
	}
	if gotCountry != fonnte.DefaultCountryCode {
		t.Errorf("countryCode = %q, want %q", gotCountry, fonnte.DefaultCountryCode)
	}
}

func TestSendMissingToken(t *testing.T) {
	client := fonnte.NewClient()
	result, err := client.Send(context.Background(), "", "08123456789", "hello")
	if !errors.Is(err, fonnte.ErrMissingToken) {
		t.Fatalf("err = %v, want ErrMissingToken", err)
	}
	if result == nil || result.Status {
		t.Errorf("expected failed result, got %+v", result)
	}
}

func TestSendHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := fonnte.NewClientWithBaseURL(srv.URL)
	result, err := client.Send(context.Background(), "bad", "08123456789", "hello")
	if err == nil {
		t.Fatal("expected error for HTTP 401")
	}
	if result == nil || result.Status {
		t.Errorf("expected failed result, got %+v", result)
	}
}
