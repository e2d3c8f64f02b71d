package twilio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"
)

func TestSendSMS(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	var gotAuth bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, ok := r.BasicAuth()
		gotAuth = ok && user == "AC123" && pass == "token"
		r.ParseForm()
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"sid": "SM1", "status": "queued"})
	}))
	defer server.Close()

	client := New(&Config{
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+15550001111",
		BaseURL:    server.URL,
	}, zap.NewNop())

	if err := client.SendSMS(context.Background(), "+15551234567", "hello"); err != nil {
		t.Fatalf("SendSMS() error = %v", err)
	}

	if gotPath != "/Accounts/AC123/Messages.json" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if !gotAuth {
		t.Error("expected basic auth with account SID and token")
	}
	if gotTo != "+15551234567" || gotFrom != "+15550001111" || gotBody != "hello" {
		t.Errorf("unexpected form values To=%q From=%q Body=%q", gotTo, gotFrom, gotBody)
	}
}

func TestSendSMSAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    21211,
			"message": "Invalid 'To' phone number",
			"status":  400,
		})
	}))
	defer server.Close()

	client := New(&Config{
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+15550001111",
		BaseURL:    server.URL,
	}, zap.NewNop())

	err := client.SendSMS(context.Background(), "bogus", "hello")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != 21211 {
		t.Errorf("unexpected error code %d", apiErr.Code)
	}
}

func TestValidateSignature(t *testing.T) {
	authToken := "12345"
	requestURL := "https://example.com/webhook/twilio/sms"
	form := url.Values{}
	form.Set("From", "+15551234567")
	form.Set("Body", "Yes I'm interested")

	sig := ComputeSignature(authToken, requestURL, form)

	if !ValidateSignature(authToken, requestURL, form, sig) {
		t.Error("expected valid signature to pass")
	}
	if ValidateSignature(authToken, requestURL, form, "bogus") {
		t.Error("expected bogus signature to fail")
	}
	if ValidateSignature("wrong-token", requestURL, form, sig) {
		t.Error("expected signature with wrong token to fail")
	}
	if ValidateSignature(authToken, requestURL, form, "") {
		t.Error("expected empty signature to fail")
	}
}

func TestSignatureSortsParams(t *testing.T) {
	authToken := "secret"
	requestURL := "https://example.com/webhook"

	a := url.Values{}
	a.Set("B", "2")
	a.Set("A", "1")

	b := url.Values{}
	b.Set("A", "1")
	b.Set("B", "2")

	if ComputeSignature(authToken, requestURL, a) != ComputeSignature(authToken, requestURL, b) {
		t.Error("expected signature to be independent of param insertion order")
	}
}
