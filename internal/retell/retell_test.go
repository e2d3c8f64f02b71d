package retell

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func testClient(baseURL string) *Client {
	return New(&Config{
		APIKey:        "key",
		AgentID:       "agent-1",
		FromNumber:    "+15550001111",
		WebhookSecret: "whsec",
		BaseURL:       baseURL,
	}, zap.NewNop())
}

func TestPlaceCall(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq createCallRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"call_id": "c1", "call_status": "registered"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	if err := client.PlaceCall(context.Background(), "+15551234567", "offer consultation"); err != nil {
		t.Fatalf("PlaceCall() error = %v", err)
	}

	if gotPath != "/v2/create-phone-call" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer key" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotReq.ToNumber != "+15551234567" || gotReq.FromNumber != "+15550001111" {
		t.Errorf("unexpected numbers in request: %+v", gotReq)
	}
	if gotReq.VoicemailOnly {
		t.Error("did not expect voicemail-only call")
	}
	if gotReq.DynamicVars["call_context"] != "offer consultation" {
		t.Errorf("expected prompt as dynamic variable, got %v", gotReq.DynamicVars)
	}
}

func TestDropVoicemail(t *testing.T) {
	var gotReq createCallRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]string{"call_id": "c2"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	if err := client.DropVoicemail(context.Background(), "+15551234567", "we tried to reach you"); err != nil {
		t.Fatalf("DropVoicemail() error = %v", err)
	}
	if !gotReq.VoicemailOnly {
		t.Error("expected voicemail-only flag set")
	}
}

func TestPlaceCallServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such agent"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := testClient(server.URL)
	if err := client.PlaceCall(context.Background(), "+15551234567", "x"); err == nil {
		t.Fatal("expected error for 422 response")
	}
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestValidateWebhook(t *testing.T) {
	client := testClient("")
	body := []byte(`{"event":"call_ended","call":{"call_id":"c1"}}`)

	req := httptest.NewRequest(http.MethodPost, "/webhook/retell", bytes.NewReader(body))
	req.Header.Set(SignatureHeader, signBody("whsec", body))
	if !client.ValidateWebhook(req) {
		t.Error("expected valid signature to pass")
	}

	// Body must be restored for parsing after validation
	payload, err := client.ParseWebhook(req)
	if err != nil {
		t.Fatalf("ParseWebhook() after validation error = %v", err)
	}
	if payload.Event != EventCallEnded || payload.Call.CallID != "c1" {
		t.Errorf("unexpected payload %+v", payload)
	}
}

func TestValidateWebhookRejectsBadSignature(t *testing.T) {
	client := testClient("")
	body := []byte(`{"event":"call_ended","call":{"call_id":"c1"}}`)

	req := httptest.NewRequest(http.MethodPost, "/webhook/retell", bytes.NewReader(body))
	req.Header.Set(SignatureHeader, "deadbeef")
	if client.ValidateWebhook(req) {
		t.Error("expected bad signature to fail")
	}

	req = httptest.NewRequest(http.MethodPost, "/webhook/retell", bytes.NewReader(body))
	if client.ValidateWebhook(req) {
		t.Error("expected missing signature to fail")
	}
}

func TestParseWebhookRequiresCallID(t *testing.T) {
	client := testClient("")
	req := httptest.NewRequest(http.MethodPost, "/webhook/retell", bytes.NewReader([]byte(`{"event":"call_ended","call":{}}`)))
	if _, err := client.ParseWebhook(req); err == nil {
		t.Error("expected error for missing call_id")
	}
}
