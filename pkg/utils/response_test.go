package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondInternalErrorHidesDetail(t *testing.T) {
	resp := httptest.NewRecorder()
	RespondInternalError(resp)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if resp.Body.String() != InternalErrorBody {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestSendSSEEvent(t *testing.T) {
	resp := httptest.NewRecorder()
	SetupSSEHeaders(resp)

	if err := SendSSEEvent(resp, resp, "message", map[string]string{"username": "alice"}); err != nil {
		t.Fatalf("SendSSEEvent err: %v", err)
	}

	want := "event: message\ndata: {\"username\":\"alice\"}\n\n"
	if resp.Body.String() != want {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
	if !resp.Flushed {
		t.Fatal("expected flush")
	}
}
