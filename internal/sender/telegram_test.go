package sender

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// mockHTTPClient implements HTTPClient and captures the last request.
type mockHTTPClient struct {
	lastReq *HTTPRequest
	resp    *HTTPResponse
	err     error
}

func (m *mockHTTPClient) Do(req *HTTPRequest) (*HTTPResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func TestTelegram_Send_Success(t *testing.T) {
	client := &mockHTTPClient{
		resp: &HTTPResponse{
			StatusCode: 200,
			Body:       []byte(`{"ok":true,"result":{"message_id":1}}`),
		},
	}
	tg := NewTelegram("test-token", "", client)

	if err := tg.Send(context.Background(), "12345", "<b>hello</b>"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if client.lastReq.Method != "POST" {
		t.Errorf("expected POST, got %s", client.lastReq.Method)
	}
	wantURL := "https://api.telegram.org/bottest-token/sendMessage"
	if client.lastReq.URL != wantURL {
		t.Errorf("URL = %s, want %s", client.lastReq.URL, wantURL)
	}

	var body telegramSendRequest
	if err := json.Unmarshal(client.lastReq.Body, &body); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if body.ChatID != "12345" {
		t.Errorf("chat_id = %s, want 12345", body.ChatID)
	}
	if body.Text != "<b>hello</b>" {
		t.Errorf("text = %s, want <b>hello</b>", body.Text)
	}
	if body.ParseMode != "HTML" {
		t.Errorf("parse_mode = %s, want HTML", body.ParseMode)
	}
}

func TestTelegram_Send_APIError(t *testing.T) {
	client := &mockHTTPClient{
		resp: &HTTPResponse{
			StatusCode: 403,
			Body:       []byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`),
		},
	}
	tg := NewTelegram("test-token", "", client)

	err := tg.Send(context.Background(), "12345", "hello")
	if err == nil {
		t.Fatal("expected error for API failure response")
	}

	se, ok := AsSenderError(err)
	if !ok {
		t.Fatalf("expected SenderError, got %T: %v", err, err)
	}
	if se.StatusCode != 403 {
		t.Errorf("status = %d, want 403", se.StatusCode)
	}
	if !strings.Contains(se.Message, "blocked") {
		t.Errorf("message = %q, want API description", se.Message)
	}
}

func TestTelegram_Send_TransportError(t *testing.T) {
	client := &mockHTTPClient{err: context.DeadlineExceeded}
	tg := NewTelegram("test-token", "", client)

	err := tg.Send(context.Background(), "12345", "hello")
	if err == nil {
		t.Fatal("expected error for transport failure")
	}
	if _, ok := AsSenderError(err); ok {
		t.Error("transport failure should not be classified as a SenderError")
	}
}

func TestTelegram_Send_NonJSONBody(t *testing.T) {
	client := &mockHTTPClient{
		resp: &HTTPResponse{StatusCode: 502, Body: []byte("<html>bad gateway</html>")},
	}
	tg := NewTelegram("test-token", "", client)

	err := tg.Send(context.Background(), "12345", "hello")
	se, ok := AsSenderError(err)
	if !ok {
		t.Fatalf("expected SenderError, got %v", err)
	}
	if se.StatusCode != 502 {
		t.Errorf("status = %d, want 502", se.StatusCode)
	}
}

func TestTelegram_CustomEndpoint(t *testing.T) {
	client := &mockHTTPClient{
		resp: &HTTPResponse{StatusCode: 200, Body: []byte(`{"ok":true}`)},
	}
	tg := NewTelegram("tok", "https://tg.internal.test", client)

	if err := tg.Send(context.Background(), "1", "x"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.HasPrefix(client.lastReq.URL, "https://tg.internal.test/") {
		t.Errorf("expected custom endpoint in URL, got %s", client.lastReq.URL)
	}
}
