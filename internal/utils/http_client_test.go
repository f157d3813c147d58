package utils

import (
	"testing"
	"time"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient("http://localhost", 0)

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}

	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Config(t *testing.T) {
	client := NewHTTPClient("http://localhost:8080/api", 5*time.Second)

	if client.BaseURL != "http://localhost:8080/api" {
		t.Errorf("unexpected base url %q", client.BaseURL)
	}
	if client.GetClient().Timeout != 5*time.Second {
		t.Errorf("unexpected timeout %v", client.GetClient().Timeout)
	}
	if client.Header.Get("Accept") != "application/json" {
		t.Errorf("unexpected Accept header %q", client.Header.Get("Accept"))
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("http://a", 0)
	client2 := NewHTTPClient("http://b", 0)

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}
