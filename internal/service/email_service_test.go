package service

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestBuildEmailInput(t *testing.T) {
	input := buildEmailInput(
		"TinyMath Education <noreply@example.com>",
		"parent@example.com",
		"Confirm your TinyMath account: 123456",
		"<html>123456</html>",
		"123456",
		"ref-abc",
	)

	if *input.FromEmailAddress != "TinyMath Education <noreply@example.com>" {
		t.Errorf("unexpected from address: %s", *input.FromEmailAddress)
	}
	if len(input.Destination.ToAddresses) != 1 || input.Destination.ToAddresses[0] != "parent@example.com" {
		t.Errorf("unexpected destination: %v", input.Destination.ToAddresses)
	}

	msg := input.Content.Simple
	if *msg.Subject.Data != "Confirm your TinyMath account: 123456" {
		t.Errorf("unexpected subject: %s", *msg.Subject.Data)
	}
	if *msg.Body.Html.Data != "<html>123456</html>" || *msg.Body.Text.Data != "123456" {
		t.Error("expected both HTML and text bodies to be set")
	}

	if len(msg.Headers) != 1 {
		t.Fatalf("expected 1 header, got %d", len(msg.Headers))
	}
	if *msg.Headers[0].Name != deliveryRefHeader || *msg.Headers[0].Value != "ref-abc" {
		t.Errorf("expected %s: ref-abc, got %s: %s", deliveryRefHeader, *msg.Headers[0].Name, *msg.Headers[0].Value)
	}
}

func TestDisabledEmailServiceLogsInsteadOfSending(t *testing.T) {
	svc, err := NewEmailService("us-east-1", "", "")
	if err != nil {
		t.Fatalf("NewEmailService failed: %v", err)
	}
	if svc.IsEnabled() {
		t.Fatal("service without a from address should be disabled")
	}

	ctx := context.Background()
	if err := svc.SendVerificationCode(ctx, "parent@example.com", "123456", time.Hour); err != nil {
		t.Errorf("disabled send should succeed, got %v", err)
	}
	if err := svc.SendPasswordResetCode(ctx, "parent@example.com", "123456", 15*time.Minute); err != nil {
		t.Errorf("disabled send should succeed, got %v", err)
	}
}

func TestCodeEmailBodies(t *testing.T) {
	html := codeEmailHTML("Use the code below:", "123456", 15*time.Minute)
	text := codeEmailText("Use the code below:", "123456", 15*time.Minute)

	for _, body := range []string{html, text} {
		if !strings.Contains(body, "123456") {
			t.Error("body should contain the code")
		}
		if !strings.Contains(body, "15 minutes") {
			t.Error("body should state the validity window")
		}
	}
}

func TestFormatWindow(t *testing.T) {
	tests := []struct {
		window   time.Duration
		expected string
	}{
		{time.Hour, "1 hour"},
		{2 * time.Hour, "2 hours"},
		{15 * time.Minute, "15 minutes"},
		{time.Minute, "1 minute"},
		{90 * time.Minute, "90 minutes"},
	}

	for _, tt := range tests {
		if result := formatWindow(tt.window); result != tt.expected {
			t.Errorf("formatWindow(%v) = %q, want %q", tt.window, result, tt.expected)
		}
	}
}
