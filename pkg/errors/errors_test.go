package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidTemplate, "columns must be >= 1, got %d", 0)

	if err.Code != ErrCodeInvalidTemplate {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidTemplate)
	}
	if err.Message != "columns must be >= 1, got 0" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeAssetNotFound, "asset 000-015 not found"),
			want: "ASSET_NOT_FOUND: asset 000-015 not found",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeResolverUnavailable, fmt.Errorf("connection refused"), "login failed"),
			want: "RESOLVER_UNAVAILABLE: login failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(ErrCodeNetwork, cause, "request failed")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New(ErrCodePayloadTooLarge, "payload exceeds capacity"),
			code: ErrCodePayloadTooLarge,
			want: true,
		},
		{
			name: "non-matching code",
			err:  New(ErrCodePayloadTooLarge, "payload exceeds capacity"),
			code: ErrCodeRender,
			want: false,
		},
		{
			name: "wrapped in plain error",
			err:  fmt.Errorf("outer: %w", New(ErrCodeInvalidSelector, "bad range")),
			code: ErrCodeInvalidSelector,
			want: true,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("plain"),
			code: ErrCodeInternal,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRender, "backend failed")); got != ErrCodeRender {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeRender)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidTemplate, "label grid exceeds page width")); got != "label grid exceeds page width" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestValidateServerURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://homebox.example.com", false},
		{"http", "http://localhost:7745", false},
		{"empty", "", true},
		{"no scheme", "homebox.example.com", true},
		{"ftp scheme", "ftp://homebox.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServerURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateServerURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAttributeKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"simple", "name", false},
		{"with underscore", "location_path", false},
		{"empty", "", true},
		{"whitespace", "display name", true},
		{"control char", "name\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttributeKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAttributeKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}
