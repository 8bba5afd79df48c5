package qr

import (
	"strings"
	"testing"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

func TestEncodeDeterminism(t *testing.T) {
	a, err := Encode("https://homebox.example.com/a/000-015", qrcode.Medium)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	b, err := Encode("https://homebox.example.com/a/000-015", qrcode.Medium)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if a.Size() != b.Size() {
		t.Fatalf("sizes differ: %d vs %d", a.Size(), b.Size())
	}
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				t.Fatalf("module (%d,%d) differs between identical encodings", x, y)
			}
		}
	}
}

func TestEncodeSquare(t *testing.T) {
	m, err := Encode("000-001", qrcode.Medium)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if m.Size() == 0 {
		t.Fatal("empty matrix")
	}
	for y, row := range m {
		if len(row) != m.Size() {
			t.Fatalf("row %d has %d modules, want %d", y, len(row), m.Size())
		}
	}
}

func TestEncodeLevelsChangeMatrix(t *testing.T) {
	low, err := Encode("000-001", qrcode.Low)
	if err != nil {
		t.Fatalf("Encode(low) failed: %v", err)
	}
	highest, err := Encode("000-001", qrcode.Highest)
	if err != nil {
		t.Fatalf("Encode(highest) failed: %v", err)
	}
	// Higher redundancy for the same payload needs at least as many modules.
	if highest.Size() < low.Size() {
		t.Errorf("highest level matrix (%d) smaller than low level (%d)", highest.Size(), low.Size())
	}
}

func TestEncodePayloadTooLarge(t *testing.T) {
	// QR capacity tops out below 3000 bytes even at the lowest level.
	payload := strings.Repeat("x", 8000)
	_, err := Encode(payload, qrcode.Highest)
	if !errors.Is(err, errors.ErrCodePayloadTooLarge) {
		t.Fatalf("Encode() error = %v, want PAYLOAD_TOO_LARGE", err)
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	_, err := Encode("", qrcode.Medium)
	if err == nil {
		t.Fatal("Encode(\"\") = nil error, want error")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    qrcode.RecoveryLevel
		wantErr bool
	}{
		{sheet.LevelLow, qrcode.Low, false},
		{sheet.LevelMedium, qrcode.Medium, false},
		{"", qrcode.Medium, false},
		{sheet.LevelHigh, qrcode.High, false},
		{sheet.LevelHighest, qrcode.Highest, false},
		{"ultra", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
