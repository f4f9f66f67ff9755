package handlers

import (
	"image/color"
	"testing"
)

func TestProposalURL(t *testing.T) {
	t.Setenv("BASE_URL", "")
	if got := proposalURL("KP12345"); got != "http://localhost:9000/api/estimates/KP12345" {
		t.Errorf("default URL = %q", got)
	}

	t.Setenv("BASE_URL", "https://pools.example.com")
	if got := proposalURL("KP12345"); got != "https://pools.example.com/api/estimates/KP12345" {
		t.Errorf("configured URL = %q", got)
	}
}

func TestProposalQRImage(t *testing.T) {
	img, err := proposalQRImage("KP12345", 128)
	if err != nil {
		t.Fatalf("proposalQRImage: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 128 {
		t.Errorf("width = %d, want 128", bounds.Dx())
	}
	// The label strip below the code makes the image taller than wide.
	if bounds.Dy() <= 128 {
		t.Errorf("height = %d, want > 128", bounds.Dy())
	}

	// The label strip starts white.
	if got := img.At(0, 130); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("label strip corner = %v, want white", got)
	}
}
