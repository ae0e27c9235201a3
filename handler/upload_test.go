package handler

import (
	"errors"
	"testing"

	"dialog-messenger-api/apperror"
)

func TestValidateImageUpload(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     bool
	}{
		{"jpeg ok", "photo.jpg", "image/jpeg", 1024, false},
		{"png ok", "photo.png", "image/png", MaxUploadSize, false},
		{"uppercase extension ok", "PHOTO.JPG", "image/jpeg", 1024, false},
		{"oversize rejected", "photo.jpg", "image/jpeg", MaxUploadSize + 1, true},
		{"non-image type rejected", "report.pdf", "application/pdf", 1024, true},
		{"spoofed content type rejected", "payload.exe", "image/png", 1024, true},
		{"missing extension rejected", "photo", "image/jpeg", 1024, true},
		{"svg rejected", "vector.svg", "image/svg+xml", 1024, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImageUpload(tc.filename, tc.contentType, tc.size)
			if tc.wantErr {
				if !errors.Is(err, apperror.ErrBadRequest) {
					t.Errorf("ValidateImageUpload(%q, %q, %d) = %v, want bad request", tc.filename, tc.contentType, tc.size, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateImageUpload(%q, %q, %d) = %v, want nil", tc.filename, tc.contentType, tc.size, err)
			}
		})
	}
}
