package errors

import (
	"math"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 12, false},
		{"small positive", 0.01, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateLightCount(t *testing.T) {
	if err := ValidateLightCount("plain", 0); err != nil {
		t.Errorf("zero (automatic) should be valid: %v", err)
	}
	if err := ValidateLightCount("plain", 12); err != nil {
		t.Errorf("positive count should be valid: %v", err)
	}
	if err := ValidateLightCount("plain", -1); err == nil {
		t.Error("negative count should be rejected")
	}
}

func TestValidateDesignFilename(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFormat string
		wantErr    bool
	}{
		{"json", "kitchen.json", "json", false},
		{"toml", "designs/kitchen.toml", "toml", false},
		{"yaml", "kitchen.yaml", "yaml", false},
		{"yml", "kitchen.yml", "yaml", false},
		{"upper case ext", "KITCHEN.TOML", "toml", false},

		{"empty", "", "", true},
		{"no extension", "kitchen", "", true},
		{"unsupported", "kitchen.svg", "", true},
		{"control char", "kit\x01chen.json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ValidateDesignFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDesignFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if format != tt.wantFormat {
				t.Errorf("format = %q, want %q", format, tt.wantFormat)
			}
		})
	}
}

func TestValidateTopicSegment(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "6f1c8c1e-1d2b-4b8e-9a57-4a1f0e0c2d11", false},
		{"slug", "living-room", false},

		{"empty", "", true},
		{"plus wildcard", "room+1", true},
		{"hash wildcard", "room#", true},
		{"separator", "floor/room", true},
		{"control char", "room\n", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopicSegment(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTopicSegment(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCacheURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", false},
		{"rediss", "rediss://cache.internal:6380", false},
		{"mongo", "mongodb://localhost:27017", false},
		{"mongo srv", "mongodb+srv://cluster.example.net", false},

		{"empty", "", true},
		{"http", "http://localhost", true},
		{"file", "/tmp/cache", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCacheURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCacheURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidConfig,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
