package common

import (
	"os"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative path", "abc/def", false},
		{"absolute path", "/tmp/abc", false},
		{"trailing slash", "abc/", false},
		{"invalid - empty", "", true},
		{"invalid - NUL byte", "abc\x00def", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNotEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "text", false},
		{"invalid - empty", "", true},
		{"invalid - whitespace", "  \t ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotEmpty(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNotEmpty() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCharsetName(t *testing.T) {
	tests := []struct {
		name    string
		charset string
		wantErr bool
	}{
		{"utf-8", "utf-8", false},
		{"GBK", "GBK", false},
		{"ISO 8859", "ISO-8859-1", false},
		{"invalid - empty", "", true},
		{"invalid - space", "utf 8", true},
		{"invalid - slash", "utf/8", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCharsetName(tt.charset)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCharsetName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCapacity(t *testing.T) {
	if err := ValidateCapacity(0); err != nil {
		t.Errorf("ValidateCapacity(0) error = %v, want nil", err)
	}
	if err := ValidateCapacity(-1); err == nil {
		t.Error("ValidateCapacity(-1) error = nil, want error")
	}
}

func TestParseFileMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    os.FileMode
		wantErr bool
	}{
		{"with leading zero", "0755", 0755, false},
		{"without leading zero", "644", 0644, false},
		{"invalid - not octal", "0789", 0, true},
		{"invalid - too large", "1777", 0, true},
		{"invalid - empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFileMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFileMode() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseFileMode() = %o, want %o", got, tt.want)
			}
		})
	}
}
