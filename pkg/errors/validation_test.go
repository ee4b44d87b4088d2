package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/socialgraph/pkg/network"
)

func TestValidatePersonName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Alex", false},
		{"valid with space", "Mary Jane", false},
		{"valid unicode", "Zoë", false},
		{"valid punctuation", "O'Brien-Smith", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"leading space", " Alex", true},
		{"trailing space", "Alex ", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersonName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePersonName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if GetCode(err) != ErrCodeInvalidName {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidName)
			}
			if !errors.Is(err, network.ErrInvalidID) {
				t.Error("validation failure should wrap network.ErrInvalidID")
			}
		})
	}
}

func TestValidatePersonNameMessage(t *testing.T) {
	err := ValidatePersonName(" Alex")
	want := `INVALID_NAME: person name " Alex" has leading or trailing whitespace: invalid person ID`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if strings.Contains(err.Error(), "must not be empty") {
		t.Error("whitespace failure should not mention an empty name")
	}
}

func TestValidateSnapshotName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "demo", false},
		{"valid with dash", "class-of-2024", false},
		{"valid with dot", "backup.1", false},
		{"valid with underscore", "my_net", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"path traversal", "a..b", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"leading dot", ".hidden", true},
		{"space", "my net", true},
		{"colon", "a:b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		schemes []string
		wantErr bool
	}{
		{"nats", "nats://localhost:4222", []string{"nats", "tls"}, false},
		{"mongo srv", "mongodb+srv://cluster.example.com", []string{"mongodb", "mongodb+srv"}, false},
		{"neo4j", "neo4j://localhost:7687", []string{"neo4j", "bolt"}, false},

		{"empty", "", []string{"nats"}, true},
		{"wrong scheme", "http://localhost:4222", []string{"nats"}, true},
		{"no scheme", "localhost:4222", []string{"nats"}, true},
		{"unparsable", "nats://[::1", []string{"nats"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input, tt.schemes...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
