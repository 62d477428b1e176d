package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "reader@example.com", false},
		{"valid with plus tag", "reader+blog@example.com", false},
		{"valid subdomain", "reader@mail.example.co.uk", false},
		{"missing at sign", "readerexample.com", true},
		{"missing domain", "reader@", true},
		{"missing tld", "reader@example", true},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 250) + "@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Correct1Horse", ""},
		{"too short", "Ab1", "at least 8 characters"},
		{"too long", strings.Repeat("Aa1", 30), "must not exceed 72"},
		{"no uppercase", "alllower1", "uppercase letter"},
		{"no lowercase", "ALLUPPER1", "lowercase letter"},
		{"no digit", "NoDigitsHere", "digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Ada Lovelace"))
	assert.Error(t, ValidateName("A"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("n", 101)))
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("The Art of Computer Programming"))
	assert.Error(t, ValidateTitle(""))
	assert.Error(t, ValidateTitle("   "))
	assert.Error(t, ValidateTitle(strings.Repeat("t", 201)))
}

func TestValidateBody(t *testing.T) {
	assert.NoError(t, ValidateBody("Some content."))
	assert.Error(t, ValidateBody(""))
	assert.Error(t, ValidateBody(" \n\t "))
}
