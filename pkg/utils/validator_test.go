package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "plain address", email: "joao.silva@example.com", wantErr: false},
		{name: "subdomain", email: "rh@farmace.com.br", wantErr: false},
		{name: "plus tag", email: "joao+vouchers@example.com", wantErr: false},
		{name: "missing at sign", email: "joao.example.com", wantErr: true},
		{name: "missing tld", email: "joao@example", wantErr: true},
		{name: "empty", email: "", wantErr: true},
		{name: "spaces", email: "joao silva@example.com", wantErr: true},
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

func TestValidateCPFFormat(t *testing.T) {
	tests := []struct {
		name    string
		cpf     string
		wantErr bool
	}{
		{name: "formatted CPF", cpf: "123.456.789-00", wantErr: false},
		{name: "bare digits", cpf: "12345678900", wantErr: true},
		{name: "wrong punctuation", cpf: "123-456-789.00", wantErr: true},
		{name: "too short", cpf: "123.456.78-00", wantErr: true},
		{name: "empty", cpf: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCPFFormat(tt.cpf)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
