package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   map[string]string
		want     string
	}{
		{
			name:     "cpf is stripped to digits before substitution",
			template: "https://api.example.com/atletas/{cpf}",
			params:   map[string]string{"cpf": "123.456.789-00"},
			want:     "https://api.example.com/atletas/12345678900",
		},
		{
			name:     "values are percent encoded",
			template: "https://api.example.com/busca?nome={nome}",
			params:   map[string]string{"nome": "João da Silva"},
			want:     "https://api.example.com/busca?nome=Jo%C3%A3o%20da%20Silva",
		},
		{
			name:     "spaces in path segments become %20 not plus",
			template: "https://api.example.com/atletas/{nome}",
			params:   map[string]string{"nome": "Maria Souza"},
			want:     "https://api.example.com/atletas/Maria%20Souza",
		},
		{
			name:     "unresolved placeholders stay verbatim",
			template: "https://api.example.com/{cpf}/{federacao}",
			params:   map[string]string{"cpf": "12345678900"},
			want:     "https://api.example.com/12345678900/{federacao}",
		},
		{
			name:     "non-cpf params are not digit normalized",
			template: "https://api.example.com/v?d={dataNascimento}",
			params:   map[string]string{"dataNascimento": "1990-05-01"},
			want:     "https://api.example.com/v?d=1990-05-01",
		},
		{
			name:     "no params leaves template untouched",
			template: "https://api.example.com/ping",
			params:   map[string]string{},
			want:     "https://api.example.com/ping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeURL(tt.template, tt.params))
		})
	}
}

func TestMaskCPF(t *testing.T) {
	tests := []struct {
		name string
		cpf  string
		want string
	}{
		{"punctuated cpf", "123.456.789-00", "123.***.***-00"},
		{"bare digits", "98765432100", "987.***.***-00"},
		{"too short is fully masked", "123", "***.***.***-**"},
		{"empty is fully masked", "", "***.***.***-**"},
		{"letters only is fully masked", "nao-e-um-cpf", "***.***.***-**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskCPF(tt.cpf))
		})
	}
}
