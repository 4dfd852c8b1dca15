package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/velocita/velocita-backend/internal/model"
)

func TestNormalizeCPF(t *testing.T) {
	assert.Equal(t, "12345678900", NormalizeCPF("123.456.789-00"))
	assert.Equal(t, "12345678900", NormalizeCPF("12345678900"))
	assert.Equal(t, "", NormalizeCPF("abc"))
}

func TestCheckData(t *testing.T) {
	svc := NewAthleteService(nil)

	email := "ana@example.com"
	nascimento := time.Date(1992, 3, 14, 0, 0, 0, 0, time.UTC)
	sexo := model.SexoFeminino

	t.Run("all fields filled", func(t *testing.T) {
		data := svc.CheckData(&model.Athlete{
			CPF:            "12345678900",
			Nome:           "Ana Souza",
			Email:          &email,
			DataNascimento: &nascimento,
			Sexo:           &sexo,
		})

		assert.Equal(t, "12345678900", data.CPF)
		assert.Equal(t, "Ana Souza", data.Nome)
		assert.Equal(t, "ana@example.com", *data.Email)
		assert.Equal(t, "1992-03-14", *data.DataNascimento)
		assert.Equal(t, "F", *data.Sexo)
	})

	t.Run("optional fields stay absent", func(t *testing.T) {
		data := svc.CheckData(&model.Athlete{CPF: "12345678900", Nome: "Ana Souza"})

		assert.Nil(t, data.Email)
		assert.Nil(t, data.DataNascimento)
		assert.Nil(t, data.Sexo)
	})
}
