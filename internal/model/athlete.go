package model

import "time"

// Sexo is the athlete's declared sex marker used for category assignment.
type Sexo string

const (
	SexoMasculino Sexo = "M"
	SexoFeminino  Sexo = "F"
)

// Athlete represents a registered athlete account.
type Athlete struct {
	ID             int        `json:"id"`
	CPF            string     `json:"cpf"`
	Nome           string     `json:"nome"`
	Email          *string    `json:"email,omitempty"`
	DataNascimento *time.Time `json:"data_nascimento,omitempty"`
	Sexo           *Sexo      `json:"sexo,omitempty"`
	PasswordHash   string     `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AthleteSignupRequest is the payload for creating an athlete account.
type AthleteSignupRequest struct {
	CPF            string  `json:"cpf" binding:"required,min=11,max=14"`
	Nome           string  `json:"nome" binding:"required,min=2,max=120"`
	Email          *string `json:"email" binding:"omitempty,email"`
	DataNascimento *string `json:"data_nascimento" binding:"omitempty,datetime=2006-01-02"`
	Sexo           *Sexo   `json:"sexo" binding:"omitempty,oneof=M F"`
	Password       string  `json:"password" binding:"required,min=6,max=128"`
}

// AthleteLoginRequest is the payload for athlete authentication.
type AthleteLoginRequest struct {
	CPF      string `json:"cpf" binding:"required,min=11,max=14"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// AthleteLoginResponse is returned after successful athlete login.
type AthleteLoginResponse struct {
	Token   string  `json:"token"`
	Athlete Athlete `json:"athlete"`
}
