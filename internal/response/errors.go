package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrAthleteAccessOnly ErrCode = "ATHLETE_ACCESS_ONLY"
	ErrOrganizerOnly     ErrCode = "ORGANIZER_ACCESS_ONLY"
	ErrNotEventOwner     ErrCode = "NOT_EVENT_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Registration-specific ─────────────────────────────────────────
	ErrAthleteNotEligible    ErrCode = "ATLETA_NAO_ELEGIVEL"
	ErrEventNotPublished     ErrCode = "EVENT_NOT_PUBLISHED"
	ErrModalityFull          ErrCode = "MODALITY_FULL"
	ErrAlreadyRegistered     ErrCode = "ALREADY_REGISTERED"
	ErrInvalidRuleConfig     ErrCode = "INVALID_RULE_CONFIG"
	ErrRegistrationNotActive ErrCode = "REGISTRATION_NOT_ACTIVE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "CPF/e-mail ou senha incorretos."
	case ErrTokenRequired:
		return "Token de autenticação é obrigatório."
	case ErrTokenInvalid:
		return "Token de autenticação inválido."
	case ErrTokenExpired:
		return "Token de autenticação expirado."
	case ErrSessionInvalidated:
		return "Sua sessão foi encerrada. Faça login novamente."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Você não tem permissão para acessar este recurso."
	case ErrAthleteAccessOnly:
		return "Este recurso é restrito a atletas."
	case ErrOrganizerOnly:
		return "Este recurso é restrito a organizadores."
	case ErrNotEventOwner:
		return "Você não é o organizador deste evento."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Falha na validação. Verifique os dados informados."
	case ErrInvalidID:
		return "Formato de ID inválido."
	case ErrInvalidPayload:
		return "Corpo da requisição inválido."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Recurso não encontrado."
	case ErrConflict:
		return "O recurso já existe."
	case ErrDependencyExists:
		return "O registro não pode ser removido pois ainda está em uso."

	// ─── Registration-specific ─────────────────────────────────────────
	case ErrAthleteNotEligible:
		return "Atleta não elegível para esta modalidade."
	case ErrEventNotPublished:
		return "Este evento não está aberto para inscrições."
	case ErrModalityFull:
		return "As vagas desta modalidade estão esgotadas."
	case ErrAlreadyRegistered:
		return "Você já possui inscrição confirmada nesta modalidade."
	case ErrInvalidRuleConfig:
		return "Configuração da regra de elegibilidade inválida."
	case ErrRegistrationNotActive:
		return "Esta inscrição não está ativa."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Muitas requisições. Tente novamente em instantes."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Ocorreu um erro interno no servidor."
	default:
		return "Ocorreu um erro inesperado."
	}
}
