package websocket

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventRegistrationCreated   Event = "registration_created"
	EventRegistrationRejected  Event = "registration_rejected"
	EventRegistrationCancelled Event = "registration_cancelled"
	EventError                 Event = "error"
	EventPong                  Event = "pong"
)

// MonitorEvent is published on the event monitor channel whenever a
// registration attempt resolves, and relayed verbatim to organizer
// dashboards. AthleteCPF is always the masked form.
type MonitorEvent struct {
	Event      Event  `json:"event"`
	EventID    string `json:"event_id"`
	ModalityID string `json:"modality_id"`
	AthleteCPF string `json:"athlete_cpf"`
	BibNumber  int    `json:"bib_number,omitempty"`
	Eligible   bool   `json:"eligible"`
}

// ErrorResponse is sent to the client on protocol errors.
type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

// PongResponse answers a client ping.
type PongResponse struct {
	Event Event `json:"event"`
}

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}
