// Package dto contains the request and response bodies of the HTTP API.
package dto

// WebhookRequest is a structured question produced upstream by the
// dialog layer: an action name, the raw parameter values extracted from
// the utterance, and the conversation the question belongs to.
type WebhookRequest struct {
	Action         string            `json:"action" binding:"required"`
	Parameters     map[string]string `json:"parameters"`
	ConversationID string            `json:"conversationId" binding:"required"`
}

// WebhookResponse carries the answer text back to the dialog layer.
type WebhookResponse struct {
	Text                  string `json:"text"`
	EndOfConversationTurn bool   `json:"endOfConversationTurn"`
}

// TokenRequest asks for an admin token in exchange for the shared secret.
type TokenRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// TokenResponse returns a signed admin token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// ReloadResponse reports the outcome of a snapshot reload.
type ReloadResponse struct {
	Programs    int    `json:"programs"`
	Terms       int    `json:"terms"`
	Courses     int    `json:"courses"`
	Sessions    int    `json:"sessions"`
	Assessments int    `json:"assessments"`
	Instructors int    `json:"instructors"`
	LoadedAt    string `json:"loadedAt"`
}

// HealthResponse reports service liveness and snapshot freshness.
type HealthResponse struct {
	Status        string `json:"status"`
	SnapshotAge   string `json:"snapshotAge,omitempty"`
	Courses       int    `json:"courses"`
	CachedReplies int    `json:"cachedReplies"`
}
