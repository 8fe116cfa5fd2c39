package dto

import "time"

type SessionTurnPayload struct {
	Role     string                 `json:"role" validate:"required,oneof=user model"`
	Text     string                 `json:"text" validate:"required"`
	ImageRef string                 `json:"image_ref"`
	Metadata map[string]interface{} `json:"metadata"`
}

type PutSessionRequest struct {
	Token string
	Turns []SessionTurnPayload `json:"turns" validate:"required,dive"`
}

type SessionTurnResponse struct {
	Position int                    `json:"position"`
	Role     string                 `json:"role"`
	Text     string                 `json:"text"`
	ImageRef string                 `json:"image_ref"`
	Metadata map[string]interface{} `json:"metadata"`
}

type ShowSessionResponse struct {
	Token     string                `json:"token"`
	Turns     []SessionTurnResponse `json:"turns"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt *time.Time            `json:"updated_at"`
}
