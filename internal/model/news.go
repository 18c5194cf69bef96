package model

import (
	"time"

	"github.com/google/uuid"
)

type NewsItem struct {
	ID        uuid.UUID  `json:"id"`
	Heading   string     `json:"heading"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type NewsUpdate struct {
	Heading *string
	Content *string
}
