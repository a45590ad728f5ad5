package models

import "time"

// Server сервер, на который ссылаются приложения.
type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Alias     *string   `json:"alias"`
	CreatedAt time.Time `json:"createdAt"`
}

// ServerInput данные для создания сервера.
type ServerInput struct {
	Name  string  `json:"name" validate:"required"`
	Alias *string `json:"alias,omitempty"`
}

// ServerPatch частичное обновление сервера.
type ServerPatch struct {
	Name  *string `json:"name,omitempty"`
	Alias *string `json:"alias,omitempty"`
}
