package models

import "time"

// Client клиент консоли.
type Client struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          *string   `json:"phone"`
	Email          string    `json:"email"`
	SubscriptionID *string   `json:"subscriptionId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ClientInput данные для создания клиента.
type ClientInput struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required"`
	Phone          *string `json:"phone,omitempty"`
	SubscriptionID *string `json:"subscriptionId,omitempty"`
}

// ClientPatch частичное обновление клиента, nil-поля не меняются.
type ClientPatch struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	SubscriptionID *string `json:"subscriptionId,omitempty"`
}
