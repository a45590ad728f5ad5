package models

import "time"

// ExpiredDueDate дата окончания, которой помечается вытесненная подписка клиента.
var ExpiredDueDate = time.Unix(0, 0).UTC()

// Поля записи подписки.
const (
	FieldClientID = "clientId"
	FieldDueDate  = "dueDate"
)

// Subscription связывает клиента с планом.
type Subscription struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"clientId"`
	PlanID    string     `json:"planId"`
	DueDate   *time.Time `json:"dueDate"`
	Price     float64    `json:"price"`
	Renewals  int        `json:"renewals"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Expired сообщает, помечена ли подписка как истёкшая.
func (s Subscription) Expired() bool {
	return s.DueDate != nil && s.DueDate.Equal(ExpiredDueDate)
}

// SubscriptionInput данные для оформления подписки.
type SubscriptionInput struct {
	ClientID string     `json:"clientId" validate:"required"`
	PlanID   string     `json:"planId" validate:"required"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
	Price    float64    `json:"price"`
	Renewals int        `json:"renewals"`
}

// SubscriptionPatch частичное обновление подписки.
type SubscriptionPatch struct {
	ClientID *string    `json:"clientId,omitempty"`
	PlanID   *string    `json:"planId,omitempty"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
	Price    *float64   `json:"price,omitempty"`
	Renewals *int       `json:"renewals,omitempty"`
}

// RenewRequest параметры продления. Пустые поля сохраняют текущие значения.
type RenewRequest struct {
	DueDate *time.Time `json:"dueDate,omitempty"`
	Price   *float64   `json:"price,omitempty"`
}
