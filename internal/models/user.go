package models

import "time"

// Роли пользователей консоли.
const (
	RoleAdmin  = "admin"
	RoleCommon = "common"
	RoleUser   = "user"
)

// User учётная запись, которой управляет администратор.
// Не путать с Identity текущей сессии.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserInput данные для создания пользователя.
type UserInput struct {
	Email string `json:"email" validate:"required"`
	Role  string `json:"role" validate:"required"`
}

// UserPatch частичное обновление пользователя.
type UserPatch struct {
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}
