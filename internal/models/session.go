package models

import "time"

// Identity аутентифицированный пользователь текущей сессии.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session хранит текущую личность, токен и время входа.
type Session struct {
	User      Identity   `json:"user"`
	Token     string     `json:"token,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Account учётные данные из фиксированного списка допуска.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
}

// Виды ресурсов для политики доступа.
const (
	KindClient       = "client"
	KindPlan         = "plan"
	KindApp          = "app"
	KindServer       = "server"
	KindSubscription = "subscription"
	KindUser         = "user"
)
