package models

import "time"

// App приложение с кодом доступа, ссылками на загрузку и привязкой к серверу.
type App struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	AccessCode string    `json:"accessCode"`
	AndroidURL *string   `json:"androidUrl"`
	IOSURL     *string   `json:"iosUrl"`
	ServerID   *string   `json:"serverId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AppInput данные для создания приложения.
type AppInput struct {
	Name       string  `json:"name" validate:"required"`
	AccessCode string  `json:"accessCode"`
	AndroidURL *string `json:"androidUrl,omitempty"`
	IOSURL     *string `json:"iosUrl,omitempty"`
	ServerID   *string `json:"serverId,omitempty"`
}

// AppPatch частичное обновление приложения.
type AppPatch struct {
	Name       *string `json:"name,omitempty"`
	AccessCode *string `json:"accessCode,omitempty"`
	AndroidURL *string `json:"androidUrl,omitempty"`
	IOSURL     *string `json:"iosUrl,omitempty"`
	ServerID   *string `json:"serverId,omitempty"`
}

// FieldServerID поле записи приложения со ссылкой на сервер.
const FieldServerID = "serverId"
