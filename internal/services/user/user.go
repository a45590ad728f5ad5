// Package services содержит сервис учётных записей, которыми управляет администратор.
package services

import (
	"log/slog"

	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/services/crud"
)

// UserService управляет таблицей пользователей.
type UserService struct {
	*crud.Service[models.User, models.UserInput, models.UserPatch]
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(store crud.Store, log *slog.Logger) *UserService {
	msgs := crud.MessagesFor("user", "email and role are required")
	return &UserService{
		Service: crud.New[models.User, models.UserInput, models.UserPatch](store, models.TableUsers, msgs, log),
	}
}
