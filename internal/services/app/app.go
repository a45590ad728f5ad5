// Package services содержит сервис данных приложений.
package services

import (
	"log/slog"

	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/services/crud"
)

// AppService управляет таблицей приложений.
type AppService struct {
	*crud.Service[models.App, models.AppInput, models.AppPatch]
}

// NewAppService создает новый экземпляр AppService.
func NewAppService(store crud.Store, log *slog.Logger) *AppService {
	msgs := crud.MessagesFor("app", "name is required")
	return &AppService{
		Service: crud.New[models.App, models.AppInput, models.AppPatch](store, models.TableApps, msgs, log),
	}
}
