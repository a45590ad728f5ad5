// Package services содержит сервис данных тарифных планов.
package services

import (
	"log/slog"

	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/services/crud"
)

// PlanService управляет таблицей планов.
type PlanService struct {
	*crud.Service[models.Plan, models.PlanInput, models.PlanPatch]
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(store crud.Store, log *slog.Logger) *PlanService {
	msgs := crud.MessagesFor("plan", "name and price are required")
	return &PlanService{
		Service: crud.New[models.Plan, models.PlanInput, models.PlanPatch](store, models.TablePlans, msgs, log),
	}
}
