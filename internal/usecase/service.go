package usecase

import (
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Catalog     CatalogService
	Inventory   InventoryService
	Reservation ReservationService
	Order       OrderService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Catalog:     NewCatalogService(repo, log),
		Inventory:   NewInventoryService(repo, log),
		Reservation: NewReservationService(db, repo, log),
		Order:       NewOrderService(db, repo, log),
	}
}
