package ports

import (
	"context"

	"github.com/jhoicas/stockpro/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  repository.ProductRepository
	Movements repository.StockMovementRepository
	Sales     repository.SaleRepository
	Activity  repository.ActivityRepository
	Users     repository.UserRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD. Si fn devuelve error se hace
// rollback y ninguna escritura de fn queda persistida.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
