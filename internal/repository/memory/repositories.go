package memory

import (
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/repository"
)

// NewRepositories creates a new set of in-memory repositories
func NewRepositories(logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Catalog: NewCatalogRepository(logger),
		User:    NewUserRepository(logger),
	}
}
