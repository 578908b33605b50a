package services

import (
	"context"

	"go.uber.org/zap"

	"plantillas-system/internal/entities"
	"plantillas-system/internal/repositories"
)

type CatalogServiceInterface interface {
	ListOperarios(ctx context.Context) ([]entities.Operario, error)
	ListProveedores(ctx context.Context) ([]entities.Proveedor, error)
}

type CatalogService struct {
	repo   repositories.CatalogRepositoryInterface
	logger *zap.Logger
}

func NewCatalogService(repo repositories.CatalogRepositoryInterface, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) ListOperarios(ctx context.Context) ([]entities.Operario, error) {
	rows, err := s.repo.ListOperarios(ctx)
	if err != nil {
		s.logger.Error("error obteniendo operarios", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *CatalogService) ListProveedores(ctx context.Context) ([]entities.Proveedor, error) {
	rows, err := s.repo.ListProveedores(ctx)
	if err != nil {
		s.logger.Error("error obteniendo proveedores", zap.Error(err))
		return nil, err
	}
	return rows, nil
}
