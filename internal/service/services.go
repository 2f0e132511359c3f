package service

import (
	"context"
	"fmt"

	apperrors "carebook/internal/errors"
	"carebook/internal/logger"
	"carebook/internal/models"
)

// CatalogService manages service listings: admin creation and public reads.
type CatalogService struct {
	serviceStore ServiceStore
	searchIndex  SearchIndex
}

func NewCatalogService(serviceStore ServiceStore, searchIndex SearchIndex) *CatalogService {
	return &CatalogService{
		serviceStore: serviceStore,
		searchIndex:  searchIndex,
	}
}

func (s *CatalogService) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.Service, error) {
	if !models.IsValidCategory(req.Category) {
		return nil, fmt.Errorf("unknown category %q: %w", req.Category, apperrors.ErrBadRequest)
	}
	if req.PricePerHour <= 0 {
		return nil, fmt.Errorf("price per hour must be positive: %w", apperrors.ErrBadRequest)
	}

	service := &models.Service{
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		PricePerHour: req.PricePerHour,
		Category:     req.Category,
		Features:     req.Features,
	}
	if service.Features == nil {
		service.Features = []string{}
	}

	if err := s.serviceStore.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	// The database is the source of truth; search indexing is best effort
	if s.searchIndex != nil {
		if err := s.searchIndex.IndexService(ctx, service); err != nil {
			logger.WithContext(ctx).Error("Failed to index service",
				"error", err,
				"service_id", service.ID)
		}
	}

	return service, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Service, error) {
	service, err := s.serviceStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if service == nil {
		return nil, fmt.Errorf("service %s: %w", id, apperrors.ErrNotFound)
	}
	return service, nil
}

// List returns catalog listings. Free-text queries go through the search
// index; plain category/page reads come from the database.
func (s *CatalogService) List(ctx context.Context, query, category string, page, pageSize int) ([]models.Service, error) {
	if query != "" && s.searchIndex != nil {
		services, err := s.searchIndex.Search(ctx, query, category, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to search services: %w", err)
		}
		return services, nil
	}

	services, err := s.serviceStore.List(ctx, category, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}
