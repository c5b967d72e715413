package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/domain/validation"
)

// CategoryUseCase categorías de productos.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List devuelve las categorías activas.
func (uc *CategoryUseCase) List(ctx context.Context) ([]entity.Category, error) {
	return uc.repo.List(ctx, true)
}

// Create crea una categoría; nombre repetido llega como *domain.DuplicateError.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*entity.Category, error) {
	var v validation.Errors
	v.Required(in.Name, "Nome é obrigatório")
	if err := v.Err(); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: strings.TrimSpace(in.Name), Description: validation.TrimPtr(in.Description), Active: true}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
