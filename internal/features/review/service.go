package review

import (
	"context"

	"go-tours/internal/models"
	"go-tours/pkg/query"
	"go-tours/pkg/utils"
)

type Service interface {
	List(ctx context.Context, params map[string]string) ([]models.Review, error)
	Get(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, rev *models.Review) (*models.Review, error)
}

type ServiceImpl struct {
	Repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{Repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, params map[string]string) ([]models.Review, error) {
	features := query.New(params).Filter().Sort().LimitFields().Paginate()
	return s.Repo.List(ctx, features.Conditions(), features.Options())
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (*models.Review, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, rev *models.Review) (*models.Review, error) {
	if err := utils.Validate.Struct(rev); err != nil {
		return nil, err
	}
	return s.Repo.Create(ctx, rev)
}
