package user

import (
	"context"
	"strings"

	"go-tours/internal/models"
	"go-tours/pkg/query"
	"go-tours/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type Service interface {
	List(ctx context.Context, params map[string]string) ([]models.User, error)
	UpdateMe(ctx context.Context, userID string, input UpdateMeInput) (*models.User, error)
	DeleteMe(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, id string) error
}

type UpdateMeInput struct {
	Name  string `json:"name" validate:"omitempty,min=1"`
	Email string `json:"email" validate:"omitempty,email"`
}

type ServiceImpl struct {
	Repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{Repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, params map[string]string) ([]models.User, error) {
	features := query.New(params).Filter().Sort().LimitFields().Paginate()
	return s.Repo.List(ctx, features.Conditions(), features.Options(), ScopeActive)
}

func (s *ServiceImpl) UpdateMe(ctx context.Context, userID string, input UpdateMeInput) (*models.User, error) {
	if err := utils.Validate.Struct(input); err != nil {
		return nil, err
	}

	set := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Email != "" {
		set["email"] = strings.ToLower(input.Email)
	}
	return s.Repo.UpdateFields(ctx, userID, set, ScopeActive)
}

func (s *ServiceImpl) DeleteMe(ctx context.Context, userID string) error {
	return s.Repo.Deactivate(ctx, userID)
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
