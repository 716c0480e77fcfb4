package tour

import (
	"context"
	"fmt"
	"time"

	"go-tours/internal/models"
	"go-tours/pkg/query"
	"go-tours/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const defaultRatingsAverage = 4.5

type Service interface {
	List(ctx context.Context, params map[string]string) ([]models.Tour, error)
	Get(ctx context.Context, id string) (*models.Tour, error)
	Create(ctx context.Context, t *models.Tour) (*models.Tour, error)
	Update(ctx context.Context, id string, input UpdateTourInput) (*models.Tour, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) ([]bson.M, error)
	MonthlyPlan(ctx context.Context, year int) ([]bson.M, error)
}

// UpdateTourInput is a partial patch; nil means "leave unchanged".
type UpdateTourInput struct {
	Name           *string               `json:"name" validate:"omitempty,min=10,max=40"`
	Duration       *int                  `json:"duration" validate:"omitempty,gt=0"`
	MaxGroupSize   *int                  `json:"maxGroupSize" validate:"omitempty,gt=0"`
	Difficulty     *models.TourDifficulty `json:"difficulty" validate:"omitempty,oneof=easy medium difficult"`
	RatingsAverage *float64              `json:"ratingsAverage" validate:"omitempty,gte=1,lte=5"`
	Price          *float64              `json:"price" validate:"omitempty,gt=0"`
	PriceDiscount  *float64              `json:"priceDiscount"`
	Summary        *string               `json:"summary"`
	Description    *string               `json:"description"`
	ImageCover     *string               `json:"imageCover"`
	Images         []string              `json:"images"`
	StartDates     []time.Time           `json:"startDates"`
	SecretTour     *bool                 `json:"secretTour"`
}

type ServiceImpl struct {
	Repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{Repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, params map[string]string) ([]models.Tour, error) {
	features := query.New(params).Filter().Sort().LimitFields().Paginate()
	return s.Repo.List(ctx, features.Conditions(), features.Options(), ScopeVisible)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (*models.Tour, error) {
	return s.Repo.FindByID(ctx, id, ScopeVisible)
}

func (s *ServiceImpl) Create(ctx context.Context, t *models.Tour) (*models.Tour, error) {
	if t.RatingsAverage == 0 {
		t.RatingsAverage = defaultRatingsAverage
	}
	if err := utils.Validate.Struct(t); err != nil {
		return nil, err
	}
	t.Slug = utils.Slugify(t.Name)

	return s.Repo.Create(ctx, t)
}

func (s *ServiceImpl) Update(ctx context.Context, id string, input UpdateTourInput) (*models.Tour, error) {
	if err := utils.Validate.Struct(input); err != nil {
		return nil, err
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
		// slug follows the name
		set["slug"] = utils.Slugify(*input.Name)
	}
	if input.Duration != nil {
		set["duration"] = *input.Duration
	}
	if input.MaxGroupSize != nil {
		set["maxGroupSize"] = *input.MaxGroupSize
	}
	if input.Difficulty != nil {
		set["difficulty"] = *input.Difficulty
	}
	if input.RatingsAverage != nil {
		set["ratingsAverage"] = *input.RatingsAverage
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.PriceDiscount != nil {
		set["priceDiscount"] = *input.PriceDiscount
	}
	if input.Summary != nil {
		set["summary"] = *input.Summary
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.ImageCover != nil {
		set["imageCover"] = *input.ImageCover
	}
	if input.Images != nil {
		set["images"] = input.Images
	}
	if input.StartDates != nil {
		set["startDates"] = input.StartDates
	}
	if input.SecretTour != nil {
		set["secretTour"] = *input.SecretTour
	}

	return s.Repo.Update(ctx, id, set, ScopeVisible)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id, ScopeVisible)
}

// Stats groups well-rated tours per difficulty.
func (s *ServiceImpl) Stats(ctx context.Context) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"ratingsAverage": bson.M{"$gte": 4.6}}}},
		{{Key: "$group", Value: bson.M{
			"_id":        bson.M{"$toUpper": "$difficulty"},
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRatings": bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"avgPrice": 1}}},
	}

	return s.Repo.Aggregate(ctx, pipeline, ScopeVisible)
}

// MonthlyPlan counts tour starts per month of the given year.
func (s *ServiceImpl) MonthlyPlan(ctx context.Context, year int) ([]bson.M, error) {
	from, err := time.Parse(time.RFC3339, fmt.Sprintf("%d-01-01T00:00:00Z", year))
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(time.RFC3339, fmt.Sprintf("%d-12-31T23:59:59Z", year))
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$startDates"}},
		{{Key: "$match", Value: bson.M{
			"startDates": bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}}},
		{{Key: "$addFields", Value: bson.M{"month": "$_id"}}},
		{{Key: "$project", Value: bson.M{"_id": 0}}},
		{{Key: "$sort", Value: bson.M{"numTourStarts": -1}}},
		{{Key: "$limit", Value: 12}},
	}

	return s.Repo.Aggregate(ctx, pipeline, ScopeVisible)
}
