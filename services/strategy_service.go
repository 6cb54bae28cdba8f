package services

import (
	"context"
	"net/url"
	"time"

	"stratplan/apperrors"
	"stratplan/models"
	"stratplan/permissions"
	"stratplan/query"
	repository "stratplan/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StrategyService interface {
	List(ctx context.Context, actor models.Actor, params url.Values) ([]models.Strategy, models.Pagination, error)
	GetByID(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.Strategy, error)
	Create(ctx context.Context, actor models.Actor, strategy *models.Strategy) (*models.Strategy, error)
	Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.UpdateStrategyInput) (*models.Strategy, error)
	Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error
}

type strategyService struct {
	repo repository.StrategyRepository
}

func NewStrategyService(repo repository.StrategyRepository) StrategyService {
	return &strategyService{
		repo: repo,
	}
}

func (s *strategyService) List(ctx context.Context, actor models.Actor, params url.Values) ([]models.Strategy, models.Pagination, error) {
	if d := permissions.Authorize(actor, permissions.ResourceStrategies, permissions.ActionRead, nil); !d.Allowed {
		return nil, models.Pagination{}, apperrors.Authorization(d.Reason)
	}

	scope := permissions.ListScope(actor, permissions.ResourceStrategies)
	q := query.Strategies.Build(params, scope)

	strategies, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return strategies, models.Pagination{Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func (s *strategyService) GetByID(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.Strategy, error) {
	if d := permissions.Authorize(actor, permissions.ResourceStrategies, permissions.ActionRead, nil); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *strategyService) Create(ctx context.Context, actor models.Actor, strategy *models.Strategy) (*models.Strategy, error) {
	if d := permissions.Authorize(actor, permissions.ResourceStrategies, permissions.ActionCreate, nil); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}

	// The parent reference is weak: it is stored as given, whether or
	// not the issue exists. Ranking is scoped to the parent.
	if strategy.Order == 0 {
		max, err := s.repo.MaxOrderInIssue(ctx, strategy.StrategicIssueID)
		if err != nil {
			return nil, err
		}
		strategy.Order = max + 1
	}

	now := time.Now()
	strategy.Metadata = models.Metadata{
		CreatedBy: actor.ID,
		UpdatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, strategy); err != nil {
		return nil, err
	}
	return strategy, nil
}

func (s *strategyService) Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.UpdateStrategyInput) (*models.Strategy, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := &permissions.Target{ID: existing.ID.Hex(), CreatedBy: existing.Metadata.CreatedBy}
	if d := permissions.Authorize(actor, permissions.ResourceStrategies, permissions.ActionUpdate, target); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}

	if input.StrategicIssueID != nil {
		existing.StrategicIssueID = *input.StrategicIssueID
	}
	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Order != nil {
		existing.Order = *input.Order
	}

	existing.Metadata.UpdatedBy = actor.ID
	existing.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *strategyService) Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	target := &permissions.Target{ID: existing.ID.Hex(), CreatedBy: existing.Metadata.CreatedBy}
	if d := permissions.Authorize(actor, permissions.ResourceStrategies, permissions.ActionDelete, target); !d.Allowed {
		return apperrors.Authorization(d.Reason)
	}

	return s.repo.Delete(ctx, id)
}
