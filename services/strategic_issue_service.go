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

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StrategicIssueService interface {
	List(ctx context.Context, actor models.Actor, params url.Values) ([]models.StrategicIssue, models.Pagination, error)
	GetByID(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.StrategicIssue, error)
	Create(ctx context.Context, actor models.Actor, issue *models.StrategicIssue) (*models.StrategicIssue, error)
	Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.UpdateStrategicIssueInput) (*models.StrategicIssue, error)
	Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error
}

type strategicIssueService struct {
	repo       repository.StrategicIssueRepository
	strategies repository.StrategyRepository
}

func NewStrategicIssueService(repo repository.StrategicIssueRepository, strategies repository.StrategyRepository) StrategicIssueService {
	return &strategicIssueService{
		repo:       repo,
		strategies: strategies,
	}
}

func (s *strategicIssueService) List(ctx context.Context, actor models.Actor, params url.Values) ([]models.StrategicIssue, models.Pagination, error) {
	if d := permissions.Authorize(actor, permissions.ResourceStrategicIssues, permissions.ActionRead, nil); !d.Allowed {
		return nil, models.Pagination{}, apperrors.Authorization(d.Reason)
	}

	scope := permissions.ListScope(actor, permissions.ResourceStrategicIssues)
	q := query.StrategicIssues.Build(params, scope)

	issues, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return issues, models.Pagination{Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func (s *strategicIssueService) GetByID(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.StrategicIssue, error) {
	if d := permissions.Authorize(actor, permissions.ResourceStrategicIssues, permissions.ActionRead, nil); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *strategicIssueService) Create(ctx context.Context, actor models.Actor, issue *models.StrategicIssue) (*models.StrategicIssue, error) {
	if d := permissions.Authorize(actor, permissions.ResourceStrategicIssues, permissions.ActionCreate, nil); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}
	if issue.EndPeriod < issue.StartPeriod {
		return nil, apperrors.Validation("end_period must not precede start_period")
	}

	if issue.Order == 0 {
		max, err := s.repo.MaxOrder(ctx)
		if err != nil {
			return nil, err
		}
		issue.Order = max + 1
	}
	if issue.Status == "" {
		issue.Status = "active"
	}

	now := time.Now()
	issue.Metadata = models.Metadata{
		CreatedBy: actor.ID,
		UpdatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *strategicIssueService) Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.UpdateStrategicIssueInput) (*models.StrategicIssue, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := &permissions.Target{ID: existing.ID.Hex(), CreatedBy: existing.Metadata.CreatedBy}
	if d := permissions.Authorize(actor, permissions.ResourceStrategicIssues, permissions.ActionUpdate, target); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.StartPeriod != nil {
		existing.StartPeriod = *input.StartPeriod
	}
	if input.EndPeriod != nil {
		existing.EndPeriod = *input.EndPeriod
	}
	if input.Order != nil {
		existing.Order = *input.Order
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}

	if existing.EndPeriod < existing.StartPeriod {
		return nil, apperrors.Validation("end_period must not precede start_period")
	}

	existing.Metadata.UpdatedBy = actor.ID
	existing.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *strategicIssueService) Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	target := &permissions.Target{ID: existing.ID.Hex(), CreatedBy: existing.Metadata.CreatedBy}
	if d := permissions.Authorize(actor, permissions.ResourceStrategicIssues, permissions.ActionDelete, target); !d.Allowed {
		return apperrors.Authorization(d.Reason)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Cascade: a deleted issue takes its strategies with it.
	removed, err := s.strategies.DeleteByStrategicIssue(ctx, id.Hex())
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Info().Str("strategic_issue_id", id.Hex()).Int64("strategies_removed", removed).
			Msg("cascaded strategy deletion")
	}
	return nil
}
