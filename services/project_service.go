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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectService interface {
	List(ctx context.Context, actor models.Actor, params url.Values) ([]models.ProjectDetails, models.Pagination, error)
	GetByID(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.ProjectDetails, error)
	Create(ctx context.Context, actor models.Actor, project *models.Project) (*models.ProjectDetails, error)
	Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.UpdateProjectInput) (*models.ProjectDetails, error)
	Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error

	// PublicList and PublicStats are the explicitly anonymous code
	// paths: no actor, no guard invocation, ever.
	PublicList(ctx context.Context, params url.Values) ([]models.ProjectDetails, models.Pagination, error)
	PublicStats(ctx context.Context) ([]bson.M, error)
}

type projectService struct {
	repo     repository.ProjectRepository
	resolver *ProjectResolver
}

func NewProjectService(repo repository.ProjectRepository, resolver *ProjectResolver) ProjectService {
	return &projectService{
		repo:     repo,
		resolver: resolver,
	}
}

func (s *projectService) List(ctx context.Context, actor models.Actor, params url.Values) ([]models.ProjectDetails, models.Pagination, error) {
	if d := permissions.Authorize(actor, permissions.ResourceProjects, permissions.ActionRead, nil); !d.Allowed {
		return nil, models.Pagination{}, apperrors.Authorization(d.Reason)
	}

	// Non-admin lists are downgraded, not denied: the guard forces an
	// owner filter the client cannot override.
	scope := permissions.ListScope(actor, permissions.ResourceProjects)
	q := query.Projects.Build(params, scope)

	projects, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return s.resolver.HydrateAll(ctx, projects), models.Pagination{Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func (s *projectService) GetByID(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.ProjectDetails, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := &permissions.Target{ID: project.ID.Hex(), CreatedBy: project.Metadata.CreatedBy}
	if d := permissions.Authorize(actor, permissions.ResourceProjects, permissions.ActionRead, target); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}

	details := s.resolver.Hydrate(ctx, *project)
	return &details, nil
}

func (s *projectService) Create(ctx context.Context, actor models.Actor, project *models.Project) (*models.ProjectDetails, error) {
	if d := permissions.Authorize(actor, permissions.ResourceProjects, permissions.ActionCreate, nil); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}
	if project.EndPeriod < project.StartPeriod {
		return nil, apperrors.Validation("end_period must not precede start_period")
	}
	if project.Budget < 0 {
		return nil, apperrors.Validation("budget must not be negative")
	}

	// Association ids are stored exactly as given; existence is a
	// hydration concern, not a create-time constraint.
	if project.Districts == nil {
		project.Districts = []string{}
	}
	if project.StrategicIssues == nil {
		project.StrategicIssues = []string{}
	}
	if project.Strategies == nil {
		project.Strategies = []string{}
	}
	if project.DocumentLinks == nil {
		project.DocumentLinks = []models.DocumentLink{}
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusPlanning
	}

	now := time.Now()
	project.Metadata = models.Metadata{
		CreatedBy: actor.ID,
		UpdatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	details := s.resolver.Hydrate(ctx, *project)
	return &details, nil
}

func (s *projectService) Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.UpdateProjectInput) (*models.ProjectDetails, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := &permissions.Target{ID: existing.ID.Hex(), CreatedBy: existing.Metadata.CreatedBy}
	if d := permissions.Authorize(actor, permissions.ResourceProjects, permissions.ActionUpdate, target); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Budget != nil {
		existing.Budget = *input.Budget
	}
	if input.StartPeriod != nil {
		existing.StartPeriod = *input.StartPeriod
	}
	if input.EndPeriod != nil {
		existing.EndPeriod = *input.EndPeriod
	}
	if input.ResponsiblePerson != nil {
		existing.ResponsiblePerson = *input.ResponsiblePerson
	}
	if input.Location != nil {
		existing.Location = *input.Location
	}
	if input.Districts != nil {
		existing.Districts = *input.Districts
	}
	if input.StrategicIssues != nil {
		existing.StrategicIssues = *input.StrategicIssues
	}
	if input.Strategies != nil {
		existing.Strategies = *input.Strategies
	}
	if input.DocumentLinks != nil {
		existing.DocumentLinks = *input.DocumentLinks
	}
	if input.Status != nil {
		// Any allowed status value is accepted, including regressions;
		// no transition graph is enforced.
		existing.Status = *input.Status
	}
	if input.ProjectType != nil {
		existing.ProjectType = *input.ProjectType
	}

	if existing.EndPeriod < existing.StartPeriod {
		return nil, apperrors.Validation("end_period must not precede start_period")
	}
	if existing.Budget < 0 {
		return nil, apperrors.Validation("budget must not be negative")
	}

	existing.Metadata.UpdatedBy = actor.ID
	existing.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}

	details := s.resolver.Hydrate(ctx, *existing)
	return &details, nil
}

func (s *projectService) Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	target := &permissions.Target{ID: existing.ID.Hex(), CreatedBy: existing.Metadata.CreatedBy}
	if d := permissions.Authorize(actor, permissions.ResourceProjects, permissions.ActionDelete, target); !d.Allowed {
		return apperrors.Authorization(d.Reason)
	}

	return s.repo.Delete(ctx, id)
}

func (s *projectService) PublicList(ctx context.Context, params url.Values) ([]models.ProjectDetails, models.Pagination, error) {
	q := query.PublicProjects.Build(params, "")

	projects, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return s.resolver.HydrateAll(ctx, projects), models.Pagination{Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func (s *projectService) PublicStats(ctx context.Context) ([]bson.M, error) {
	return s.repo.StatusStats(ctx)
}
