package services

import (
	"context"
	"errors"

	"stratplan/apperrors"
	"stratplan/models"
	"stratplan/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store down")

type fakeIssueRepo struct {
	issues   map[primitive.ObjectID]models.StrategicIssue
	failFind bool
	maxOrder int
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: map[primitive.ObjectID]models.StrategicIssue{}}
}

func (r *fakeIssueRepo) Create(ctx context.Context, issue *models.StrategicIssue) error {
	issue.ID = primitive.NewObjectID()
	r.issues[issue.ID] = *issue
	return nil
}

func (r *fakeIssueRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StrategicIssue, error) {
	issue, ok := r.issues[id]
	if !ok {
		return nil, apperrors.NotFound("strategic issue not found")
	}
	return &issue, nil
}

func (r *fakeIssueRepo) List(ctx context.Context, q query.Query) ([]models.StrategicIssue, error) {
	out := []models.StrategicIssue{}
	for _, issue := range r.issues {
		out = append(out, issue)
	}
	return out, nil
}

func (r *fakeIssueRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(r.issues)), nil
}

func (r *fakeIssueRepo) Update(ctx context.Context, id primitive.ObjectID, issue *models.StrategicIssue) error {
	if _, ok := r.issues[id]; !ok {
		return apperrors.NotFound("strategic issue not found")
	}
	r.issues[id] = *issue
	return nil
}

func (r *fakeIssueRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.issues[id]; !ok {
		return apperrors.NotFound("strategic issue not found")
	}
	delete(r.issues, id)
	return nil
}

func (r *fakeIssueRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.StrategicIssue, error) {
	if r.failFind {
		return nil, apperrors.Storage(errStoreDown)
	}
	out := []models.StrategicIssue{}
	for _, id := range ids {
		if issue, ok := r.issues[id]; ok {
			out = append(out, issue)
		}
	}
	return out, nil
}

func (r *fakeIssueRepo) MaxOrder(ctx context.Context) (int, error) {
	return r.maxOrder, nil
}

type fakeStrategyRepo struct {
	strategies map[primitive.ObjectID]models.Strategy
	failFind   bool
	cascaded   []string
}

func newFakeStrategyRepo() *fakeStrategyRepo {
	return &fakeStrategyRepo{strategies: map[primitive.ObjectID]models.Strategy{}}
}

func (r *fakeStrategyRepo) Create(ctx context.Context, strategy *models.Strategy) error {
	strategy.ID = primitive.NewObjectID()
	r.strategies[strategy.ID] = *strategy
	return nil
}

func (r *fakeStrategyRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Strategy, error) {
	strategy, ok := r.strategies[id]
	if !ok {
		return nil, apperrors.NotFound("strategy not found")
	}
	return &strategy, nil
}

func (r *fakeStrategyRepo) List(ctx context.Context, q query.Query) ([]models.Strategy, error) {
	out := []models.Strategy{}
	for _, strategy := range r.strategies {
		out = append(out, strategy)
	}
	return out, nil
}

func (r *fakeStrategyRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(r.strategies)), nil
}

func (r *fakeStrategyRepo) Update(ctx context.Context, id primitive.ObjectID, strategy *models.Strategy) error {
	if _, ok := r.strategies[id]; !ok {
		return apperrors.NotFound("strategy not found")
	}
	r.strategies[id] = *strategy
	return nil
}

func (r *fakeStrategyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.strategies[id]; !ok {
		return apperrors.NotFound("strategy not found")
	}
	delete(r.strategies, id)
	return nil
}

func (r *fakeStrategyRepo) DeleteByStrategicIssue(ctx context.Context, strategicIssueID string) (int64, error) {
	r.cascaded = append(r.cascaded, strategicIssueID)
	var removed int64
	for id, strategy := range r.strategies {
		if strategy.StrategicIssueID == strategicIssueID {
			delete(r.strategies, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeStrategyRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Strategy, error) {
	if r.failFind {
		return nil, apperrors.Storage(errStoreDown)
	}
	out := []models.Strategy{}
	for _, id := range ids {
		if strategy, ok := r.strategies[id]; ok {
			out = append(out, strategy)
		}
	}
	return out, nil
}

func (r *fakeStrategyRepo) MaxOrderInIssue(ctx context.Context, strategicIssueID string) (int, error) {
	max := 0
	for _, strategy := range r.strategies {
		if strategy.StrategicIssueID == strategicIssueID && strategy.Order > max {
			max = strategy.Order
		}
	}
	return max, nil
}

type fakeProjectRepo struct {
	projects  map[primitive.ObjectID]models.Project
	lastQuery query.Query
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[primitive.ObjectID]models.Project{}}
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	project.ID = primitive.NewObjectID()
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, apperrors.NotFound("project not found")
	}
	return &project, nil
}

func (r *fakeProjectRepo) List(ctx context.Context, q query.Query) ([]models.Project, error) {
	r.lastQuery = q
	out := []models.Project{}
	for _, project := range r.projects {
		if owner, ok := q.Filter["metadata.created_by"].(string); ok && project.Metadata.CreatedBy != owner {
			continue
		}
		out = append(out, project)
	}
	return out, nil
}

func (r *fakeProjectRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	var total int64
	for _, project := range r.projects {
		if owner, ok := filter["metadata.created_by"].(string); ok && project.Metadata.CreatedBy != owner {
			continue
		}
		total++
	}
	return total, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, id primitive.ObjectID, project *models.Project) error {
	if _, ok := r.projects[id]; !ok {
		return apperrors.NotFound("project not found")
	}
	r.projects[id] = *project
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.projects[id]; !ok {
		return apperrors.NotFound("project not found")
	}
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) StatusStats(ctx context.Context) ([]bson.M, error) {
	counts := map[string]int{}
	for _, project := range r.projects {
		counts[project.Status]++
	}
	out := []bson.M{}
	for status, count := range counts {
		out = append(out, bson.M{"_id": status, "count": count})
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.Conflict("email already in use")
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok || !user.IsActive {
		return nil, apperrors.NotFound("user not found")
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.IsActive {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *fakeUserRepo) List(ctx context.Context, q query.Query) ([]models.User, error) {
	out := []models.User{}
	for _, user := range r.users {
		if user.IsActive {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	var total int64
	for _, user := range r.users {
		if user.IsActive {
			total++
		}
	}
	return total, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, user *models.User) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.NotFound("user not found")
	}
	r.users[id] = *user
	return nil
}

func (r *fakeUserRepo) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	user, ok := r.users[id]
	if !ok || !user.IsActive {
		return apperrors.NotFound("user not found")
	}
	user.Password = hash
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	user, ok := r.users[id]
	if !ok || !user.IsActive {
		return apperrors.NotFound("user not found")
	}
	user.IsActive = false
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) HasActiveAdmin(ctx context.Context) (bool, error) {
	for _, user := range r.users {
		if user.Role == models.RoleAdmin && user.IsActive {
			return true, nil
		}
	}
	return false, nil
}
