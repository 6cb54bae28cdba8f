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
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	List(ctx context.Context, actor models.Actor, params url.Values) ([]models.User, models.Pagination, error)
	GetByID(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, actor models.Actor, input models.CreateUserInput) (*models.User, error)
	Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.UpdateUserInput) (*models.User, error)
	Deactivate(ctx context.Context, actor models.Actor, id primitive.ObjectID) error
	ChangePassword(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.ChangePasswordInput) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{
		repo: repo,
	}
}

func (s *userService) List(ctx context.Context, actor models.Actor, params url.Values) ([]models.User, models.Pagination, error) {
	if d := permissions.Authorize(actor, permissions.ResourceUsers, permissions.ActionRead, nil); !d.Allowed {
		return nil, models.Pagination{}, apperrors.Authorization(d.Reason)
	}

	q := query.Users.Build(params, "")

	users, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return users, models.Pagination{Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func (s *userService) GetByID(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.User, error) {
	target := &permissions.Target{ID: id.Hex()}
	if d := permissions.Authorize(actor, permissions.ResourceUsers, permissions.ActionRead, target); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *userService) Create(ctx context.Context, actor models.Actor, input models.CreateUserInput) (*models.User, error) {
	if d := permissions.Authorize(actor, permissions.ResourceUsers, permissions.ActionCreate, nil); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	now := time.Now()
	user := &models.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hash),
		Role:       input.Role,
		Department: input.Department,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.UpdateUserInput) (*models.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := &permissions.Target{ID: existing.ID.Hex()}
	if d := permissions.Authorize(actor, permissions.ResourceUsers, permissions.ActionUpdate, target); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason)
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Email != nil {
		existing.Email = *input.Email
	}
	if input.Department != nil {
		existing.Department = *input.Department
	}
	if input.Role != nil {
		// Role changes are an admin-only concern; self-service updates
		// can't escalate.
		if actor.Role != models.RoleAdmin {
			return nil, apperrors.Authorization(permissions.ReasonForbidden)
		}
		existing.Role = *input.Role
	}

	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *userService) Deactivate(ctx context.Context, actor models.Actor, id primitive.ObjectID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	target := &permissions.Target{ID: existing.ID.Hex()}
	if d := permissions.Authorize(actor, permissions.ResourceUsers, permissions.ActionDelete, target); !d.Allowed {
		return apperrors.Authorization(d.Reason)
	}

	return s.repo.Deactivate(ctx, id)
}

func (s *userService) ChangePassword(ctx context.Context, actor models.Actor, id primitive.ObjectID, input models.ChangePasswordInput) error {
	if d := permissions.AuthorizePasswordChange(actor, id.Hex()); !d.Allowed {
		return apperrors.Authorization(d.Reason)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Self changes prove knowledge of the current password; an admin
	// resetting someone else's is not asked for it.
	if actor.ID == id.Hex() {
		if err := bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(input.CurrentPassword)); err != nil {
			return apperrors.Validation("current password is incorrect")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Storage(err)
	}

	return s.repo.SetPassword(ctx, id, string(hash))
}
