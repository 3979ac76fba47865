package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// UserService handles user administration
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*identity.User, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	if _, err := s.roleRepo.FindByID(ctx, input.RoleID); err != nil {
		return nil, shared.NewDomainError("INVALID_ROLE_ID", "Role does not exist")
	}

	user, err := identity.NewUser(input.Username, input.Password, input.RoleID)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}
	if input.PartnerID != nil {
		if err := user.BindToPartner(*input.PartnerID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return user, nil
}

// Get returns a user by id
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// List returns users matching the filter together with the total count
func (s *UserService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.User], error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[identity.User]{}, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[identity.User]{}, err
	}
	return shared.NewPaginated(users, total, filter.Page, filter.PageSize), nil
}

// Update applies partial changes to a user
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		if err := user.SetDisplayName(*input.DisplayName); err != nil {
			return nil, err
		}
	}
	if input.RoleID != nil {
		if _, err := s.roleRepo.FindByID(ctx, *input.RoleID); err != nil {
			return nil, shared.NewDomainError("INVALID_ROLE_ID", "Role does not exist")
		}
		if err := user.AssignRole(*input.RoleID); err != nil {
			return nil, err
		}
	}
	if input.ClearPartner {
		user.UnbindFromPartner()
	} else if input.PartnerID != nil {
		if err := user.BindToPartner(*input.PartnerID); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil && *input.IsActive != user.IsActive {
		if *input.IsActive {
			err = user.Activate()
		} else {
			err = user.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.String("user_id", user.ID.String()))
	return user, nil
}

// ResetPassword sets a new password without checking the old one
func (s *UserService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password reset", zap.String("user_id", input.UserID.String()))
	return nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}
