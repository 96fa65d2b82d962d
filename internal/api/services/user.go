package services

import (
	"context"
	"errors"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
	"stockroom/internal/util"
)

type UserService struct {
	store    repository.Store
	recorder *ActivityService
}

func NewUserService(store repository.Store, recorder *ActivityService) *UserService {
	return &UserService{store: store, recorder: recorder}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.store.Users().List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.Users().Get(ctx, id)
}

type CreateUserInput struct {
	Username   string
	Password   string
	FirstName  string
	LastName   string
	Email      *string
	Department *string
	IsAdmin    bool
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput, actorID *int64) (*domain.User, error) {
	hashed, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:   in.Username,
		Password:   hashed,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Department: in.Department,
		IsAdmin:    in.IsAdmin,
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	note := fmt.Sprintf("User %s (%s) created", user.FullName(), user.Username)
	if err := s.recorder.Record(ctx, domain.ActionCreate, domain.ItemTypeUser, user.ID, actorID, note); err != nil {
		return nil, fmt.Errorf("create committed but audit failed: %w", err)
	}
	return user, nil
}

type UpdateUserInput struct {
	Password   *string
	FirstName  *string
	LastName   *string
	Email      *string
	Department *string
	IsAdmin    *bool
}

func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput, actorID *int64) (*domain.User, error) {
	var (
		updated *domain.User
		note    string
	)

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().Get(ctx, id)
		if err != nil {
			return err
		}

		if in.Password != nil {
			hashed, err := util.HashPassword(*in.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.Password = hashed
		}
		if in.FirstName != nil {
			user.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			user.LastName = *in.LastName
		}
		if in.Email != nil {
			user.Email = in.Email
		}
		if in.Department != nil {
			user.Department = in.Department
		}
		if in.IsAdmin != nil {
			user.IsAdmin = *in.IsAdmin
		}

		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}

		note = fmt.Sprintf("User %s (%s) updated", user.FullName(), user.Username)
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, domain.ActionUpdate, domain.ItemTypeUser, id, actorID, note); err != nil {
		return nil, fmt.Errorf("update committed but audit failed: %w", err)
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int64, actorID *int64) error {
	var note string

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().Get(ctx, id)
		if err != nil {
			return err
		}
		note = fmt.Sprintf("User %s (%s) deleted", user.FullName(), user.Username)
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if err := s.recorder.Record(ctx, domain.ActionDelete, domain.ItemTypeUser, id, actorID, note); err != nil {
		return fmt.Errorf("delete committed but audit failed: %w", err)
	}
	return nil
}
