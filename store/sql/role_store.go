package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-membership/core"
)

// RoleStore records the roles the login hook assigns, one row per
// (user_id, role) pair.
type RoleStore struct {
	db   *bun.DB
	repo repository.Repository[*memberRoleRecord]
}

// NewRoleStore accepts a *bun.DB or anything exposing DB() *bun.DB, such as a
// go-persistence-bun client.
func NewRoleStore(persistenceClient any) (*RoleStore, error) {
	db, err := resolveBunDB(persistenceClient)
	if err != nil {
		return nil, err
	}
	repo := repository.NewRepository[*memberRoleRecord](db, memberRoleHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid member role repository wiring: %w", err)
		}
	}
	return &RoleStore{db: db, repo: repo}, nil
}

// AddRole is idempotent. A concurrent insert of the same pair is resolved by
// the unique constraint and reported as success.
func (s *RoleStore) AddRole(ctx context.Context, userID string, role string) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: role store is not configured")
	}
	userID, role, err := normalizeRoleInput(userID, role)
	if err != nil {
		return err
	}
	exists, err := s.hasRole(ctx, userID, role)
	if err != nil || exists {
		return err
	}

	record := newMemberRoleRecord(userID, role, time.Now().UTC())
	record.ID = uuid.NewString()
	if _, createErr := s.repo.Create(ctx, record); createErr != nil {
		exists, err := s.hasRole(ctx, userID, role)
		if err == nil && exists {
			return nil
		}
		return createErr
	}
	return nil
}

// RemoveRole deletes the pair. Removing a role the user does not hold is a no-op.
func (s *RoleStore) RemoveRole(ctx context.Context, userID string, role string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: role store is not configured")
	}
	userID, role, err := normalizeRoleInput(userID, role)
	if err != nil {
		return err
	}
	_, err = s.db.NewDelete().
		Model((*memberRoleRecord)(nil)).
		Where("user_id = ?", userID).
		Where("role = ?", role).
		Exec(ctx)
	return err
}

// Roles lists the roles held by userID in alphabetical order.
func (s *RoleStore) Roles(ctx context.Context, userID string) ([]string, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: role store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("user_id", "=", strings.TrimSpace(userID)),
		repository.OrderBy("role ASC"),
	)
	if err != nil {
		return nil, err
	}
	roles := make([]string, 0, len(records))
	for _, record := range records {
		roles = append(roles, record.Role)
	}
	return roles, nil
}

func (s *RoleStore) hasRole(ctx context.Context, userID string, role string) (bool, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("user_id", "=", userID),
		repository.SelectBy("role", "=", role),
	)
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

func normalizeRoleInput(userID string, role string) (string, string, error) {
	userID = strings.TrimSpace(userID)
	role = strings.TrimSpace(role)
	if userID == "" {
		return "", "", fmt.Errorf("sqlstore: user id is required")
	}
	if role == "" {
		return "", "", fmt.Errorf("sqlstore: role is required")
	}
	return userID, role, nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

var (
	_ core.RoleAssigner = (*RoleStore)(nil)
	_ core.RoleReader   = (*RoleStore)(nil)
)
