// Package service implements the business operations behind the HTTP API:
// group and ledger management plus the balance/settlement queries that invoke
// the calculator engine.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
	"github.com/PrAyAg9/diivido-sub000/internal/storage"
)

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create validates and persists a new group.
func (s *GroupService) Create(ctx context.Context, group *models.Group) error {
	if err := group.Validate(); err != nil {
		slog.Error("CreateGroup validation failed", "error", err)
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.Members))
	return nil
}

// Get retrieves a group by ID.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return group, nil
}

// List retrieves all groups.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, err
	}
	return groups, nil
}

// Update validates and replaces a group's name and membership.
func (s *GroupService) Update(ctx context.Context, group *models.Group) error {
	if err := group.Validate(); err != nil {
		slog.Error("UpdateGroup validation failed", "group_id", group.ID, "error", err)
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Error("UpdateGroup failed", "group_id", group.ID, "error", err)
		return err
	}

	slog.Info("Group updated", "group_id", group.ID)
	return nil
}

// Delete removes a group by ID.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// AddMembers adds members to an existing group, skipping users that already
// belong.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, members []models.Member) error {
	if len(members) == 0 {
		return fmt.Errorf("%w: no members given", ErrInvalidArgument)
	}
	for _, m := range members {
		if m.UserID == "" {
			return fmt.Errorf("%w: member requires a user", ErrInvalidArgument)
		}
		if m.Role != "" && !m.Role.Valid() {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, m.Role)
		}
	}

	if err := s.store.AddGroupMembers(ctx, groupID, members); err != nil {
		slog.Error("AddGroupMembers failed", "group_id", groupID, "error", err)
		return err
	}

	slog.Info("Group members added", "group_id", groupID, "count", len(members))
	return nil
}
