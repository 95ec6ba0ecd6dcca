package roster

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fkhayef/warikan/internal/fairshare"
)

// Common errors
var (
	ErrRosterNotFound  = errors.New("roster not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrInvalidName     = errors.New("name is required")
	ErrUnknownRole     = errors.New("unknown role class")
	ErrInvalidOverride = errors.New("override multiplier must be positive")
	ErrEmptyRoster     = errors.New("roster has no members")
)

// RoleSet tells which role classes are known; fairshare.WeightTable satisfies it
type RoleSet interface {
	Has(role fairshare.RoleClass) bool
}

// Service handles roster business logic
type Service struct {
	repo  *Repository
	roles RoleSet
}

// NewService creates a new roster service
func NewService(repo *Repository, roles RoleSet) *Service {
	return &Service{repo: repo, roles: roles}
}

// Create validates and stores a roster with its members
func (s *Service) Create(ctx context.Context, req *CreateRosterRequest) (*Roster, []*Member, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, nil, ErrInvalidName
	}
	for i := range req.Members {
		if err := s.validateMember(&req.Members[i]); err != nil {
			return nil, nil, fmt.Errorf("member %d: %w", i+1, err)
		}
	}

	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return s.GetByIDWithMembers(ctx, id)
}

// GetByID retrieves a roster by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Roster, error) {
	roster, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		return nil, ErrRosterNotFound
	}
	return roster, nil
}

// GetByIDWithMembers retrieves a roster with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id int64) (*Roster, []*Member, error) {
	roster, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return roster, members, nil
}

// List retrieves a page of rosters
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Roster, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies a roster's name or description
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRosterRequest) (*Roster, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		req.Name = &name
	}

	found, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRosterNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete removes a roster
func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrRosterNotFound
	}
	return nil
}

// AddMember appends a participant to a roster
func (s *Service) AddMember(ctx context.Context, rosterID int64, req *MemberRequest) (*Member, error) {
	if _, err := s.GetByID(ctx, rosterID); err != nil {
		return nil, err
	}
	if err := s.validateMember(req); err != nil {
		return nil, err
	}
	return s.repo.AddMember(ctx, rosterID, req)
}

// GetMembers retrieves all members of a roster
func (s *Service) GetMembers(ctx context.Context, rosterID int64) ([]*Member, error) {
	if _, err := s.GetByID(ctx, rosterID); err != nil {
		return nil, err
	}
	return s.repo.GetMembers(ctx, rosterID)
}

// UpdateMember changes a member's name, role or override
func (s *Service) UpdateMember(ctx context.Context, rosterID, memberID int64, req *UpdateMemberRequest) (*Member, error) {
	member, err := s.repo.GetMember(ctx, rosterID, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.RoleClass != nil {
		member.RoleClass = *req.RoleClass
	}
	if req.ClearOverride {
		member.OverrideMultiplier = nil
	} else if req.OverrideMultiplier != nil {
		member.OverrideMultiplier = req.OverrideMultiplier
	}

	check := MemberRequest{Name: member.Name, RoleClass: member.RoleClass, OverrideMultiplier: member.OverrideMultiplier}
	if err := s.validateMember(&check); err != nil {
		return nil, err
	}
	member.Name = check.Name

	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember deletes a member from a roster
func (s *Service) RemoveMember(ctx context.Context, rosterID, memberID int64) error {
	found, err := s.repo.RemoveMember(ctx, rosterID, memberID)
	if err != nil {
		return err
	}
	if !found {
		return ErrMemberNotFound
	}
	return nil
}

// Participants loads a roster as solver input, in roster order
func (s *Service) Participants(ctx context.Context, rosterID int64) ([]fairshare.Participant, error) {
	members, err := s.GetMembers(ctx, rosterID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrEmptyRoster
	}

	participants := make([]fairshare.Participant, len(members))
	for i, m := range members {
		participants[i] = m.Participant()
	}
	return participants, nil
}

func (s *Service) validateMember(req *MemberRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return ErrInvalidName
	}
	if !s.roles.Has(req.RoleClass) {
		return fmt.Errorf("%w: %q", ErrUnknownRole, req.RoleClass)
	}
	if o := req.OverrideMultiplier; o != nil && (!(*o > 0) || math.IsInf(*o, 0)) {
		return ErrInvalidOverride
	}
	return nil
}
