package target

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tempohq/tempo-backend-go/internal/domain/target"
	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

type TargetServiceImpl struct {
	target.TargetRepository
	timeentry.TimeEntryRepository
}

func NewTargetService(
	targetRepository target.TargetRepository,
	entryRepository timeentry.TimeEntryRepository,
) target.TargetService {
	return &TargetServiceImpl{
		TargetRepository:    targetRepository,
		TimeEntryRepository: entryRepository,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Create implements target.TargetService.
func (s *TargetServiceImpl) Create(ctx context.Context, usr user.User, req target.CreateTargetRequest) (target.TargetResponse, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return target.TargetResponse{}, err
	}

	if !user.HasPermission(usr.Role, user.PermissionManageOwnTargets) {
		return target.TargetResponse{}, user.ErrInsufficientPermissions
	}

	t := target.MonthlyTarget{
		UserID:      usr.ID,
		Year:        req.Year,
		Month:       req.Month,
		StartDay:    req.StartDay,
		EndDay:      req.EndDay,
		TargetHours: req.TargetHours,
	}

	created, err := s.TargetRepository.Create(ctx, t)
	if err != nil {
		return target.TargetResponse{}, err
	}

	return target.ToResponse(created), nil
}

// List implements target.TargetService.
func (s *TargetServiceImpl) List(ctx context.Context, usr user.User) ([]target.TargetResponse, error) {
	if !user.HasPermission(usr.Role, user.PermissionManageOwnTargets) {
		return nil, user.ErrInsufficientPermissions
	}

	targets, err := s.TargetRepository.ListByUser(ctx, usr.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}

	out := make([]target.TargetResponse, 0, len(targets))
	for _, t := range targets {
		out = append(out, target.ToResponse(t))
	}
	return out, nil
}

// Progress implements target.TargetService.
func (s *TargetServiceImpl) Progress(ctx context.Context, usr user.User, year, month int) (target.ProgressResponse, error) {
	if !user.HasPermission(usr.Role, user.PermissionManageOwnTargets) {
		return target.ProgressResponse{}, user.ErrInsufficientPermissions
	}

	t, err := s.TargetRepository.GetByMonth(ctx, usr.ID, year, month)
	if err != nil {
		return target.ProgressResponse{}, fmt.Errorf("failed to get target: %w", err)
	}
	if t == nil {
		return target.ProgressResponse{}, target.ErrNoTargetSet
	}

	return s.progressFor(ctx, usr.ID, *t)
}

// CurrentProgress implements target.TargetService.
func (s *TargetServiceImpl) CurrentProgress(ctx context.Context, usr user.User) (target.ProgressResponse, error) {
	now := time.Now().UTC()
	return s.Progress(ctx, usr, now.Year(), int(now.Month()))
}

// progressFor derives progress from confirmed hours inside the
// target's counting window. Remaining never goes negative and the
// percentage caps at 100, so overshooting a target reads as done.
func (s *TargetServiceImpl) progressFor(ctx context.Context, userID string, t target.MonthlyTarget) (target.ProgressResponse, error) {
	from, to := t.Range()

	current, err := s.TimeEntryRepository.SumConfirmedHours(ctx, userID, from, to)
	if err != nil {
		return target.ProgressResponse{}, fmt.Errorf("failed to sum confirmed hours: %w", err)
	}

	remaining := t.TargetHours - current
	if remaining < 0 {
		remaining = 0
	}

	percentage := 0.0
	if t.TargetHours > 0 {
		percentage = current / t.TargetHours * 100
		if percentage > 100 {
			percentage = 100
		}
	}

	return target.ProgressResponse{
		Target:             target.ToResponse(t),
		CurrentHours:       round2(current),
		RemainingHours:     round2(remaining),
		ProgressPercentage: round1(percentage),
	}, nil
}

// Update implements target.TargetService.
func (s *TargetServiceImpl) Update(ctx context.Context, usr user.User, targetID string, req target.UpdateTargetRequest) (target.TargetResponse, error) {
	if !user.HasPermission(usr.Role, user.PermissionManageOwnTargets) {
		return target.TargetResponse{}, user.ErrInsufficientPermissions
	}

	t, err := s.TargetRepository.GetByID(ctx, targetID, usr.ID)
	if err != nil {
		return target.TargetResponse{}, err
	}

	if err := req.Validate(t.Year, t.Month); err != nil {
		return target.TargetResponse{}, err
	}

	if req.TargetHours != nil {
		t.TargetHours = *req.TargetHours
	}
	if req.StartDay != nil {
		t.StartDay = *req.StartDay
	}
	if req.EndDay != nil {
		t.EndDay = *req.EndDay
	}

	updated, err := s.TargetRepository.Update(ctx, t)
	if err != nil {
		return target.TargetResponse{}, fmt.Errorf("failed to update target: %w", err)
	}

	return target.ToResponse(updated), nil
}

// Delete implements target.TargetService.
func (s *TargetServiceImpl) Delete(ctx context.Context, usr user.User, targetID string) error {
	if !user.HasPermission(usr.Role, user.PermissionManageOwnTargets) {
		return user.ErrInsufficientPermissions
	}

	return s.TargetRepository.Delete(ctx, targetID, usr.ID)
}
