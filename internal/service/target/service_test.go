package target

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempohq/tempo-backend-go/internal/domain/target"
	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

type fakeTargetRepo struct {
	targets map[string]target.MonthlyTarget
	nextID  int
}

func newFakeTargetRepo() *fakeTargetRepo {
	return &fakeTargetRepo{targets: make(map[string]target.MonthlyTarget)}
}

func (f *fakeTargetRepo) Create(ctx context.Context, t target.MonthlyTarget) (target.MonthlyTarget, error) {
	for _, existing := range f.targets {
		if existing.UserID == t.UserID && existing.Year == t.Year && existing.Month == t.Month {
			return target.MonthlyTarget{}, target.ErrTargetAlreadyExists
		}
	}
	f.nextID++
	t.ID = fmt.Sprintf("target-%d", f.nextID)
	t.CreatedAt = time.Now().UTC()
	f.targets[t.ID] = t
	return t, nil
}

func (f *fakeTargetRepo) GetByID(ctx context.Context, id string, userID string) (target.MonthlyTarget, error) {
	t, ok := f.targets[id]
	if !ok || t.UserID != userID {
		return target.MonthlyTarget{}, target.ErrTargetNotFound
	}
	return t, nil
}

func (f *fakeTargetRepo) GetByMonth(ctx context.Context, userID string, year, month int) (*target.MonthlyTarget, error) {
	for _, t := range f.targets {
		if t.UserID == userID && t.Year == year && t.Month == month {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeTargetRepo) ListByUser(ctx context.Context, userID string) ([]target.MonthlyTarget, error) {
	var out []target.MonthlyTarget
	for _, t := range f.targets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTargetRepo) Update(ctx context.Context, t target.MonthlyTarget) (target.MonthlyTarget, error) {
	if _, ok := f.targets[t.ID]; !ok {
		return target.MonthlyTarget{}, target.ErrTargetNotFound
	}
	f.targets[t.ID] = t
	return t, nil
}

func (f *fakeTargetRepo) Delete(ctx context.Context, id string, userID string) error {
	t, ok := f.targets[id]
	if !ok || t.UserID != userID {
		return target.ErrTargetNotFound
	}
	delete(f.targets, id)
	return nil
}

// fakeHoursRepo reports canned confirmed hours and records the window
// it was asked for.
type fakeHoursRepo struct {
	timeentry.TimeEntryRepository
	hours    float64
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeHoursRepo) SumConfirmedHours(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	f.lastFrom, f.lastTo = from, to
	return f.hours, nil
}

func testUser() user.User {
	return user.User{ID: "user-1", Role: user.RoleNormal}
}

func TestCreateTarget(t *testing.T) {
	ctx := context.Background()
	svc := NewTargetService(newFakeTargetRepo(), &fakeHoursRepo{})

	resp, err := svc.Create(ctx, testUser(), target.CreateTargetRequest{
		Year: 2024, Month: 1, TargetHours: 160,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.StartDay)
	assert.Equal(t, 31, resp.EndDay)
	assert.Equal(t, 160.0, resp.TargetHours)
}

func TestCreateTargetDuplicateMonth(t *testing.T) {
	ctx := context.Background()
	svc := NewTargetService(newFakeTargetRepo(), &fakeHoursRepo{})

	req := target.CreateTargetRequest{Year: 2024, Month: 1, TargetHours: 160}
	_, err := svc.Create(ctx, testUser(), req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, testUser(), req)
	assert.ErrorIs(t, err, target.ErrTargetAlreadyExists)
}

func TestProgress(t *testing.T) {
	ctx := context.Background()
	hours := &fakeHoursRepo{hours: 160}
	svc := NewTargetService(newFakeTargetRepo(), hours)

	_, err := svc.Create(ctx, testUser(), target.CreateTargetRequest{
		Year: 2024, Month: 1, TargetHours: 170,
	})
	require.NoError(t, err)

	progress, err := svc.Progress(ctx, testUser(), 2024, 1)
	require.NoError(t, err)

	assert.Equal(t, 160.0, progress.CurrentHours)
	assert.Equal(t, 10.0, progress.RemainingHours)
	assert.Equal(t, 94.1, progress.ProgressPercentage)
}

func TestProgressClampsOvershoot(t *testing.T) {
	ctx := context.Background()
	hours := &fakeHoursRepo{hours: 200}
	svc := NewTargetService(newFakeTargetRepo(), hours)

	_, err := svc.Create(ctx, testUser(), target.CreateTargetRequest{
		Year: 2024, Month: 1, TargetHours: 160,
	})
	require.NoError(t, err)

	progress, err := svc.Progress(ctx, testUser(), 2024, 1)
	require.NoError(t, err)

	// Overshooting reads as done, never over 100 or below zero
	assert.Equal(t, 200.0, progress.CurrentHours)
	assert.Equal(t, 0.0, progress.RemainingHours)
	assert.Equal(t, 100.0, progress.ProgressPercentage)
}

func TestProgressNoTargetSet(t *testing.T) {
	ctx := context.Background()
	svc := NewTargetService(newFakeTargetRepo(), &fakeHoursRepo{})

	_, err := svc.Progress(ctx, testUser(), 2024, 1)
	assert.ErrorIs(t, err, target.ErrNoTargetSet)
}

func TestProgressUsesSubRangeWindow(t *testing.T) {
	ctx := context.Background()
	hours := &fakeHoursRepo{hours: 40}
	svc := NewTargetService(newFakeTargetRepo(), hours)

	_, err := svc.Create(ctx, testUser(), target.CreateTargetRequest{
		Year: 2024, Month: 1, StartDay: 1, EndDay: 24, TargetHours: 120,
	})
	require.NoError(t, err)

	_, err = svc.Progress(ctx, testUser(), 2024, 1)
	require.NoError(t, err)

	// The 25th falls outside the counting window
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), hours.lastFrom)
	assert.Equal(t, time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), hours.lastTo)
}

func TestUpdateTarget(t *testing.T) {
	ctx := context.Background()
	svc := NewTargetService(newFakeTargetRepo(), &fakeHoursRepo{})

	created, err := svc.Create(ctx, testUser(), target.CreateTargetRequest{
		Year: 2024, Month: 1, TargetHours: 160,
	})
	require.NoError(t, err)

	newHours := 170.0
	updated, err := svc.Update(ctx, testUser(), created.ID, target.UpdateTargetRequest{
		TargetHours: &newHours,
	})
	require.NoError(t, err)
	assert.Equal(t, 170.0, updated.TargetHours)
}

func TestUpdateTargetNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewTargetService(newFakeTargetRepo(), &fakeHoursRepo{})

	hours := 170.0
	_, err := svc.Update(ctx, testUser(), "missing", target.UpdateTargetRequest{TargetHours: &hours})
	assert.ErrorIs(t, err, target.ErrTargetNotFound)
}

func TestDeleteTarget(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTargetRepo()
	svc := NewTargetService(repo, &fakeHoursRepo{})

	created, err := svc.Create(ctx, testUser(), target.CreateTargetRequest{
		Year: 2024, Month: 1, TargetHours: 160,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testUser(), created.ID))
	assert.Empty(t, repo.targets)
}

func TestTargetPermission(t *testing.T) {
	ctx := context.Background()
	svc := NewTargetService(newFakeTargetRepo(), &fakeHoursRepo{})
	unknown := user.User{ID: "x", Role: user.Role("ghost")}

	_, err := svc.Create(ctx, unknown, target.CreateTargetRequest{Year: 2024, Month: 1, TargetHours: 160})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.Progress(ctx, unknown, 2024, 1)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}
