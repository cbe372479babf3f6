package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udev-hq/intern-portal-backend/internal/domain/leave"
	"github.com/udev-hq/intern-portal-backend/internal/domain/notification"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeLeaveRepo struct {
	leaves    map[string]leave.Leave
	overlaps  bool
	updateErr error
}

func newFakeLeaveRepo(leaves ...leave.Leave) *fakeLeaveRepo {
	r := &fakeLeaveRepo{leaves: make(map[string]leave.Leave)}
	for _, l := range leaves {
		r.leaves[l.ID] = l
	}
	return r
}

func (r *fakeLeaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	l.ID = "leave-new"
	r.leaves[l.ID] = l
	return l, nil
}

func (r *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	l, ok := r.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (r *fakeLeaveRepo) ListByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) List(ctx context.Context, sc leave.LeaveScope, filter leave.ListFilter) ([]leave.Leave, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) HasOverlapping(ctx context.Context, userID string, start, end string) (bool, error) {
	return r.overlaps, nil
}

func (r *fakeLeaveRepo) Update(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	if r.updateErr != nil {
		return leave.Leave{}, r.updateErr
	}
	stored, ok := r.leaves[l.ID]
	if !ok || stored.Status != leave.StatusPending {
		return leave.Leave{}, leave.ErrAlreadyProcessed
	}
	r.leaves[l.ID] = l
	return l, nil
}

func (r *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.leaves[id]; !ok {
		return leave.ErrLeaveNotFound
	}
	delete(r.leaves, id)
	return nil
}

type fakeNotifier struct {
	intents []notification.Intent
}

func (n *fakeNotifier) Notify(ctx context.Context, intent notification.Intent) error {
	n.intents = append(n.intents, intent)
	return nil
}

func (n *fakeNotifier) NotifyMany(ctx context.Context, intents []notification.Intent) error {
	n.intents = append(n.intents, intents...)
	return nil
}

func (n *fakeNotifier) List(ctx context.Context, recipientID string) (notification.ListResponse, error) {
	return notification.ListResponse{}, nil
}

func (n *fakeNotifier) MarkAsRead(ctx context.Context, recipientID string, id string) error {
	return nil
}

func (n *fakeNotifier) MarkAllAsRead(ctx context.Context, recipientID string) error { return nil }

func newTestService(repo leave.LeaveRepository, notifier notification.NotificationService) *leaveServiceImpl {
	return &leaveServiceImpl{
		leaveRepo:           repo,
		notificationService: notifier,
		inTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func pendingLeave() leave.Leave {
	return leave.Leave{
		ID:        "leave-1",
		UserID:    "int-1",
		LeaveType: leave.TypeAnnual,
		StartDate: day(2026, time.September, 10),
		EndDate:   day(2026, time.September, 12),
		Reason:    "family visit",
		Status:    leave.StatusPending,
	}
}

var (
	adminActor = user.Principal{ID: "admin-1", Role: user.RoleAdmin}
	leadActor  = user.Principal{ID: "tl-1", Role: user.RoleTeamLead}
	owner      = user.Principal{ID: "int-1", Role: user.RoleInternee, TeamLeadID: strPtr("tl-1")}
)

func TestCreateOverlapConflict(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.overlaps = true
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.Create(context.Background(), owner, leave.CreateRequest{
		LeaveType: leave.TypeAnnual,
		StartDate: "2030-01-10",
		EndDate:   "2030-01-12",
		Reason:    "family visit",
	})

	assert.ErrorIs(t, err, leave.ErrOverlapping)
	assert.Empty(t, repo.leaves)
}

func TestUpdateStatusConcurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("approval lands while the row is still pending", func(t *testing.T) {
		repo := newFakeLeaveRepo(pendingLeave())
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier)

		resp, err := svc.UpdateStatus(ctx, leadActor, "leave-1", leave.UpdateStatusRequest{Status: leave.StatusApproved})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		require.Len(t, notifier.intents, 1)
		assert.Equal(t, "int-1", notifier.intents[0].RecipientID)
	})

	t.Run("verdict racing another reviewer conflicts", func(t *testing.T) {
		repo := newFakeLeaveRepo(pendingLeave())
		svc := newTestService(repo, &fakeNotifier{})

		// A competing verdict lands between our read and update.
		repo.updateErr = leave.ErrAlreadyProcessed

		_, err := svc.UpdateStatus(ctx, adminActor, "leave-1", leave.UpdateStatusRequest{
			Status:          leave.StatusRejected,
			RejectionReason: strPtr("coverage gap"),
		})

		assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
	})
}

func TestDeleteGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes a pending request", func(t *testing.T) {
		repo := newFakeLeaveRepo(pendingLeave())
		svc := newTestService(repo, &fakeNotifier{})

		require.NoError(t, svc.Delete(ctx, owner, "leave-1"))
		assert.Empty(t, repo.leaves)
	})

	t.Run("non-owner member cannot delete", func(t *testing.T) {
		repo := newFakeLeaveRepo(pendingLeave())
		svc := newTestService(repo, &fakeNotifier{})

		other := user.Principal{ID: "int-2", Role: user.RoleInternee}
		err := svc.Delete(ctx, other, "leave-1")

		assert.ErrorIs(t, err, leave.ErrNotOwner)
	})

	t.Run("processed request cannot be deleted", func(t *testing.T) {
		l := pendingLeave()
		l.Status = leave.StatusApproved
		repo := newFakeLeaveRepo(l)
		svc := newTestService(repo, &fakeNotifier{})

		err := svc.Delete(ctx, owner, "leave-1")

		assert.ErrorIs(t, err, leave.ErrNotPending)
	})
}
