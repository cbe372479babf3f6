package task

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udev-hq/intern-portal-backend/internal/domain/notification"
	"github.com/udev-hq/intern-portal-backend/internal/domain/task"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

func strPtr(s string) *string { return &s }

type fakeTaskRepo struct {
	tasks     map[string]task.Task
	updateErr error
}

func newFakeTaskRepo(tasks ...task.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: make(map[string]task.Task)}
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return r
}

func (r *fakeTaskRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = "task-new"
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (task.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (r *fakeTaskRepo) List(ctx context.Context, sc task.TaskScope, filter task.ListFilter) ([]task.Task, int64, error) {
	return nil, 0, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, t task.Task, from ...task.Status) (task.Task, error) {
	if r.updateErr != nil {
		return task.Task{}, r.updateErr
	}
	stored, ok := r.tasks[t.ID]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	if len(from) > 0 {
		matched := false
		for _, st := range from {
			if stored.Status == st {
				matched = true
			}
		}
		if !matched {
			return task.Task{}, task.ErrTaskNotFound
		}
	}
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CountAll(ctx context.Context) (int64, error) { return 0, nil }
func (r *fakeTaskRepo) CountByStatus(ctx context.Context, status task.Status) (int64, error) {
	return 0, nil
}
func (r *fakeTaskRepo) CountByAssignee(ctx context.Context, assigneeID string, status *task.Status) (int64, error) {
	return 0, nil
}
func (r *fakeTaskRepo) CountByTeamLead(ctx context.Context, teamLeadID string, status *task.Status) (int64, error) {
	return 0, nil
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

type fakeFiles struct {
	uploads int
}

func (f *fakeFiles) UploadProfilePicture(ctx context.Context, userID string, fh *multipart.FileHeader) (string, error) {
	f.uploads++
	return "profiles/p.png", nil
}

func (f *fakeFiles) UploadCoverPhoto(ctx context.Context, userID string, fh *multipart.FileHeader) (string, error) {
	f.uploads++
	return "profiles/c.png", nil
}

func (f *fakeFiles) UploadIDCardDocument(ctx context.Context, userID string, side string, fh *multipart.FileHeader) (string, error) {
	f.uploads++
	return "documents/d.png", nil
}

func (f *fakeFiles) UploadTaskSubmission(ctx context.Context, taskID string, fh *multipart.FileHeader) (string, error) {
	f.uploads++
	return "submissions/s.pdf", nil
}

func (f *fakeFiles) DeleteFile(ctx context.Context, path string) error { return nil }
func (f *fakeFiles) FileURL(path string) string                        { return path }

func newTestService(repo task.TaskRepository, notifier notification.NotificationService, files *fakeFiles) *taskServiceImpl {
	return &taskServiceImpl{
		taskRepo:            repo,
		notificationService: notifier,
		fileService:         files,
		inTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func seedTask(status task.Status) task.Task {
	return task.Task{
		ID:                 "task-1",
		Title:              "Weekly report",
		Status:             status,
		Priority:           task.PriorityMedium,
		AssignerID:         "tl-1",
		AssigneeID:         "int-1",
		AssigneeTeamLeadID: strPtr("tl-1"),
	}
}

var (
	adminActor    = user.Principal{ID: "admin-1", Role: user.RoleAdmin}
	leadActor     = user.Principal{ID: "tl-1", Role: user.RoleTeamLead}
	otherLead     = user.Principal{ID: "tl-2", Role: user.RoleTeamLead}
	interneeActor = user.Principal{ID: "int-1", Role: user.RoleInternee, TeamLeadID: strPtr("tl-1")}
)

func TestOverrideStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("admin overrides any task", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusAccepted))
		svc := newTestService(repo, &fakeNotifier{}, &fakeFiles{})

		resp, err := svc.OverrideStatus(ctx, adminActor, "task-1", task.OverrideStatusRequest{Status: task.StatusAssigned})

		require.NoError(t, err)
		assert.Equal(t, task.StatusAssigned, resp.Status)
	})

	t.Run("team lead overrides a task inside their scope", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusSubmitted))
		svc := newTestService(repo, &fakeNotifier{}, &fakeFiles{})

		resp, err := svc.OverrideStatus(ctx, leadActor, "task-1", task.OverrideStatusRequest{Status: task.StatusAssigned})

		require.NoError(t, err)
		assert.Equal(t, task.StatusAssigned, resp.Status)
	})

	t.Run("team lead outside the task's scope is forbidden", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusSubmitted))
		svc := newTestService(repo, &fakeNotifier{}, &fakeFiles{})

		_, err := svc.OverrideStatus(ctx, otherLead, "task-1", task.OverrideStatusRequest{Status: task.StatusAssigned})

		assert.ErrorIs(t, err, task.ErrForbidden)
		assert.Equal(t, task.StatusSubmitted, repo.tasks["task-1"].Status)
	})

	t.Run("internee cannot override", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusSubmitted))
		svc := newTestService(repo, &fakeNotifier{}, &fakeFiles{})

		_, err := svc.OverrideStatus(ctx, interneeActor, "task-1", task.OverrideStatusRequest{Status: task.StatusAccepted})

		assert.ErrorIs(t, err, task.ErrForbidden)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("admin hard-deletes", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusAssigned))
		svc := newTestService(repo, &fakeNotifier{}, &fakeFiles{})

		require.NoError(t, svc.Delete(ctx, adminActor, "task-1"))
		assert.Empty(t, repo.tasks)
	})

	t.Run("assigner team lead cannot delete", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusAssigned))
		svc := newTestService(repo, &fakeNotifier{}, &fakeFiles{})

		err := svc.Delete(ctx, leadActor, "task-1")

		assert.ErrorIs(t, err, task.ErrForbidden)
		assert.Len(t, repo.tasks, 1)
	})
}

func TestSubmitService(t *testing.T) {
	ctx := context.Background()

	t.Run("submission stores the file and notifies the assigner", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusAssigned))
		notifier := &fakeNotifier{}
		files := &fakeFiles{}
		svc := newTestService(repo, notifier, files)

		resp, err := svc.Submit(ctx, interneeActor, "task-1", task.SubmitRequest{
			Notes: strPtr("done"),
			File:  &multipart.FileHeader{Filename: "report.pdf"},
		})

		require.NoError(t, err)
		assert.Equal(t, task.StatusSubmitted, resp.Status)
		assert.Equal(t, 1, files.uploads)
		require.Len(t, notifier.intents, 1)
		assert.Equal(t, "tl-1", notifier.intents[0].RecipientID)
	})

	t.Run("conflict is detected before the file is stored", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusAccepted))
		files := &fakeFiles{}
		svc := newTestService(repo, &fakeNotifier{}, files)

		_, err := svc.Submit(ctx, interneeActor, "task-1", task.SubmitRequest{
			File: &multipart.FileHeader{Filename: "report.pdf"},
		})

		assert.ErrorIs(t, err, task.ErrNotSubmittable)
		assert.Equal(t, 0, files.uploads)
	})

	t.Run("status moved between read and write yields a conflict", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusAssigned))
		svc := newTestService(repo, &fakeNotifier{}, &fakeFiles{})
		repo.updateErr = task.ErrTaskNotFound

		_, err := svc.Submit(ctx, interneeActor, "task-1", task.SubmitRequest{Notes: strPtr("done")})

		assert.ErrorIs(t, err, task.ErrNotSubmittable)
	})
}

func TestReviewConcurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("second verdict on the same submission conflicts", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusSubmitted))
		svc := newTestService(repo, &fakeNotifier{}, &fakeFiles{})

		// A competing reviewer's write lands between our read and update.
		repo.updateErr = task.ErrTaskNotFound

		_, err := svc.Accept(ctx, leadActor, "task-1", task.ReviewRequest{Feedback: strPtr("good")})

		assert.ErrorIs(t, err, task.ErrNotSubmitted)
	})

	t.Run("guarded update only lands from submitted", func(t *testing.T) {
		repo := newFakeTaskRepo(seedTask(task.StatusSubmitted))
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, &fakeFiles{})

		resp, err := svc.Accept(ctx, leadActor, "task-1", task.ReviewRequest{Feedback: strPtr("good")})

		require.NoError(t, err)
		assert.Equal(t, task.StatusAccepted, resp.Status)
		require.Len(t, notifier.intents, 1)
		assert.Equal(t, "int-1", notifier.intents[0].RecipientID)
	})
}
