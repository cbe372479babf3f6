package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSubmit(t *testing.T) {
	now := time.Now()

	t.Run("assignee submits an assigned task", func(t *testing.T) {
		task := Task{ID: "t1", Status: StatusAssigned, AssigneeID: "u1"}

		err := task.Submit("u1", strPtr("done, see attachment"), strPtr("submissions/report.pdf"), now)

		require.NoError(t, err)
		assert.Equal(t, StatusSubmitted, task.Status)
		assert.Equal(t, "done, see attachment", *task.SubmissionNotes)
		assert.Equal(t, "submissions/report.pdf", *task.SubmissionFile)
		require.NotNil(t, task.SubmittedAt)
		assert.Equal(t, now, *task.SubmittedAt)
	})

	t.Run("resubmission after rejection overwrites previous submission", func(t *testing.T) {
		task := Task{
			ID:              "t1",
			Status:          StatusRejected,
			AssigneeID:      "u1",
			SubmissionNotes: strPtr("first attempt"),
			Feedback:        strPtr("please redo section 2"),
		}

		err := task.Submit("u1", strPtr("second attempt"), nil, now)

		require.NoError(t, err)
		assert.Equal(t, StatusSubmitted, task.Status)
		assert.Equal(t, "second attempt", *task.SubmissionNotes)
		assert.Nil(t, task.SubmissionFile)
	})

	t.Run("only the assignee may submit", func(t *testing.T) {
		task := Task{ID: "t1", Status: StatusAssigned, AssigneeID: "u1"}

		err := task.Submit("someone-else", nil, nil, now)

		assert.ErrorIs(t, err, ErrNotAssignee)
		assert.Equal(t, StatusAssigned, task.Status)
	})

	t.Run("submitted and accepted tasks cannot be submitted again", func(t *testing.T) {
		for _, status := range []Status{StatusSubmitted, StatusAccepted} {
			task := Task{ID: "t1", Status: status, AssigneeID: "u1"}

			err := task.Submit("u1", nil, nil, now)

			assert.ErrorIs(t, err, ErrNotSubmittable)
			assert.Equal(t, status, task.Status)
		}
	})
}

func TestReview(t *testing.T) {
	t.Run("accept a submitted task", func(t *testing.T) {
		task := Task{ID: "t1", Status: StatusSubmitted}

		err := task.Accept(strPtr("great work"))

		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, task.Status)
		assert.Equal(t, "great work", *task.Feedback)
	})

	t.Run("reject a submitted task", func(t *testing.T) {
		task := Task{ID: "t1", Status: StatusSubmitted}

		err := task.Reject(strPtr("missing tests"))

		require.NoError(t, err)
		assert.Equal(t, StatusRejected, task.Status)
		assert.Equal(t, "missing tests", *task.Feedback)
	})

	t.Run("review without feedback is allowed", func(t *testing.T) {
		task := Task{ID: "t1", Status: StatusSubmitted}

		require.NoError(t, task.Accept(nil))
		assert.Nil(t, task.Feedback)
	})

	t.Run("only submitted tasks can be reviewed", func(t *testing.T) {
		for _, status := range []Status{StatusAssigned, StatusAccepted, StatusRejected} {
			task := Task{ID: "t1", Status: status}

			assert.ErrorIs(t, task.Accept(nil), ErrNotSubmitted)
			assert.ErrorIs(t, task.Reject(nil), ErrNotSubmitted)
			assert.Equal(t, status, task.Status)
		}
	})
}

func TestOverrideStatus(t *testing.T) {
	t.Run("override skips transition preconditions", func(t *testing.T) {
		task := Task{ID: "t1", Status: StatusAccepted}

		err := task.OverrideStatus(StatusAssigned)

		require.NoError(t, err)
		assert.Equal(t, StatusAssigned, task.Status)
	})

	t.Run("override still validates the target value", func(t *testing.T) {
		task := Task{ID: "t1", Status: StatusAssigned}

		err := task.OverrideStatus(Status("archived"))

		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Equal(t, StatusAssigned, task.Status)
	})
}

func TestCreateRequestValidate(t *testing.T) {
	valid := func() CreateRequest {
		return CreateRequest{
			Title:       "Write onboarding docs",
			Description: "Cover the local setup end to end",
			AssigneeID:  "u1",
		}
	}

	t.Run("valid request defaults priority to medium", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
		assert.Equal(t, PriorityMedium, req.Priority)
	})

	t.Run("title length is bounded", func(t *testing.T) {
		req := valid()
		req.Title = "ab"
		assert.Error(t, req.Validate())
	})

	t.Run("assignee is required", func(t *testing.T) {
		req := valid()
		req.AssigneeID = ""
		assert.Error(t, req.Validate())
	})

	t.Run("due date must be a calendar date", func(t *testing.T) {
		req := valid()
		req.DueDate = strPtr("tomorrow")
		assert.Error(t, req.Validate())

		req.DueDate = strPtr("2026-10-01")
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown priority is rejected", func(t *testing.T) {
		req := valid()
		req.Priority = Priority("asap")
		assert.Error(t, req.Validate())
	})
}
