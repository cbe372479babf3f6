package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical ranges", "2026-09-01", "2026-09-05", "2026-09-01", "2026-09-05", true},
		{"partial overlap at the end", "2026-09-01", "2026-09-05", "2026-09-04", "2026-09-10", true},
		{"one range inside the other", "2026-09-01", "2026-09-10", "2026-09-03", "2026-09-04", true},
		{"shared boundary day", "2026-09-01", "2026-09-05", "2026-09-05", "2026-09-08", true},
		{"adjacent but disjoint", "2026-09-01", "2026-09-05", "2026-09-06", "2026-09-08", false},
		{"fully disjoint", "2026-09-01", "2026-09-02", "2026-09-20", "2026-09-25", false},
		{"single day vs single day", "2026-09-03", "2026-09-03", "2026-09-03", "2026-09-03", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(day(tt.s1), day(tt.e1), day(tt.s2), day(tt.e2))
			assert.Equal(t, tt.want, got)

			// The predicate is symmetric.
			assert.Equal(t, tt.want, Overlaps(day(tt.s2), day(tt.e2), day(tt.s1), day(tt.e1)))
		})
	}
}

func TestApproveReject(t *testing.T) {
	now := time.Now()

	t.Run("approve a pending request", func(t *testing.T) {
		l := Leave{ID: "l1", Status: StatusPending}

		err := l.Approve("admin-1", now)

		require.NoError(t, err)
		assert.Equal(t, StatusApproved, l.Status)
		assert.Equal(t, "admin-1", *l.ApprovedBy)
		assert.Equal(t, now, *l.ApprovedAt)
	})

	t.Run("reject a pending request with a reason", func(t *testing.T) {
		reason := "short staffed that week"
		l := Leave{ID: "l1", Status: StatusPending}

		err := l.Reject("admin-1", &reason, now)

		require.NoError(t, err)
		assert.Equal(t, StatusRejected, l.Status)
		assert.Equal(t, reason, *l.RejectionReason)
	})

	t.Run("processed requests cannot transition again", func(t *testing.T) {
		for _, status := range []Status{StatusApproved, StatusRejected} {
			l := Leave{ID: "l1", Status: status}

			assert.ErrorIs(t, l.Approve("admin-1", now), ErrAlreadyProcessed)
			assert.ErrorIs(t, l.Reject("admin-1", nil, now), ErrAlreadyProcessed)
			assert.Equal(t, status, l.Status)
		}
	})
}

func TestCreateRequestValidate(t *testing.T) {
	today := day("2026-09-01")

	valid := func() CreateRequest {
		return CreateRequest{
			LeaveType: TypeAnnual,
			StartDate: "2026-09-10",
			EndDate:   "2026-09-12",
			Reason:    "family trip",
		}
	}

	t.Run("valid request returns parsed dates", func(t *testing.T) {
		req := valid()

		start, end, err := req.Validate(today)

		require.NoError(t, err)
		assert.Equal(t, day("2026-09-10"), start)
		assert.Equal(t, day("2026-09-12"), end)
	})

	t.Run("start date today is allowed", func(t *testing.T) {
		req := valid()
		req.StartDate = "2026-09-01"
		req.EndDate = "2026-09-01"

		_, _, err := req.Validate(today)
		assert.NoError(t, err)
	})

	t.Run("start date in the past is rejected", func(t *testing.T) {
		req := valid()
		req.StartDate = "2026-08-31"

		_, _, err := req.Validate(today)
		assert.Error(t, err)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		req := valid()
		req.StartDate = "2026-09-12"
		req.EndDate = "2026-09-10"

		_, _, err := req.Validate(today)
		assert.Error(t, err)
	})

	t.Run("unknown leave type is rejected", func(t *testing.T) {
		req := valid()
		req.LeaveType = Type("sabbatical")

		_, _, err := req.Validate(today)
		assert.Error(t, err)
	})

	t.Run("reason is required", func(t *testing.T) {
		req := valid()
		req.Reason = "   "

		_, _, err := req.Validate(today)
		assert.Error(t, err)
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		req := valid()
		req.StartDate = "10/09/2026"

		_, _, err := req.Validate(today)
		assert.Error(t, err)
	})
}

func TestUpdateStatusRequestValidate(t *testing.T) {
	assert.NoError(t, (&UpdateStatusRequest{Status: StatusApproved}).Validate())
	assert.NoError(t, (&UpdateStatusRequest{Status: StatusRejected}).Validate())
	assert.Error(t, (&UpdateStatusRequest{Status: StatusPending}).Validate())
	assert.Error(t, (&UpdateStatusRequest{Status: Status("cancelled")}).Validate())
}
