package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingHours(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	t.Run("nil until checked out", func(t *testing.T) {
		a := Attendance{CheckInTime: checkIn}
		assert.Nil(t, a.WorkingHours())
	})

	t.Run("full day without break", func(t *testing.T) {
		out := checkIn.Add(8 * time.Hour)
		a := Attendance{CheckInTime: checkIn, CheckOutTime: &out}

		require.NotNil(t, a.WorkingHours())
		assert.Equal(t, 8.0, *a.WorkingHours())
	})

	t.Run("break minutes are deducted", func(t *testing.T) {
		out := checkIn.Add(9 * time.Hour)
		a := Attendance{CheckInTime: checkIn, CheckOutTime: &out, BreakTime: 60}

		assert.Equal(t, 8.0, *a.WorkingHours())
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		out := checkIn.Add(7*time.Hour + 50*time.Minute)
		a := Attendance{CheckInTime: checkIn, CheckOutTime: &out, BreakTime: 0}

		// 7h50m = 7.8333... hours
		assert.Equal(t, 7.83, *a.WorkingHours())
	})

	t.Run("break longer than the session goes negative", func(t *testing.T) {
		out := checkIn.Add(30 * time.Minute)
		a := Attendance{CheckInTime: checkIn, CheckOutTime: &out, BreakTime: 60}

		assert.Equal(t, -0.5, *a.WorkingHours())
	})
}

func TestCheckOut(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	t.Run("closes an open session", func(t *testing.T) {
		a := Attendance{CheckInTime: checkIn}
		now := checkIn.Add(8 * time.Hour)

		err := a.CheckOut(now)

		require.NoError(t, err)
		require.NotNil(t, a.CheckOutTime)
		assert.Equal(t, now, *a.CheckOutTime)
	})

	t.Run("cannot check out twice", func(t *testing.T) {
		first := checkIn.Add(8 * time.Hour)
		a := Attendance{CheckInTime: checkIn, CheckOutTime: &first}

		err := a.CheckOut(first.Add(time.Hour))

		assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
		assert.Equal(t, first, *a.CheckOutTime)
	})
}

func TestUpdateBreakRequestValidate(t *testing.T) {
	assert.NoError(t, (&UpdateBreakRequest{BreakTime: 0}).Validate())
	assert.NoError(t, (&UpdateBreakRequest{BreakTime: 45}).Validate())
	assert.Error(t, (&UpdateBreakRequest{BreakTime: -1}).Validate())
}
