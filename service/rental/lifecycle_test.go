package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DavidOvMu23/Viniloteca/model"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestValidatePeriod(t *testing.T) {
	cases := []struct {
		name     string
		rentedAt time.Time
		dueAt    time.Time
		want     ErrCode
	}{
		{"due before start", day(8), day(1), ErrInvalidRange},
		{"one second backwards", day(1).Add(time.Second), day(1), ErrInvalidRange},
		{"zero-length rental", day(1), day(1), ""},
		{"seven days under max", day(1), day(8), ""},
		{"exactly max days", day(1), day(16), ""},
		{"one second over max", day(1), day(16).Add(time.Second), ErrDurationExceeded},
		{"one day over max", day(1), day(17), ErrDurationExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePeriod(tc.rentedAt, tc.dueAt, MaxRentalDays)
			if tc.want == "" {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tc.want, Code(err))
		})
	}
}

func TestDeriveStatusReturnedIsTerminal(t *testing.T) {
	ret := day(20)
	r := model.Rental{RentedAt: day(1), DueAt: day(8), ReturnedAt: &ret}

	// RETURNED regardless of how now relates to due_at.
	require.Equal(t, model.RentalReturned, DeriveStatus(r, day(2)))
	require.Equal(t, model.RentalReturned, DeriveStatus(r, day(30)))
}

func TestDeriveStatusByClock(t *testing.T) {
	r := model.Rental{RentedAt: day(1), DueAt: day(8)}

	require.Equal(t, model.RentalActive, DeriveStatus(r, day(5)))
	require.Equal(t, model.RentalActive, DeriveStatus(r, day(8)), "not overdue at the exact due instant")
	require.Equal(t, model.RentalOverdue, DeriveStatus(r, day(9)))
	require.True(t, IsOverdue(r, day(9)))
	require.False(t, IsOverdue(r, day(5)))
}

func TestMarkReturnedIdempotent(t *testing.T) {
	r := model.Rental{RentedAt: day(1), DueAt: day(8)}

	first, err := MarkReturned(r, day(10))
	require.NoError(t, err)
	require.NotNil(t, first.ReturnedAt)
	require.Equal(t, day(10), *first.ReturnedAt)

	// A second return keeps the original timestamp.
	second, err := MarkReturned(first, day(12))
	require.Equal(t, ErrAlreadyReturned, Code(err))
	require.Equal(t, day(10), *second.ReturnedAt)
}

func TestReturnedLateVsOverdue(t *testing.T) {
	onTime := day(7)
	late := day(10)

	require.False(t, ReturnedLate(model.Rental{DueAt: day(8), ReturnedAt: &onTime}))
	require.True(t, ReturnedLate(model.Rental{DueAt: day(8), ReturnedAt: &late}))
	require.False(t, ReturnedLate(model.Rental{DueAt: day(8)}), "unreturned records are never late, only overdue")
}

// Seven-day loan under the 15-day max: valid at creation, overdue two days
// past due, then returned late.
func TestLoanScenario(t *testing.T) {
	rentedAt := day(1)
	dueAt := day(8)
	require.NoError(t, ValidatePeriod(rentedAt, dueAt, MaxRentalDays))

	r := model.Rental{RentedAt: rentedAt, DueAt: dueAt}
	now := day(10)
	require.Equal(t, model.RentalOverdue, DeriveStatus(r, now))

	returned, err := MarkReturned(r, now)
	require.NoError(t, err)
	require.Equal(t, model.RentalReturned, DeriveStatus(returned, now))
	require.True(t, ReturnedLate(returned))
	require.False(t, IsOverdue(returned, now))
}
