package booking

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard(userID string) *Wizard {
	return &Wizard{
		ID:         "w1",
		ListingID:  "l1",
		Price:      1000,
		UserID:     userID,
		Step:       StepType,
		RentalType: ShortTerm,
		Occupants:  1,
	}
}

func TestWizardHappyPath(t *testing.T) {
	w := newTestWizard("u1")
	now := time.Now()

	require.NoError(t, w.SelectType(ShortTerm))
	assert.Equal(t, StepDates, w.Step)

	from := now.AddDate(0, 0, 1)
	to := now.AddDate(0, 0, 4)
	require.NoError(t, w.SetDates(from, to, now))
	require.NoError(t, w.ConfirmDates())
	assert.Equal(t, StepInfo, w.Step)

	require.NoError(t, w.SetInfo("Priya Singh", "+918765432109", 2))
	assert.Equal(t, StepPayment, w.Step)

	require.NoError(t, w.Complete())
	assert.Equal(t, StepSuccess, w.Step)
}

func TestWizardDatesGuardMissingDate(t *testing.T) {
	w := newTestWizard("u1")
	now := time.Now()
	require.NoError(t, w.SelectType(ShortTerm))

	// only a check-in date set: blocked, state stays dates
	require.NoError(t, w.SetDates(now.AddDate(0, 0, 1), time.Time{}, now))
	err := w.ConfirmDates()
	assert.ErrorIs(t, err, ErrDatesRequired)
	assert.Equal(t, StepDates, w.Step)
}

func TestWizardDatesGuardUnauthenticated(t *testing.T) {
	w := newTestWizard("")
	now := time.Now()
	require.NoError(t, w.SelectType(ShortTerm))
	require.NoError(t, w.SetDates(now.AddDate(0, 0, 1), now.AddDate(0, 0, 3), now))

	// unauthenticated: redirected to sign-in, does not advance
	err := w.ConfirmDates()
	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.Equal(t, StepDates, w.Step)
}

func TestWizardDatePickerConstraints(t *testing.T) {
	w := newTestWizard("u1")
	now := time.Now()
	require.NoError(t, w.SelectType(ShortTerm))

	// check-in before today
	err := w.SetDates(now.AddDate(0, 0, -2), now.AddDate(0, 0, 3), now)
	assert.ErrorIs(t, err, ErrPastCheckIn)

	// check-out not after check-in
	d := now.AddDate(0, 0, 2)
	err = w.SetDates(d, d, now)
	assert.ErrorIs(t, err, ErrBadDateOrder)
}

func TestWizardInfoGuard(t *testing.T) {
	w := newTestWizard("u1")
	now := time.Now()
	require.NoError(t, w.SelectType(LongTerm))
	require.NoError(t, w.SetDates(now.AddDate(0, 0, 1), now.AddDate(0, 2, 0), now))
	require.NoError(t, w.ConfirmDates())

	require.Error(t, w.SetInfo("", "+918765432109", 2))
	assert.Equal(t, StepInfo, w.Step)

	require.Error(t, w.SetInfo("Priya Singh", "", 2))
	assert.Equal(t, StepInfo, w.Step)
}

func TestWizardBackEdges(t *testing.T) {
	w := newTestWizard("u1")
	now := time.Now()
	require.NoError(t, w.SelectType(ShortTerm))
	require.NoError(t, w.SetDates(now.AddDate(0, 0, 1), now.AddDate(0, 0, 4), now))
	require.NoError(t, w.ConfirmDates())
	require.NoError(t, w.SetInfo("Priya Singh", "+918765432109", 2))

	require.NoError(t, w.Back())
	assert.Equal(t, StepInfo, w.Step)
	require.NoError(t, w.Back())
	assert.Equal(t, StepDates, w.Step)
	require.NoError(t, w.Back())
	assert.Equal(t, StepType, w.Step)

	// no back edge out of type
	assert.ErrorIs(t, w.Back(), ErrWrongStep)
}

func TestWizardNoBackAfterSuccess(t *testing.T) {
	w := newTestWizard("u1")
	w.Step = StepSuccess
	assert.ErrorIs(t, w.Back(), ErrWrongStep)
}

func TestWizardReset(t *testing.T) {
	w := newTestWizard("u1")
	now := time.Now()
	require.NoError(t, w.SelectType(LongTerm))
	require.NoError(t, w.SetDates(now.AddDate(0, 0, 1), now.AddDate(0, 3, 0), now))
	require.NoError(t, w.ConfirmDates())

	w.Reset()
	assert.Equal(t, StepType, w.Step)
	assert.Equal(t, ShortTerm, w.RentalType)
	assert.True(t, w.FromDate.IsZero())
	assert.True(t, w.ToDate.IsZero())
	assert.Empty(t, w.ContactName)
	assert.Equal(t, 1, w.Occupants)
}

func TestWizardStepOrderEnforced(t *testing.T) {
	w := newTestWizard("u1")

	// cannot skip ahead
	assert.ErrorIs(t, w.SetInfo("Priya Singh", "+918765432109", 2), ErrWrongStep)
	assert.ErrorIs(t, w.Complete(), ErrWrongStep)
	assert.ErrorIs(t, w.ConfirmDates(), ErrWrongStep)
}

func TestManagerSessions(t *testing.T) {
	m := NewManager()

	w := m.Open("l1", "Cozy 2BHK", 12000, "u1")
	require.NotEmpty(t, w.ID)

	got, ok := m.Get(w.ID)
	require.True(t, ok)
	assert.Equal(t, w, got)

	err := m.Mutate(w.ID, func(w *Wizard) error {
		return w.SelectType(LongTerm)
	})
	require.NoError(t, err)
	assert.Equal(t, StepDates, w.Step)

	m.Close(w.ID)
	_, ok = m.Get(w.ID)
	assert.False(t, ok)
	// closing resets the wizard state
	assert.Equal(t, StepType, w.Step)

	assert.ErrorIs(t, m.Mutate("missing", func(*Wizard) error { return nil }), ErrNoSession)
}

func TestManagerSerializesConcurrentMutations(t *testing.T) {
	m := NewManager()
	now := time.Now()

	w := m.Open("l1", "Cozy 2BHK", 12000, "u1")
	require.NoError(t, m.Mutate(w.ID, func(w *Wizard) error {
		if err := w.SelectType(ShortTerm); err != nil {
			return err
		}
		if err := w.SetDates(now.AddDate(0, 0, 1), now.AddDate(0, 0, 4), now); err != nil {
			return err
		}
		if err := w.ConfirmDates(); err != nil {
			return err
		}
		return w.SetInfo("Priya Singh", "+918765432109", 2)
	}))

	// Race the payment completion pattern against a user walking back.
	// Every wizard access goes through Mutate; at most one completion
	// may win.
	var completed int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(backOff bool) {
			defer wg.Done()
			if backOff {
				_ = m.Mutate(w.ID, func(w *Wizard) error { return w.Back() })
				return
			}
			err := m.Mutate(w.ID, func(w *Wizard) error {
				if w.Step != StepPayment {
					return ErrWrongStep
				}
				return nil
			})
			if err != nil {
				return
			}
			if m.Mutate(w.ID, func(w *Wizard) error { return w.Complete() }) == nil {
				atomic.AddInt32(&completed, 1)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	assert.LessOrEqual(t, completed, int32(1))
	got, ok := m.Get(w.ID)
	require.True(t, ok)

	final := func() Step {
		var s Step
		_ = m.Mutate(got.ID, func(w *Wizard) error {
			s = w.Step
			return nil
		})
		return s
	}()
	if completed == 1 {
		assert.Equal(t, StepSuccess, final)
	} else {
		assert.NotEqual(t, StepSuccess, final)
	}
}
