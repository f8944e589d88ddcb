package mailer

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/pkg/logger"
)

const ref = "BK-1A2B3C4D"

func newTestMailer() (*Mailer, *clock.Mock) {
	clk := clock.NewMock()
	return New(Config{DeliveryDelay: 2 * time.Second, MaxResends: 3}, clk, logger.NewNop(), nil), clk
}

func waitStatus(t *testing.T, m *Mailer, want domain.EmailStatus) {
	t.Helper()
	require.Eventually(t, func() bool {
		st, err := m.Status(ref)
		return err == nil && st.Status == want
	}, time.Second, 5*time.Millisecond)
}

func TestMailer_SendDelivers(t *testing.T) {
	m, clk := newTestMailer()

	st, err := m.Send(ref, "candidate@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.EmailSending, st.Status)
	assert.False(t, st.CanResend())

	clk.Add(2 * time.Second)
	waitStatus(t, m, domain.EmailDelivered)

	st, err = m.Status(ref)
	require.NoError(t, err)
	assert.True(t, st.CanResend())
	assert.Equal(t, 3, st.ResendsLeft)
}

func TestMailer_ResendLimit(t *testing.T) {
	m, clk := newTestMailer()

	_, err := m.Send(ref, "candidate@example.com")
	require.NoError(t, err)

	_, err = m.Resend(ref)
	assert.ErrorIs(t, err, ErrDeliveryInProgress)

	for i := 1; i <= 3; i++ {
		clk.Add(2 * time.Second)
		waitStatus(t, m, domain.EmailDelivered)

		st, err := m.Resend(ref)
		require.NoError(t, err)
		assert.Equal(t, i, st.Resends)
		assert.Equal(t, 3-i, st.ResendsLeft)
		assert.Equal(t, domain.EmailSending, st.Status)
	}

	clk.Add(2 * time.Second)
	waitStatus(t, m, domain.EmailDelivered)

	_, err = m.Resend(ref)
	assert.ErrorIs(t, err, ErrResendLimit)
}

func TestMailer_UnknownReference(t *testing.T) {
	m, _ := newTestMailer()

	_, err := m.Status("BK-UNKNOWN")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Resend("BK-UNKNOWN")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMailer_ShutdownCancelsPending(t *testing.T) {
	m, clk := newTestMailer()

	_, err := m.Send(ref, "candidate@example.com")
	require.NoError(t, err)

	m.Shutdown()
	clk.Add(time.Minute)

	require.Never(t, func() bool {
		st, _ := m.Status(ref)
		return st.Status == domain.EmailDelivered
	}, 50*time.Millisecond, 5*time.Millisecond)

	_, err = m.Send("BK-OTHER", "x@example.com")
	assert.ErrorIs(t, err, ErrClosed)
}
