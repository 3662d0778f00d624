//go:build unit

package calendar

import (
	"testing"

	"coach-booking-api/internal/domain/appointment"
	"coach-booking-api/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDescription(t *testing.T) {
	g := &GoogleGateway{
		coachPhone:  "+1-555-0100",
		noticeHours: 48,
		feePercent:  50,
	}

	details := commands.EventDetails{
		UserName:    "Jane Doe",
		UserEmail:   "jane@example.com",
		UserPhone:   "+1-555-0199",
		SessionType: appointment.SessionPaidSingle,
		Notes:       "Focus on interview prep",
	}

	desc := g.eventDescription(details)

	assert.Contains(t, desc, "Client: Jane Doe")
	assert.Contains(t, desc, "Preparation notes:\nFocus on interview prep")
	assert.Contains(t, desc, "Questions? Call +1-555-0100")
	assert.Contains(t, desc, "less than 48 hours notice incur a 50% fee")

	t.Run("policy line follows the configured values", func(t *testing.T) {
		strict := &GoogleGateway{noticeHours: 24, feePercent: 25}

		assert.Contains(t, strict.eventDescription(details), "less than 24 hours notice incur a 25% fee")
	})

	t.Run("no notes section without notes", func(t *testing.T) {
		bare := details
		bare.Notes = ""

		assert.NotContains(t, g.eventDescription(bare), "Preparation notes")
	})
}

func TestEventAttendees(t *testing.T) {
	t.Run("coach is invited when configured", func(t *testing.T) {
		g := &GoogleGateway{coachEmail: "coach@example.com"}

		attendees := g.eventAttendees("jane@example.com")

		require.Len(t, attendees, 2)
		assert.Equal(t, "jane@example.com", attendees[0].Email)
		assert.Equal(t, "coach@example.com", attendees[1].Email)
		assert.Equal(t, "accepted", attendees[1].ResponseStatus)
	})

	t.Run("client only without a coach address", func(t *testing.T) {
		g := &GoogleGateway{}

		attendees := g.eventAttendees("jane@example.com")

		require.Len(t, attendees, 1)
		assert.Equal(t, "jane@example.com", attendees[0].Email)
	})
}
