// Package calendar integrates the coach's Google Calendar: event lifecycle
// for booked sessions and the free/busy feed consumed by availability.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"coach-booking-api/internal/pkg/config"
	"coach-booking-api/internal/pkg/errs"
	"coach-booking-api/internal/usecase/commands"
	"coach-booking-api/internal/usecase/queries"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type GoogleGateway struct {
	service     *gcal.Service
	calendarID  string
	timezone    string
	coachEmail  string
	coachPhone  string
	noticeHours int
	feePercent  int
}

func NewGoogleGateway(ctx context.Context, cfg config.CalendarConfig, booking config.BookingConfig) (*GoogleGateway, error) {
	service, err := gcal.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.ServiceAccountKey)),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create calendar service")
	}
	return &GoogleGateway{
		service:     service,
		calendarID:  cfg.CalendarID,
		timezone:    booking.TimeZone,
		coachEmail:  cfg.CoachEmail,
		coachPhone:  cfg.CoachPhone,
		noticeHours: booking.CancellationNoticeHours,
		feePercent:  int(booking.CancellationFeeFraction*100 + 0.5),
	}, nil
}

func (g *GoogleGateway) CreateEvent(ctx context.Context, details commands.EventDetails) (string, error) {
	event := &gcal.Event{
		Summary:     fmt.Sprintf("Coaching Session - %s", details.UserName),
		Description: g.eventDescription(details),
		Start: &gcal.EventDateTime{
			DateTime: details.Start.Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: details.Start.Add(details.Duration).Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		Attendees: g.eventAttendees(details.UserEmail),
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := g.service.Events.Insert(g.calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return "", errs.Wrap(err, "failed to create calendar event")
	}
	return created.Id, nil
}

func (g *GoogleGateway) UpdateEvent(ctx context.Context, eventRef string, newStart time.Time, duration time.Duration) error {
	event, err := g.service.Events.Get(g.calendarID, eventRef).Context(ctx).Do()
	if err != nil {
		return errs.Wrap(err, "failed to load calendar event")
	}

	event.Start = &gcal.EventDateTime{
		DateTime: newStart.Format(time.RFC3339),
		TimeZone: g.timezone,
	}
	event.End = &gcal.EventDateTime{
		DateTime: newStart.Add(duration).Format(time.RFC3339),
		TimeZone: g.timezone,
	}

	_, err = g.service.Events.Update(g.calendarID, eventRef, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return errs.Wrap(err, "failed to update calendar event")
	}
	return nil
}

// CancelEvent deletes the event. An already-deleted event is treated as
// success so cancellation stays idempotent.
func (g *GoogleGateway) CancelEvent(ctx context.Context, eventRef, reason string) error {
	err := g.service.Events.Delete(g.calendarID, eventRef).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			return nil
		}
		return errs.Wrap(err, "failed to delete calendar event")
	}
	return nil
}

// BusyIntervals queries the free/busy feed for the window. This covers events
// the coach created directly in the calendar, which no appointment row knows
// about.
func (g *GoogleGateway) BusyIntervals(ctx context.Context, from, to time.Time) ([]queries.BusyInterval, error) {
	resp, err := g.service.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, errs.Wrap(err, "failed to query free/busy feed")
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return nil, errs.New("free/busy response missing calendar")
	}
	if len(cal.Errors) > 0 {
		return nil, errs.New("free/busy query returned calendar errors")
	}

	intervals := make([]queries.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, errs.Wrap(err, "invalid busy period start")
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, errs.Wrap(err, "invalid busy period end")
		}
		intervals = append(intervals, queries.BusyInterval{Start: start, End: end})
	}
	return intervals, nil
}

// eventAttendees invites the client, plus the coach when an address is
// configured, so both get reminder notifications.
func (g *GoogleGateway) eventAttendees(userEmail string) []*gcal.EventAttendee {
	attendees := []*gcal.EventAttendee{
		{Email: userEmail},
	}
	if g.coachEmail != "" {
		attendees = append(attendees, &gcal.EventAttendee{Email: g.coachEmail, ResponseStatus: "accepted"})
	}
	return attendees
}

func (g *GoogleGateway) eventDescription(details commands.EventDetails) string {
	desc := fmt.Sprintf(
		"Session type: %s\nClient: %s\nPhone: %s\nEmail: %s\n",
		details.SessionType, details.UserName, details.UserPhone, details.UserEmail,
	)
	if details.Notes != "" {
		desc += fmt.Sprintf("\nPreparation notes:\n%s\n", details.Notes)
	}
	if g.coachPhone != "" {
		desc += fmt.Sprintf("\nQuestions? Call %s", g.coachPhone)
	}
	desc += fmt.Sprintf(
		"\n\nCancellation policy: paid sessions rescheduled once and cancelled "+
			"with less than %d hours notice incur a %d%% fee.",
		g.noticeHours, g.feePercent,
	)
	return desc
}
