package service

import (
	"errors"
	"fmt"
	"time"

	"frotacheck/internal/models"
	"frotacheck/internal/repository"
)

// maxExitAhead is how far past the current time an exit stamp may lie.
const maxExitAhead = 2 * time.Hour

var (
	errJourneyClosed = errors.New("today's journey is already closed")
	errExitTooFar    = errors.New("exit time cannot be far ahead of the current time")
	errEntryRequired = errors.New("date and entry time are required")
)

// JourneyService records drivers' work-journey time entries: clock in
// once per day, clock out later (possibly past midnight).
type JourneyService struct {
	journeys *repository.JourneyRepo
}

func NewJourneyService(journeys *repository.JourneyRepo) *JourneyService {
	return &JourneyService{journeys: journeys}
}

// ClockRequest carries the fields the driver can fill.
type ClockRequest struct {
	Date      string `json:"data"`
	MorningKM string `json:"kmManha"`
	TimeIn    string `json:"horaEntrada"`
	TimeOut   string `json:"horaSaida"`
	Note      string `json:"bairroObs"`
}

// Current resolves the entry the driver's screen should show, in order:
// the open entry (no exit time), then today's entry, then nothing.
func (s *JourneyService) Current(driverID string, now time.Time) (*models.JourneyEntry, error) {
	open, err := s.journeys.FindOpenByDriver(driverID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}
	return s.journeys.FindByDriverAndDate(driverID, now.Format("2006-01-02"))
}

// Clock registers the driver's entry, or closes the open journey with
// an exit time. A closed journey cannot be reopened or edited.
func (s *JourneyService) Clock(driverID string, req ClockRequest, now time.Time) (*models.JourneyEntry, error) {
	if req.Date == "" || req.TimeIn == "" {
		return nil, errEntryRequired
	}

	existing, err := s.Current(driverID, now)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		entry := &models.JourneyEntry{
			DriverID:  driverID,
			Date:      req.Date,
			MorningKM: req.MorningKM,
			TimeIn:    req.TimeIn,
			TimeOut:   "",
			Note:      req.Note,
			CreatedAt: now.UTC().Format(time.RFC3339),
		}
		id, err := s.journeys.Create(entry)
		if err != nil {
			return nil, err
		}
		entry.ID = id
		return entry, nil
	}

	if existing.Closed() {
		return nil, errJourneyClosed
	}

	if err := validateTimeOut(existing.Date, existing.TimeIn, req.TimeOut, now); err != nil {
		return nil, err
	}
	if err := s.journeys.Update(existing.ID, map[string]any{
		"kmManha":   req.MorningKM,
		"horaSaida": req.TimeOut,
		"bairroObs": req.Note,
	}); err != nil {
		return nil, err
	}
	existing.MorningKM = req.MorningKM
	existing.TimeOut = req.TimeOut
	existing.Note = req.Note
	return existing, nil
}

// validateTimeOut checks an exit stamp against the open entry. An exit
// earlier than the entry rolls over to the next day (night shifts); an
// exit more than maxExitAhead past now is rejected.
func validateTimeOut(date, timeIn, timeOut string, now time.Time) error {
	if timeOut == "" {
		return nil
	}
	layout := "2006-01-02T15:04"
	in, err := time.ParseInLocation(layout, date+"T"+timeIn, now.Location())
	if err != nil {
		return fmt.Errorf("invalid entry time: %w", err)
	}
	out, err := time.ParseInLocation(layout, date+"T"+timeOut, now.Location())
	if err != nil {
		return fmt.Errorf("invalid exit time: %w", err)
	}
	if out.Before(in) {
		// Crossed midnight.
		out = out.Add(24 * time.Hour)
	}
	if out.Sub(now) > maxExitAhead {
		return errExitTooFar
	}
	return nil
}
