package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TrainerStatus is the state of a trainer application.
type TrainerStatus string

const (
	TrainerStatusRequested TrainerStatus = "requested"
	TrainerStatusAccepted  TrainerStatus = "accepted"
	TrainerStatusRejected  TrainerStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s TrainerStatus) Valid() bool {
	switch s {
	case TrainerStatusRequested, TrainerStatusAccepted, TrainerStatusRejected:
		return true
	}
	return false
}

const (
	SalaryUnpaid = "unpaid"
	SalaryPaid   = "paid"
)

// TrainerApplication is a request to become a trainer. Never hard-deleted.
type TrainerApplication struct {
	ID            uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	Name          string                      `json:"name" gorm:"size:255;not null"`
	Email         string                      `json:"email" gorm:"size:255;not null;index"`
	Age           int                         `json:"age"`
	Experience    int                         `json:"experience"`
	Status        TrainerStatus               `json:"status" gorm:"type:varchar(20);not null;default:'requested';index"`
	Salary        string                      `json:"salary" gorm:"size:64"`
	Image         string                      `json:"image" gorm:"size:1024"`
	Bio           string                      `json:"bio" gorm:"type:text"`
	Skills        datatypes.JSONSlice[string] `json:"skills"`
	AvailableDays datatypes.JSONSlice[string] `json:"available_days"`
	AvailableTime string                      `json:"available_time" gorm:"size:64"`
	Slots         datatypes.JSONSlice[string] `json:"slots"`
	Feedback      string                      `json:"feedback,omitempty" gorm:"type:text"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *TrainerApplication) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

var weekdays = map[string]rrule.Weekday{
	"mon": rrule.MO,
	"tue": rrule.TU,
	"wed": rrule.WE,
	"thu": rrule.TH,
	"fri": rrule.FR,
	"sat": rrule.SA,
	"sun": rrule.SU,
}

var timeLayouts = []string{"15:04", "3:04PM", "3:04 PM", "3PM", "3 PM"}

// NextSessions expands AvailableDays and the start of AvailableTime into the next count
// session times strictly after from.
func (t TrainerApplication) NextSessions(from time.Time, count int) ([]time.Time, error) {
	days := make([]rrule.Weekday, 0, len(t.AvailableDays))
	for _, d := range t.AvailableDays {
		key := strings.ToLower(strings.TrimSpace(d))
		if len(key) < 3 {
			continue
		}
		if wd, ok := weekdays[key[:3]]; ok {
			days = append(days, wd)
		}
	}
	if len(days) == 0 || count <= 0 {
		return []time.Time{}, nil
	}

	hour, minute := t.startOfDay()
	start := time.Date(from.Year(), from.Month(), from.Day(), hour, minute, 0, 0, from.Location())
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: days,
		Dtstart:   start,
	})
	if err != nil {
		return nil, err
	}

	sessions := make([]time.Time, 0, count)
	cur := from
	for len(sessions) < count {
		next := rule.After(cur, false)
		if next.IsZero() {
			break
		}
		sessions = append(sessions, next)
		cur = next
	}
	return sessions, nil
}

// startOfDay parses the opening time of AvailableTime, e.g. "09:00-12:00" or "9am - 5pm".
func (t TrainerApplication) startOfDay() (int, int) {
	raw := strings.ToUpper(strings.TrimSpace(strings.SplitN(t.AvailableTime, "-", 2)[0]))
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Hour(), parsed.Minute()
		}
	}
	return 0, 0
}
