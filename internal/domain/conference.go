package domain

import "strings"

// Conference is an event edition managed from the admin dashboard.
type Conference struct {
	Title        string    `json:"title"`
	DefaultConf  bool      `json:"defaultConf"`
	LastActive   bool      `json:"lastActive"`
	Archived     bool      `json:"archived"`
	VenueName    string    `json:"venueName,omitempty"`
	VenueAddress string    `json:"venueAddress,omitempty"`
	DateRange    DateRange `json:"dateRange"`
	Days         []ConfDay `json:"days,omitempty"`
	Rooms        []string  `json:"rooms,omitempty"`
}

// DateRange bounds a conference, both ends inclusive, as YYYY-MM-DD.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ConfDay struct {
	Date      string     `json:"date"`
	TimeSlots []TimeSlot `json:"timeSlots,omitempty"`
}

// TimeSlot start and end are HH:MM on the owning day.
type TimeSlot struct {
	ID    string `json:"_id,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Day returns the schedule entry for date.
func (c Conference) Day(date string) (ConfDay, bool) {
	for _, d := range c.Days {
		if d.Date == date {
			return d, true
		}
	}
	return ConfDay{}, false
}

// SameTitle compares conference titles the way the dashboard does: case-insensitively.
func SameTitle(a, b string) bool {
	return strings.EqualFold(a, b)
}

const (
	MoveUp   = "up"
	MoveDown = "down"
)
