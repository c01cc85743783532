package domain

const (
	ApprovalApproved = "approved"
	ApprovalDenied   = "denied"
	ApprovalPending  = "pending"
)

// Session is a talk proposal, scheduled or not.
type Session struct {
	ID                 string         `json:"_id"`
	Title              string         `json:"title,omitempty"`
	Speakers           *SpeakerIDList `json:"speakers,omitempty"`
	AssociatedConf     string         `json:"associatedConf"`
	Approval           string         `json:"approval"`
	StatusTimeLocation []SlotRef      `json:"statusTimeLocation"`
}

// SlotRef places a session into a room and timeslot.
type SlotRef struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Room     string `json:"room"`
	Part     string `json:"part,omitempty"`
}

func (s Session) Scheduled() bool {
	return len(s.StatusTimeLocation) > 0
}

func (s Session) Denied() bool {
	return s.Approval == ApprovalDenied
}

func (s Session) Approved() bool {
	return s.Approval == ApprovalApproved
}

// Involves reports whether speakerID presents or co-presents this session.
func (s Session) Involves(speakerID string) bool {
	if s.Speakers == nil {
		return false
	}
	return s.Speakers.Involves(speakerID)
}
