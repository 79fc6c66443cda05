package state

import "travel_booking/internal/domain"

type Phase string

const (
	PhaseEmpty      Phase = "empty"
	PhaseDrafting   Phase = "drafting"
	PhaseFinalizing Phase = "finalizing"
	PhaseConfirmed  Phase = "confirmed"
)

// Flow is the booking flow of a session. Exactly one of the variants below.
type Flow interface {
	Phase() Phase
}

type Empty struct{}

type Drafting struct {
	Draft domain.BookingDraft
}

// Finalizing is entered while the payment step runs. A second confirm cannot start from here.
// Seq identifies the draft being paid for; a confirm carrying another Seq is refused.
type Finalizing struct {
	Draft domain.BookingDraft
	Seq   uint64
}

// Confirmed holds the booking the last confirm produced. There is no draft in this state.
type Confirmed struct {
	Booking domain.Booking
}

func (Empty) Phase() Phase      { return PhaseEmpty }
func (Drafting) Phase() Phase   { return PhaseDrafting }
func (Finalizing) Phase() Phase { return PhaseFinalizing }
func (Confirmed) Phase() Phase  { return PhaseConfirmed }

// draftOf returns the in-progress draft, if the flow has one.
func draftOf(f Flow) (domain.BookingDraft, bool) {
	switch v := f.(type) {
	case Drafting:
		return v.Draft, true
	case Finalizing:
		return v.Draft, true
	}
	return domain.BookingDraft{}, false
}
