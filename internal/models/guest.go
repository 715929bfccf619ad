package models

// Guest represents one invited person or household: which sub-events they
// are invited to and everything they have submitted so far.
type Guest struct {
	Username            string `json:"username"`
	DisplayName         string `json:"displayName"`
	Events              Events `json:"events"`
	DietaryRequirements string `json:"dietaryRequirements,omitempty"`
	GiftSelection       string `json:"giftSelection,omitempty"`
	PaymentStatus       string `json:"paymentStatus,omitempty"`
}

// Events holds the invitation flags for the three sub-events. A stored
// guest always carries all three flags; a flag missing from legacy data
// decodes to false.
type Events struct {
	Ceremony    bool `json:"ceremony"`
	Reception   bool `json:"reception"`
	Celebration bool `json:"celebration"`
}

// PaymentClicked is the one-way marker set once a guest follows the
// payment link. There is no un-clicked transition.
const PaymentClicked = "clicked"

// Invited reports whether the guest is invited to at least one event.
func (e Events) Invited() bool {
	return e.Ceremony || e.Reception || e.Celebration
}
