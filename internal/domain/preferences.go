package domain

// Intent is the user's stated discovery goal.
type Intent string

// Discovery intents. IntentNone leaves discovery unbiased.
const (
	IntentNone     Intent = ""
	IntentLeads    Intent = "Leads"
	IntentLongForm Intent = "Long-form"
	IntentBoth     Intent = "Both"
)

// Valid reports whether i is a known intent (including none).
func (i Intent) Valid() bool {
	switch i {
	case IntentNone, IntentLeads, IntentLongForm, IntentBoth:
		return true
	default:
		return false
	}
}

// DefaultCategory returns the feed tab that matches the intent.
func (i Intent) DefaultCategory() ContentType {
	switch i {
	case IntentLeads:
		return CategoryLeads
	case IntentLongForm:
		return CategoryThreads
	default:
		return CategoryAll
	}
}

// UserPreferences holds onboarding answers.
type UserPreferences struct {
	IsOnboarded  bool   `json:"isOnboarded"`
	SearchIntent Intent `json:"searchIntent,omitempty" validate:"omitempty,oneof=Leads Long-form Both"`
}
