package model

// Event kinds carried to the outbound notification channel.
const (
	EventKindCodeRedeemed = "code_redeemed"
	EventKindLeadCaptured = "lead_captured"
)

// Event is a notification payload. The notification channel is advisory:
// delivering an Event never affects the operation that produced it.
type Event interface {
	Kind() string
}

// CodeRedeemed is emitted after a redemption has been persisted.
type CodeRedeemed struct {
	Code           string
	OwnerHandle    string
	RedeemerHandle string
}

func (CodeRedeemed) Kind() string { return EventKindCodeRedeemed }

// LeadCaptured is emitted after a lead has been persisted.
type LeadCaptured struct {
	Lead Lead
}

func (LeadCaptured) Kind() string { return EventKindLeadCaptured }
