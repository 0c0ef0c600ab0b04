package stripe

// Event types delivered for payment intents. Anything else is
// acknowledged and ignored.
const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventPaymentIntentFailed    = "payment_intent.payment_failed"
	EventPaymentIntentCanceled  = "payment_intent.canceled"
)

type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	Object EventObject `json:"object"`
}

// EventObject is the processor-defined inner payload. Only the fields
// the service needs are decoded; unknown event shapes still parse as
// long as they carry the envelope.
type EventObject struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
