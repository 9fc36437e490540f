package payments

import (
	"encoding/json"
)

type EventType string

const (
	EventPaymentIntentCreated        EventType = "payment_intent.created"
	EventPaymentIntentProcessing     EventType = "payment_intent.processing"
	EventPaymentIntentRequiresAction EventType = "payment_intent.requires_action"
	EventPaymentIntentCanceled       EventType = "payment_intent.canceled"
	EventPaymentIntentSucceeded      EventType = "payment_intent.succeeded"
	EventPaymentIntentFailed         EventType = "payment_intent.payment_failed"

	EventInvoicePaid EventType = "invoice.paid"

	EventSubscriptionCreated EventType = "customer.subscription.created"
	EventSubscriptionUpdated EventType = "customer.subscription.updated"
	EventSubscriptionDeleted EventType = "customer.subscription.deleted"
)

// Event is the envelope every webhook delivery carries. Data.Object is
// decoded once per handler into the variant that handler needs.
type Event struct {
	ID   string    `json:"id"`
	Type EventType `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// PaymentIntent carries the subset of intent fields the handlers read.
// Amount is in minor units.
type PaymentIntent struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Customer string            `json:"customer"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

// Invoice is the shape of an invoice.paid object. AmountPaid is in
// minor units.
type Invoice struct {
	ID         string `json:"id"`
	Customer   string `json:"customer"`
	AmountPaid int64  `json:"amount_paid"`
	Currency   string `json:"currency"`
}

// Subscription carries subscription lifecycle fields. Timestamps are
// epoch seconds.
type Subscription struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	CancelAt          int64  `json:"cancel_at"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
}

func (e *Event) PaymentIntent() (*PaymentIntent, error) {
	var pi PaymentIntent
	if err := json.Unmarshal(e.Data.Object, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

func (e *Event) Invoice() (*Invoice, error) {
	var inv Invoice
	if err := json.Unmarshal(e.Data.Object, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (e *Event) Subscription() (*Subscription, error) {
	var sub Subscription
	if err := json.Unmarshal(e.Data.Object, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
