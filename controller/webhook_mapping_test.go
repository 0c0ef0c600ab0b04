package controller

import (
	"testing"

	"github.com/AnshumanShah69/webhooks-prod/model"
)

func TestStatusForEventType(t *testing.T) {
	if s, ok := statusForEventType("payment_intent.succeeded"); !ok || s != model.StatusSucceeded {
		t.Errorf("succeeded mapping = (%q, %v)", s, ok)
	}
	if s, ok := statusForEventType("payment_intent.payment_failed"); !ok || s != model.StatusRequiresPaymentMethod {
		t.Errorf("payment_failed mapping = (%q, %v)", s, ok)
	}
	if s, ok := statusForEventType("payment_intent.canceled"); !ok || s != model.StatusCanceled {
		t.Errorf("canceled mapping = (%q, %v)", s, ok)
	}
	if _, ok := statusForEventType("customer.created"); ok {
		t.Error("unknown type must not map")
	}
}
