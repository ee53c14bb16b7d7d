package agenthooks

import (
	"strings"
	"testing"
)

func TestValidateCustomerID_Match(t *testing.T) {
	state := State{StateCustomerProfile: `{"customer_id": "42"}`}

	ok, msg := ValidateCustomerID("42", state)

	if !ok {
		t.Error("expected matching customer_id to validate")
	}
	if msg != "" {
		t.Errorf("expected empty message on success, got %q", msg)
	}
}

func TestValidateCustomerID_Mismatch(t *testing.T) {
	state := State{StateCustomerProfile: `{"customer_id": "42"}`}

	ok, msg := ValidateCustomerID("7", state)

	if ok {
		t.Error("expected mismatched customer_id to fail")
	}
	if !strings.Contains(msg, "42") {
		t.Errorf("expected remediation to name the stored ID, got %q", msg)
	}
	if !strings.Contains(msg, "7") {
		t.Errorf("expected remediation to name the candidate ID, got %q", msg)
	}
}

func TestValidateCustomerID_NoProfile(t *testing.T) {
	ok, msg := ValidateCustomerID("42", State{})

	if ok {
		t.Error("expected validation to fail without a profile")
	}
	if !strings.Contains(msg, "No customer profile selected") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestValidateCustomerID_MalformedProfile(t *testing.T) {
	cases := map[string]any{
		"truncated json":  `{"customer_id": "42"`,
		"not a string":    42,
		"missing id key":  `{"name": "Jane"}`,
	}

	for name, profile := range cases {
		state := State{StateCustomerProfile: profile}
		ok, msg := ValidateCustomerID("42", state)
		if ok {
			t.Errorf("%s: expected validation to fail", name)
		}
		if !strings.Contains(msg, "couldn't be parsed") {
			t.Errorf("%s: unexpected message %q", name, msg)
		}
	}
}

func TestValidateCustomerID_DoesNotMutateState(t *testing.T) {
	state := State{StateCustomerProfile: `{"customer_id": "42"}`}

	ValidateCustomerID("42", state)

	if len(state) != 1 {
		t.Errorf("expected state untouched, got %v", state)
	}
}
