package agenthooks

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Remediation messages surfaced back into the conversation when customer
// validation fails. These are read by the model, not by humans debugging.
const (
	msgNoProfile        = "No customer profile selected. Please select a profile."
	msgProfileUnparsed  = "Customer profile couldn't be parsed. Please reload the customer data."
	msgCustomerMismatch = "You cannot use the tool with customer_id %s, only for %s."
)

// ValidateCustomerID checks a candidate customer ID against the profile
// bound to the session. It returns (true, "") only on an exact match of
// the stored customer_id; every failure returns false plus a remediation
// message for the model to act on. The function never mutates state.
func ValidateCustomerID(customerID string, state State) (bool, string) {
	raw, ok := state[StateCustomerProfile]
	if !ok {
		return false, msgNoProfile
	}

	profile, ok := raw.(string)
	if !ok || !gjson.Valid(profile) {
		return false, msgProfileUnparsed
	}

	stored := gjson.Get(profile, "customer_id")
	if !stored.Exists() {
		return false, msgProfileUnparsed
	}

	if customerID == stored.String() {
		return true, ""
	}
	return false, fmt.Sprintf(msgCustomerMismatch, customerID, stored.String())
}
