package order

// PaymentView reconciles the two sources of payment truth: the status the
// server last confirmed, and the local optimistic flag set the moment a
// payment request is accepted. The optimistic flag survives only while the
// server still reports PENDING; any fresher confirmed status discards it.
type PaymentView struct {
	confirmed  PaymentStatus
	optimistic bool
}

// Confirm records a server-confirmed payment status. A status other than
// PENDING clears the optimistic flag: the server has caught up.
func (v *PaymentView) Confirm(s PaymentStatus) {
	v.confirmed = s
	if s != PaymentPending {
		v.optimistic = false
	}
}

// MarkInitiated sets the optimistic "payment initiated" flag after the
// payment backend accepted a process request.
func (v *PaymentView) MarkInitiated() {
	v.optimistic = true
}

// Initiated reports whether a payment was initiated locally and not yet
// confirmed or denied by the server.
func (v *PaymentView) Initiated() bool {
	return v.optimistic
}

// Effective returns the payment status to display: the last confirmed
// status, or PaymentUnknown before the first fetch resolves.
func (v *PaymentView) Effective() PaymentStatus {
	if v.confirmed == "" {
		return PaymentUnknown
	}
	return v.confirmed
}

// Payable reports whether a new payment may be started: only while the
// server-confirmed status is PENDING and no payment is already acknowledged.
func (v *PaymentView) Payable() bool {
	return v.Effective() == PaymentPending && !v.optimistic
}
