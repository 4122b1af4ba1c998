package orders

import "testing"

func TestNextStatus(t *testing.T) {
	cases := []struct {
		from    Status
		action  string
		want    Status
		wantErr bool
	}{
		{StatusPendingPayment, ActionConfirm, StatusConfirmed, false},
		{StatusConfirmed, ActionPrepare, StatusPreparing, false},
		{StatusPreparing, ActionDeliver, StatusDelivered, false},

		{StatusPendingPayment, ActionCancel, StatusCancelled, false},
		{StatusConfirmed, ActionCancel, StatusCancelled, false},
		{StatusPreparing, ActionCancel, StatusCancelled, false},

		// no skipping ahead
		{StatusPendingPayment, ActionPrepare, "", true},
		{StatusPendingPayment, ActionDeliver, "", true},
		{StatusConfirmed, ActionConfirm, "", true},
		{StatusConfirmed, ActionDeliver, "", true},
		{StatusPreparing, ActionConfirm, "", true},

		// terminal statuses accept nothing, cancel included
		{StatusDelivered, ActionCancel, "", true},
		{StatusDelivered, ActionConfirm, "", true},
		{StatusCancelled, ActionCancel, "", true},
		{StatusCancelled, ActionDeliver, "", true},

		{StatusPendingPayment, "bogus", "", true},
	}

	for _, tc := range cases {
		got, err := nextStatus(tc.from, tc.action)
		if tc.wantErr {
			if err == nil {
				t.Errorf("nextStatus(%q, %q) = %q, want error", tc.from, tc.action, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("nextStatus(%q, %q): %v", tc.from, tc.action, err)
			continue
		}
		if got != tc.want {
			t.Errorf("nextStatus(%q, %q) = %q, want %q", tc.from, tc.action, got, tc.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusPendingPayment, StatusConfirmed, StatusPreparing} {
		if s.Terminal() {
			t.Errorf("%q reported terminal", s)
		}
	}
	for _, s := range []Status{StatusDelivered, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%q not reported terminal", s)
		}
	}
}
