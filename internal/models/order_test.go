package models

import "testing"

func TestOrderActive(t *testing.T) {
	tests := []struct {
		status string
		active bool
	}{
		{OrderStatusAccepted, true},
		{OrderStatusInProgress, true},
		{"", false},
		{"delivered", false},
	}
	for _, tt := range tests {
		order := Order{Status: tt.status}
		if got := order.Active(); got != tt.active {
			t.Fatalf("status %q: expected active=%v, got %v", tt.status, tt.active, got)
		}
	}
}
