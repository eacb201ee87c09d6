package domain

import (
	"testing"
	"time"
)

func timePtr(v time.Time) *time.Time { return &v }

func TestCustomerRecencyDays(t *testing.T) {
	c := Customer{}
	if c.RecencyDays() != nil {
		t.Error("customer without purchases should have nil recency")
	}

	c.LastPurchaseDate = timePtr(time.Now().AddDate(0, 0, -30))
	got := c.RecencyDays()
	if got == nil {
		t.Fatal("expected a recency value")
	}
	if *got < 29 || *got > 31 {
		t.Errorf("recency = %d days, want about 30", *got)
	}
}

func TestCustomerTenureYears(t *testing.T) {
	c := Customer{}
	if c.TenureYears() != nil {
		t.Error("customer without a join date should have nil tenure")
	}

	c.JoinDate = timePtr(time.Now().AddDate(-5, -1, 0))
	got := c.TenureYears()
	if got == nil {
		t.Fatal("expected a tenure value")
	}
	if *got != 5 {
		t.Errorf("tenure = %d years, want 5", *got)
	}
}

func TestCustomerIsContractExpiringSoon(t *testing.T) {
	tests := []struct {
		name string
		end  *time.Time
		want bool
	}{
		{"no contract", nil, false},
		{"expires in two weeks", timePtr(time.Now().AddDate(0, 0, 14)), true},
		{"expires in three months", timePtr(time.Now().AddDate(0, 3, 0)), false},
		{"already expired", timePtr(time.Now().AddDate(0, 0, -10)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Customer{ContractEndDate: tt.end}
			if got := c.IsContractExpiringSoon(30); got != tt.want {
				t.Errorf("IsContractExpiringSoon(30) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCustomerIsHighDataUser(t *testing.T) {
	usage := 50.0
	c := Customer{AvgDataUsageGB: &usage}

	if !c.IsHighDataUser(50) {
		t.Error("usage equal to the threshold counts as heavy")
	}
	if c.IsHighDataUser(50.1) {
		t.Error("usage below the threshold is not heavy")
	}

	c.AvgDataUsageGB = nil
	if c.IsHighDataUser(0) {
		t.Error("unknown usage is never heavy")
	}
}
