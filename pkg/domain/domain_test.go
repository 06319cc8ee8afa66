package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDecimalUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Decimal
	}{
		{"number", `{"v": 1200}`, "1200"},
		{"fraction", `{"v": 12.5}`, "12.5"},
		{"string", `{"v": "3000.00"}`, "3000.00"},
		{"null", `{"v": null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V Decimal `json:"v"`
			}
			if err := json.Unmarshal([]byte(tt.in), &out); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if out.V != tt.want {
				t.Errorf("V = %q, want %q", out.V, tt.want)
			}
		})
	}
}

func TestDecimalFloat(t *testing.T) {
	if got := Decimal("3000.50").Float(); got != 3000.5 {
		t.Errorf("Float() = %v, want 3000.5", got)
	}
	if got := Decimal("n/a").Float(); got != 0 {
		t.Errorf("Float() = %v, want 0", got)
	}
}

func TestCarTitle(t *testing.T) {
	tests := []struct {
		name string
		car  Car
		want string
	}{
		{"full", Car{Maker: "Toyota", Model: "Prius", Grade: "S"}, "Toyota Prius S"},
		{"partial", Car{Maker: "Honda", Grade: "G"}, "Honda G"},
		{"fallback", Car{StockNo: "A-100"}, "A-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.car.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeatsAvailable(t *testing.T) {
	if got := (Seats{SeatLimit: 5, ActiveUsers: 3}).Available(); got != 2 {
		t.Errorf("Available() = %d, want 2", got)
	}
	if got := (Seats{SeatLimit: 2, ActiveUsers: 4}).Available(); got != 0 {
		t.Errorf("Available() = %d, want 0", got)
	}
}

func TestInviteUsable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		invite Invite
		want   bool
	}{
		{"fresh", Invite{MaxUses: 1}, true},
		{"used up", Invite{MaxUses: 1, UsedCount: 1}, false},
		{"expired", Invite{MaxUses: 3, ExpiresAt: &past}, false},
		{"not yet expired", Invite{MaxUses: 3, ExpiresAt: &future}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.invite.Usable(now); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeCanManage(t *testing.T) {
	for role, want := range map[string]bool{RoleAdmin: true, RoleManager: true, RoleStaff: false, "": false} {
		if got := (Me{Role: role}).CanManage(); got != want {
			t.Errorf("CanManage(%q) = %v, want %v", role, got, want)
		}
	}
}
