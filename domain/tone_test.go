package domain

import "testing"

func TestToneByIDFallsBackToFriendly(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		wantID string
	}{
		{"known tone", ToneUrgent, ToneUrgent},
		{"unknown tone", "TONE999", ToneFriendly},
		{"empty tone", "", ToneFriendly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToneByID(tt.id); got.ID != tt.wantID {
				t.Errorf("ToneByID(%q).ID = %q, want %q", tt.id, got.ID, tt.wantID)
			}
		})
	}
}

func TestTonesReturnsACopy(t *testing.T) {
	tones := Tones()
	if len(tones) != 5 {
		t.Fatalf("got %d tones, want 5", len(tones))
	}

	tones[0].Name = "변조"
	if ToneByID(ToneFriendly).Name == "변조" {
		t.Error("mutating the returned slice must not change the catalog")
	}
}

func TestIsKnownTone(t *testing.T) {
	if !IsKnownTone(ToneProfessional) {
		t.Error("TONE004 should be known")
	}
	if IsKnownTone("TONE006") {
		t.Error("TONE006 should not be known")
	}
}
