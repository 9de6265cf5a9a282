package core

import "testing"

func TestIntentFromKeys(t *testing.T) {
	tests := []struct {
		name     string
		up, down bool
		expected Intent
	}{
		{"nothing held", false, false, IntentNone},
		{"up only", true, false, IntentUp},
		{"down only", false, true, IntentDown},
		{"both cancel", true, true, IntentNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IntentFromKeys(tc.up, tc.down); got != tc.expected {
				t.Errorf("IntentFromKeys(%v, %v) = %v, expected %v", tc.up, tc.down, got, tc.expected)
			}
		})
	}
}

func TestIntentsFromKeys(t *testing.T) {
	in := IntentsFromKeys(true, false, false, true)

	if in.For(PlayerOne) != IntentUp {
		t.Errorf("player one intent = %v, expected up", in.For(PlayerOne))
	}
	if in.For(PlayerTwo) != IntentDown {
		t.Errorf("player two intent = %v, expected down", in.For(PlayerTwo))
	}
	if in.For(PlayerNone) != IntentNone {
		t.Error("PlayerNone should never have an intent")
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in       string
		expected Intent
		wantErr  bool
	}{
		{"up", IntentUp, false},
		{"DOWN", IntentDown, false},
		{" none ", IntentNone, false},
		{"", IntentNone, false},
		{"sideways", IntentNone, true},
	}

	for _, tc := range tests {
		got, err := ParseIntent(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseIntent(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseIntent(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestIntentTextRoundTrip(t *testing.T) {
	for _, i := range []Intent{IntentNone, IntentUp, IntentDown} {
		text, err := i.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", i, err)
		}
		var back Intent
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if back != i {
			t.Errorf("round trip %v -> %q -> %v", i, text, back)
		}
	}
}

func TestPlayerOpponent(t *testing.T) {
	if PlayerOne.Opponent() != PlayerTwo || PlayerTwo.Opponent() != PlayerOne {
		t.Error("Opponent should swap sides")
	}
	if PlayerNone.Opponent() != PlayerNone {
		t.Error("PlayerNone has no opponent")
	}
}
