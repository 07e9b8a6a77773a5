package moneymarket

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		overrides Params
		global    Params
		want      EffectiveParams
	}{
		{
			name:   "globals only",
			global: Params{TPlus: Some(1), CommissionPct: P(0.005), MarkupPct: P(0.001), MarkupAmount: P(0.1)},
			want:   EffectiveParams{TPlus: 1, CommissionPct: 0.005, MarkupPct: 0.001, MarkupAmount: 0.1},
		},
		{
			name:      "overrides win",
			overrides: Params{TPlus: Some(2), CommissionPct: P(0.01)},
			global:    Params{TPlus: Some(1), CommissionPct: P(0.005), MarkupPct: P(0.001)},
			want:      EffectiveParams{TPlus: 2, CommissionPct: 0.01, MarkupPct: 0.001},
		},
		{
			name:      "explicit zero override is not absent",
			overrides: Params{TPlus: Some(0), CommissionPct: P(0), MarkupAmount: P(0)},
			global:    Params{TPlus: Some(1), CommissionPct: P(0.005), MarkupAmount: P(0.5)},
			want:      EffectiveParams{TPlus: 0, CommissionPct: 0, MarkupAmount: 0},
		},
		{
			name:   "missing percentages default to zero",
			global: Params{TPlus: Some(1)},
			want:   EffectiveParams{TPlus: 1},
		},
		{
			name:      "override only",
			overrides: Params{TPlus: Some(3)},
			want:      EffectiveParams{TPlus: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.overrides, tt.global)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveMissingTPlus(t *testing.T) {
	_, err := Resolve(Params{CommissionPct: P(0.01)}, Params{CommissionPct: P(0.005)})
	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve() error = %v, want *MissingParameterError", err)
	}
	if missing.Name != "t_plus" {
		t.Errorf("MissingParameterError.Name = %q, want %q", missing.Name, "t_plus")
	}
}
