package moneymarket

import "fmt"

// Params are the valuation parameters. The same shape is used for the global
// parameters of a document and for the per-instrument overrides.
type Params struct {
	TPlus         Optional[int]     `json:"t_plus,omitzero"`       // settlement lag in calendar days
	CommissionPct Optional[float64] `json:"comision_pct,omitzero"` // broker commission, 0.005 is 0.5%
	MarkupPct     Optional[float64] `json:"dm_pct,omitzero"`       // secondary market markup
	MarkupAmount  Optional[float64] `json:"dm_monto,omitzero"`     // secondary market flat fee, per 100 nominal
}

// EffectiveParams are the parameters of one instrument once overrides have been resolved.
type EffectiveParams struct {
	TPlus         int
	CommissionPct float64
	MarkupPct     float64
	MarkupAmount  float64
}

// MissingParameterError reports a required parameter that is neither overridden nor global.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing parameter %q: not overridden and no global value", e.Name)
}

// Resolve merges the instrument overrides over the global parameters.
//
// A present override wins, even when it is zero. An absent override falls
// back to the global value, and an absent percentage or amount defaults to 0.
// t_plus has no default.
func Resolve(overrides, global Params) (EffectiveParams, error) {
	tplus, ok := overrides.TPlus.Else(global.TPlus).Get()
	if !ok {
		return EffectiveParams{}, &MissingParameterError{Name: "t_plus"}
	}
	return EffectiveParams{
		TPlus:         tplus,
		CommissionPct: overrides.CommissionPct.Else(global.CommissionPct).Or(0),
		MarkupPct:     overrides.MarkupPct.Else(global.MarkupPct).Or(0),
		MarkupAmount:  overrides.MarkupAmount.Else(global.MarkupAmount).Or(0),
	}, nil
}
