package moneymarket

import (
	"encoding/json"
	"math"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("ordered keys", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("z", 1)
		w.Append("a", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"z":1,"a":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // assess that a zero value is actually added.
		w.Optional("b", "")
		w.Optional("c", nil)
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":0,"d":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("absent optional is null", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("price", None[float64]())
		w.Append("zero", Some(0.0))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"price":null,"zero":0}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("error is sticky", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("bad", func() {})
		w.Append("good", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Errorf("MarshalJSON() should report the marshal error")
		}
	})
}

func TestNonFiniteJSON(t *testing.T) {
	var w jsonObjectWriter
	w.Append("inf", math.Inf(1))
	w.Append("nan", math.NaN())
	w.Append("yield", Some(math.Inf(-1)))
	w.Append("ok", 1.5)
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if want := `{"inf":null,"nan":null,"yield":null,"ok":1.5}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestOptionalJSON(t *testing.T) {
	var p Params
	if err := json.Unmarshal([]byte(`{"t_plus":0,"comision_pct":null}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if v, ok := p.TPlus.Get(); !ok || v != 0 {
		t.Errorf("t_plus = (%v, %v), want explicit zero", v, ok)
	}
	if p.CommissionPct.Present() {
		t.Errorf("comision_pct null should be absent")
	}
	if p.MarkupPct.Present() {
		t.Errorf("dm_pct missing should be absent")
	}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"t_plus":0}`; string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}
}
