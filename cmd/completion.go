package cmd

import (
	"flag"

	"github.com/etnz/moneymarket"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application, with the
// global flags of global.
func Completion(global *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(global, ""),
	}
	for _, cmds := range Commands {
		for _, sub := range cmds {
			f := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
			sub.SetFlags(f)
			c.Sub[sub.Name()] = &complete.Command{Flags: flagPredictors(f, sub.Name())}
		}
	}
	return c
}

func flagPredictors(f *flag.FlagSet, cmd string) map[string]complete.Predictor {
	predictors := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		predictors[fl.Name] = flagPredictor(fl, cmd)
	})
	return predictors
}

func flagPredictor(fl *flag.Flag, cmd string) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch fl.Name {
	case "document", "bonds", "feed", "o":
		return predict.Files("*.json")
	case "sort":
		if cmd == "bonds" {
			return predict.Set(moneymarket.FieldNames(moneymarket.BondFields))
		}
		return predict.Set(moneymarket.FieldNames(moneymarket.InstrumentFields))
	case "log-level":
		return predict.Set{"debug", "info", "warn", "error"}
	case "unset":
		return predict.Set{"t_plus", "comision_pct", "dm_pct", "dm_monto"}
	case "d", "from", "to":
		return predict.Set{"0d", "-1d", "+1w", "+1m", "+6m", "+1y"}
	}
	return predict.Something
}
