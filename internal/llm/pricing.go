package llm

import "strings"

// modelPrice is USD per million tokens.
type modelPrice struct {
	Input  float64
	Output float64
}

// Prices are matched by prefix so dated model snapshots
// (e.g. claude-sonnet-4-20250514) resolve without their own entry.
// Longest prefix wins.
var priceTable = map[string]modelPrice{
	"claude-opus-4":     {Input: 15.00, Output: 75.00},
	"claude-sonnet-4":   {Input: 3.00, Output: 15.00},
	"claude-3-7-sonnet": {Input: 3.00, Output: 15.00},
	"claude-3-5-haiku":  {Input: 0.80, Output: 4.00},

	"gpt-4.1-mini": {Input: 0.40, Output: 1.60},
	"gpt-4.1-nano": {Input: 0.10, Output: 0.40},
	"gpt-4.1":      {Input: 2.00, Output: 8.00},
	"gpt-4o-mini":  {Input: 0.15, Output: 0.60},
	"gpt-4o":       {Input: 2.50, Output: 10.00},
	"o4-mini":      {Input: 1.10, Output: 4.40},
	"o3":           {Input: 2.00, Output: 8.00},
}

// Cost computes the monetary cost of a call from the static price table.
// Unknown models cost zero; callers log a warning in that case via PriceKnown.
func Cost(model string, inputTokens, outputTokens int) float64 {
	price, ok := lookupPrice(model)
	if !ok {
		return 0
	}
	return float64(inputTokens)/1_000_000*price.Input +
		float64(outputTokens)/1_000_000*price.Output
}

// PriceKnown reports whether the model has an entry in the price table.
func PriceKnown(model string) bool {
	_, ok := lookupPrice(model)
	return ok
}

func lookupPrice(model string) (modelPrice, bool) {
	var best string
	for prefix := range priceTable {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return modelPrice{}, false
	}
	return priceTable[best], true
}
