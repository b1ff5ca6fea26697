package llm

import (
	"sort"
	"strings"
)

// Price is USD per million tokens.
type Price struct {
	Input, Output float64
}

// prices is keyed by model family prefix. Dated and suffixed IDs such as
// "claude-haiku-4-5-20251001" resolve to the longest matching prefix.
var prices = map[string]Price{
	"claude-haiku-4-5":  {1, 5},
	"claude-3-5-haiku":  {0.8, 4},
	"claude-sonnet-4":   {3, 15},
	"claude-3-7-sonnet": {3, 15},
	"claude-opus-4-5":   {5, 25},
	"claude-opus-4":     {15, 75},

	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4o":       {2.5, 10},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1":      {2, 8},
	"gpt-5-nano":   {0.05, 0.4},
	"gpt-5-mini":   {0.25, 2},

	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},

	"google/gemini-2.0-flash": {0.1, 0.4},
	"openai/gpt-4o-mini":      {0.15, 0.6},
}

// pricePrefixes is prices' keys, longest first.
var pricePrefixes = func() []string {
	keys := make([]string, 0, len(prices))
	for k := range prices {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return keys
}()

// PriceFor finds the price of model. ok is false for unknown models.
func PriceFor(model string) (p Price, ok bool) {
	for _, prefix := range pricePrefixes {
		if strings.HasPrefix(model, prefix) {
			return prices[prefix], true
		}
	}
	return Price{}, false
}

// Cost is the USD cost of u at price p.
func (p Price) Cost(u Usage) float64 {
	return (float64(u.InputTokens)*p.Input + float64(u.OutputTokens)*p.Output) / 1e6
}
