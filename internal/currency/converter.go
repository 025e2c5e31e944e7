package currency

import "fmt"

// RateTable maps "FROM_TO" pair keys (ISO 4217 codes) to exchange rates.
// A table containing "USD_CNY" can also serve CNY->USD conversions via the
// inverted rate.
type RateTable map[string]float64

// Amount is a monetary value in a concrete currency.
type Amount struct {
	Value    float64
	Currency string
}

// Conversion is the result of converting one amount between currencies.
type Conversion struct {
	OriginalAmount  float64
	ConvertedAmount float64
	ExchangeRate    float64
	From            string
	To              string
}

// MissingRateError is returned when neither a direct nor an inverse rate
// exists for a currency pair.
type MissingRateError struct {
	From string
	To   string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("currency: no exchange rate for %s->%s", e.From, e.To)
}

// Rate resolves the exchange rate for a pair. Same currency resolves to 1.
// A missing direct rate falls back to the inverted reverse rate.
func Rate(from, to string, table RateTable) (float64, error) {
	if from == to {
		return 1, nil
	}
	if rate, ok := table[pairKey(from, to)]; ok {
		return rate, nil
	}
	if reverse, ok := table[pairKey(to, from)]; ok && reverse != 0 {
		return 1 / reverse, nil
	}
	return 0, &MissingRateError{From: from, To: to}
}

// Convert converts an amount between currencies using the table.
func Convert(amount float64, from, to string, table RateTable) (Conversion, error) {
	rate, err := Rate(from, to, table)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{
		OriginalAmount:  amount,
		ConvertedAmount: amount * rate,
		ExchangeRate:    rate,
		From:            from,
		To:              to,
	}, nil
}

// ConvertAll converts a batch of amounts to a single target currency.
// The first unresolvable currency aborts the batch.
func ConvertAll(amounts []Amount, target string, table RateTable) ([]Conversion, error) {
	results := make([]Conversion, 0, len(amounts))
	for _, a := range amounts {
		conv, err := Convert(a.Value, a.Currency, target, table)
		if err != nil {
			return nil, err
		}
		results = append(results, conv)
	}
	return results, nil
}

func pairKey(from, to string) string { return from + "_" + to }
