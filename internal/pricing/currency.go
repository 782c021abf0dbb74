package pricing

// CurrencySymbol maps one symbol that may occur in raw price text to its
// three-letter currency code.
type CurrencySymbol struct {
	Symbol string
	Code   string
}

// DefaultCurrency is assumed when a price is found but no known symbol
// occurs in the text.
const DefaultCurrency = "USD"

// DefaultCurrencyTable returns the stock ordered symbol table. Order is
// significant: multi-character symbols that contain shorter ones must come
// first, otherwise "C$ 19.99" would be classified as USD.
func DefaultCurrencyTable() []CurrencySymbol {
	return []CurrencySymbol{
		{Symbol: "C$", Code: "CAD"},
		{Symbol: "A$", Code: "AUD"},
		{Symbol: "$", Code: "USD"},
		{Symbol: "€", Code: "EUR"},
		{Symbol: "£", Code: "GBP"},
		{Symbol: "¥", Code: "JPY"},
		{Symbol: "₹", Code: "INR"},
		{Symbol: "CHF", Code: "CHF"},
		{Symbol: "kr", Code: "SEK"},
	}
}

// ExchangeRates is a static table of approximate USD conversion rates keyed
// by currency code. It is deliberately not authoritative; it only exists to
// annotate reports with a rough USD equivalent for non-USD observations.
type ExchangeRates map[string]float64

// DefaultExchangeRates returns the stock static rate table (value of one
// unit of the currency in USD).
func DefaultExchangeRates() ExchangeRates {
	return ExchangeRates{
		"USD": 1,
		"EUR": 1.09,
		"GBP": 1.27,
		"JPY": 0.0067,
		"INR": 0.012,
		"CAD": 0.73,
		"AUD": 0.66,
		"CHF": 1.12,
		"SEK": 0.095,
	}
}

// ToUSD converts amount from the given currency using the static table.
// The second return value is false when the currency is unknown.
func (r ExchangeRates) ToUSD(amount float64, currency string) (float64, bool) {
	rate, ok := r[currency]
	if !ok {
		return 0, false
	}

	return amount * rate, true
}
