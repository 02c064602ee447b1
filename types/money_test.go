package types

import (
	"encoding/json"
	"testing"
)

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		amount   int64
		currency string
		display  string
	}{
		{"USD", USD(4900), 4900, "usd", "$49.00"},
		{"EUR", EUR(19900), 19900, "eur", "€199.00"},
		{"GBP", GBP(9900), 9900, "gbp", "£99.00"},
		{"JPY", JPY(100), 100, "jpy", "¥100"},
		{"Zero USD", Zero("USD"), 0, "usd", "$0.00"},
		{"Zero EUR", Zero("EUR"), 0, "eur", "€0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.money.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", tt.money.Amount, tt.amount)
			}
			if tt.money.Currency != tt.currency {
				t.Errorf("Currency: got %s, want %s", tt.money.Currency, tt.currency)
			}
			if tt.money.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.money.String(), tt.display)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return USD(100).Add(USD(200)) }, USD(300)},
		{"Subtract", func() Money { return USD(500).Subtract(USD(200)) }, USD(300)},
		{"Multiply", func() Money { return USD(100).Multiply(3) }, USD(300)},
		{"Divide", func() Money { return USD(900).Divide(3) }, USD(300)},
		{"Negate", func() Money { return USD(100).Negate() }, USD(-100)},
		{"Abs positive", func() Money { return USD(100).Abs() }, USD(100)},
		{"Abs negative", func() Money { return USD(-100).Abs() }, USD(100)},
		{"Complex", func() Money {
			return USD(1000).Add(USD(500)).Multiply(2).Subtract(USD(1000))
		}, USD(2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneyPercent(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		pct      int64
		expected Money
	}{
		{"Ten percent", USD(10000), 10, USD(1000)},
		{"Eight percent", USD(9000), 8, USD(720)},
		{"Zero percent", USD(10000), 0, USD(0)},
		{"Hundred percent", USD(10000), 100, USD(10000)},
		{"Truncates toward zero", USD(99), 10, USD(9)},
		{"Sub-cent truncates to zero", USD(9), 10, USD(0)},
		{"Negative amount", USD(-1000), 10, USD(-100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.money.Percent(tt.pct); !got.Equal(tt.expected) {
				t.Errorf("Percent(%d): got %v, want %v", tt.pct, got, tt.expected)
			}
		})
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for currency mismatch")
		}
	}()

	// This should panic
	_ = USD(100).Add(EUR(100))
}

func TestMoneyDivisionByZero(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for division by zero")
		}
	}()

	// This should panic
	_ = USD(100).Divide(0)
}

func TestMoneyComparison(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		less    bool
		greater bool
		equal   bool
	}{
		{"Equal", USD(100), USD(100), false, false, true},
		{"Less", USD(50), USD(100), true, false, false},
		{"Greater", USD(200), USD(100), false, true, false},
		{"Zero equal", USD(0), Zero("usd"), false, false, true},
		{"Negative less", USD(-100), USD(100), true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LessThan(tt.b); got != tt.less {
				t.Errorf("LessThan: got %v, want %v", got, tt.less)
			}
			if got := tt.a.GreaterThan(tt.b); got != tt.greater {
				t.Errorf("GreaterThan: got %v, want %v", got, tt.greater)
			}
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal: got %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestMoneyMinMax(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Money
		min, max Money
	}{
		{"First smaller", USD(50), USD(100), USD(50), USD(100)},
		{"Second smaller", USD(100), USD(50), USD(50), USD(100)},
		{"Equal", USD(100), USD(100), USD(100), USD(100)},
		{"Negative", USD(-50), USD(50), USD(-50), USD(50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if minVal := tt.a.Min(tt.b); !minVal.Equal(tt.min) {
				t.Errorf("Min: got %v, want %v", minVal, tt.min)
			}
			if maxVal := tt.a.Max(tt.b); !maxVal.Equal(tt.max) {
				t.Errorf("Max: got %v, want %v", maxVal, tt.max)
			}
		})
	}
}

func TestMoneyPredicates(t *testing.T) {
	tests := []struct {
		name       string
		money      Money
		isZero     bool
		isPositive bool
		isNegative bool
	}{
		{"Zero", USD(0), true, false, false},
		{"Positive", USD(100), false, true, false},
		{"Negative", USD(-100), false, false, true},
		{"Large positive", USD(999999999), false, true, false},
		{"Large negative", USD(-999999999), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.money.IsZero(); got != tt.isZero {
				t.Errorf("IsZero: got %v, want %v", got, tt.isZero)
			}
			if got := tt.money.IsPositive(); got != tt.isPositive {
				t.Errorf("IsPositive: got %v, want %v", got, tt.isPositive)
			}
			if got := tt.money.IsNegative(); got != tt.isNegative {
				t.Errorf("IsNegative: got %v, want %v", got, tt.isNegative)
			}
		})
	}
}

func TestMoneyFormatMajor(t *testing.T) {
	tests := []struct {
		money    Money
		expected string
	}{
		{USD(4900), "49.00"},
		{USD(100), "1.00"},
		{USD(1), "0.01"},
		{USD(0), "0.00"},
		{USD(-4900), "-49.00"},
		{USD(-1), "-0.01"},
		{EUR(9999), "99.99"},
		{JPY(100), "100"},     // No decimals
		{JPY(12345), "12345"}, // No decimals
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.money.FormatMajor(); got != tt.expected {
				t.Errorf("FormatMajor: got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	m := USD(4900)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	expected := `{"amount":4900,"currency":"usd","display":"$49.00"}`
	if string(data) != expected {
		t.Errorf("JSON: got %s, want %s", string(data), expected)
	}

	var back Money
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("Round trip: got %v, want %v", back, m)
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		values   []Money
		expected Money
	}{
		{"Empty", nil, Zero("usd")},
		{"Single", []Money{USD(100)}, USD(100)},
		{"Multiple", []Money{USD(100), USD(200), USD(300)}, USD(600)},
		{"With negatives", []Money{USD(500), USD(-200)}, USD(300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sum(tt.values...); !got.Equal(tt.expected) {
				t.Errorf("Sum: got %v, want %v", got, tt.expected)
			}
		})
	}
}
