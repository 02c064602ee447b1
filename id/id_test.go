package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/orderflow/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"CustomerID", id.NewCustomerID, "cust_"},
		{"OrderID", id.NewOrderID, "ord_"},
		{"ItemID", id.NewItemID, "item_"},
		{"BatchID", id.NewBatchID, "batch_"},
		{"ReportID", id.NewReportID, "rpt_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixOrder)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixOrder {
		t.Errorf("expected prefix %q, got %q", id.PrefixOrder, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"CustomerID", id.NewCustomerID, id.ParseCustomerID},
		{"OrderID", id.NewOrderID, id.ParseOrderID},
		{"ItemID", id.NewItemID, id.ParseItemID},
		{"BatchID", id.NewBatchID, id.ParseBatchID},
		{"ReportID", id.NewReportID, id.ParseReportID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParseCustomerID rejects ord_", id.NewOrderID().String(), id.ParseCustomerID},
		{"ParseOrderID rejects item_", id.NewItemID().String(), id.ParseOrderID},
		{"ParseItemID rejects batch_", id.NewBatchID().String(), id.ParseItemID},
		{"ParseBatchID rejects rpt_", id.NewReportID().String(), id.ParseBatchID},
		{"ParseReportID rejects cust_", id.NewCustomerID().String(), id.ParseReportID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parseFn(tt.input)
			if err == nil {
				t.Errorf("expected error for cross-type parse of %q, got nil", tt.input)
			}
		})
	}
}

func TestParseAny(t *testing.T) {
	ids := []id.ID{
		id.NewCustomerID(),
		id.NewOrderID(),
		id.NewItemID(),
		id.NewBatchID(),
		id.NewReportID(),
	}

	for _, original := range ids {
		parsed, err := id.ParseAny(original.String())
		if err != nil {
			t.Fatalf("ParseAny(%q) failed: %v", original.String(), err)
		}
		if parsed.String() != original.String() {
			t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"garbage", "not-a-typeid"},
		{"missing suffix", "ord_"},
		{"uppercase suffix", "ord_01H2XCEJQTF2NBREXX3VQJHP41"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := id.Parse(tt.input); err == nil {
				t.Errorf("expected error for %q, got nil", tt.input)
			}
		})
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero value should be nil")
	}
	if i.String() != "" {
		t.Errorf("nil ID should render empty, got %q", i.String())
	}
	if i.Prefix() != "" {
		t.Errorf("nil ID should have empty prefix, got %q", i.Prefix())
	}
}

func TestTextMarshaling(t *testing.T) {
	original := id.NewOrderID()

	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var back id.ID
	if err := back.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if back.String() != original.String() {
		t.Errorf("round-trip mismatch: %q != %q", back.String(), original.String())
	}

	var empty id.ID
	if err := empty.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil) failed: %v", err)
	}
	if !empty.IsNil() {
		t.Error("unmarshaling empty text should yield nil ID")
	}
}

func TestSQLValueScan(t *testing.T) {
	original := id.NewCustomerID()

	v, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string value, got %T", v)
	}

	var back id.ID
	if err := back.Scan(s); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if back.String() != original.String() {
		t.Errorf("round-trip mismatch: %q != %q", back.String(), original.String())
	}

	var fromNil id.ID
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if !fromNil.IsNil() {
		t.Error("scanning nil should yield nil ID")
	}
}
