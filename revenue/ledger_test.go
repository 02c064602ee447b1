package revenue_test

import (
	"errors"
	"testing"
	"time"

	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/order"
	"github.com/xraph/orderflow/revenue"
	"github.com/xraph/orderflow/types"
)

func newOrder(total types.Money, placedAt time.Time) *order.Order {
	return &order.Order{
		Entity:   types.NewEntity(),
		ID:       id.NewOrderID(),
		Total:    total,
		Status:   order.StatusPriced,
		PlacedAt: placedAt,
	}
}

func TestRecordAccumulates(t *testing.T) {
	l := revenue.NewLedger("usd")
	now := time.Now().UTC()

	if err := l.Record(newOrder(types.USD(10000), now)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := l.Record(newOrder(types.USD(2500), now)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if got := l.Count(); got != 2 {
		t.Errorf("Count: got %d, want 2", got)
	}
	if got := l.Total(); !got.Equal(types.USD(12500)) {
		t.Errorf("Total: got %v, want %v", got, types.USD(12500))
	}
}

func TestRecordDuplicateRejected(t *testing.T) {
	l := revenue.NewLedger("usd")
	o := newOrder(types.USD(10000), time.Now().UTC())

	if err := l.Record(o); err != nil {
		t.Fatalf("first Record: %v", err)
	}

	err := l.Record(o)
	if !errors.Is(err, revenue.ErrDuplicate) {
		t.Fatalf("second Record: got %v, want ErrDuplicate", err)
	}

	// The rejection must leave the ledger untouched.
	if got := l.Count(); got != 1 {
		t.Errorf("Count after duplicate: got %d, want 1", got)
	}
	if got := l.Total(); !got.Equal(types.USD(10000)) {
		t.Errorf("Total after duplicate: got %v, want %v", got, types.USD(10000))
	}
}

func TestContains(t *testing.T) {
	l := revenue.NewLedger("usd")
	o := newOrder(types.USD(500), time.Now().UTC())

	if l.Contains(o.ID.String()) {
		t.Error("empty ledger should not contain the order")
	}
	if err := l.Record(o); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !l.Contains(o.ID.String()) {
		t.Error("ledger should contain the recorded order")
	}
}

func TestBetweenBoundsAreExclusive(t *testing.T) {
	l := revenue.NewLedger("usd")
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	inside := newOrder(types.USD(1000), start.Add(12*time.Hour))
	atStart := newOrder(types.USD(2000), start)
	atEnd := newOrder(types.USD(4000), end)
	before := newOrder(types.USD(8000), start.Add(-time.Hour))
	after := newOrder(types.USD(16000), end.Add(time.Hour))

	for _, o := range []*order.Order{inside, atStart, atEnd, before, after} {
		if err := l.Record(o); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	// Only the strictly-inside order counts; both bounds are excluded.
	if got := l.Between(start, end); !got.Equal(types.USD(1000)) {
		t.Errorf("Between: got %v, want %v", got, types.USD(1000))
	}
}

func TestBetweenEmptyLedger(t *testing.T) {
	l := revenue.NewLedger("usd")
	got := l.Between(time.Now().Add(-time.Hour), time.Now())
	if !got.Equal(types.Zero("usd")) {
		t.Errorf("Between on empty ledger: got %v, want zero", got)
	}
}

func TestOrdersSnapshot(t *testing.T) {
	l := revenue.NewLedger("usd")
	if err := l.Record(newOrder(types.USD(100), time.Now().UTC())); err != nil {
		t.Fatalf("Record: %v", err)
	}

	snap := l.Orders()
	if len(snap) != 1 {
		t.Fatalf("Orders: got %d, want 1", len(snap))
	}

	// Mutating the returned slice must not affect the ledger.
	snap[0] = nil
	if got := l.Orders(); got[0] == nil {
		t.Error("snapshot mutation leaked into the ledger")
	}
}

func TestStats(t *testing.T) {
	l := revenue.NewLedger("usd")

	empty := l.Stats()
	if empty.Orders != 0 {
		t.Errorf("empty Orders: got %d, want 0", empty.Orders)
	}
	if !empty.Average.Equal(types.Zero("usd")) {
		t.Errorf("empty Average: got %v, want zero", empty.Average)
	}

	early := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if err := l.Record(newOrder(types.USD(1000), early)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := l.Record(newOrder(types.USD(3000), late)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	s := l.Stats()
	if s.Orders != 2 {
		t.Errorf("Orders: got %d, want 2", s.Orders)
	}
	if !s.Revenue.Equal(types.USD(4000)) {
		t.Errorf("Revenue: got %v, want %v", s.Revenue, types.USD(4000))
	}
	if !s.Average.Equal(types.USD(2000)) {
		t.Errorf("Average: got %v, want %v", s.Average, types.USD(2000))
	}
	if !s.Earliest.Equal(early) {
		t.Errorf("Earliest: got %v, want %v", s.Earliest, early)
	}
	if !s.Latest.Equal(late) {
		t.Errorf("Latest: got %v, want %v", s.Latest, late)
	}
}
