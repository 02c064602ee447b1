package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/orderflow"
	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/order"
	"github.com/xraph/orderflow/store/memory"
	"github.com/xraph/orderflow/types"
)

func newCustomer(tier customer.Tier) *customer.Customer {
	return &customer.Customer{
		Entity: types.NewEntity(),
		ID:     id.NewCustomerID(),
		Name:   "Grace Hopper",
		Email:  "grace@example.com",
		Phone:  "+1 (555) 867-5309",
		Tier:   tier,
	}
}

func newOrder(status order.Status, placedAt time.Time) *order.Order {
	return &order.Order{
		Entity:   types.NewEntity(),
		ID:       id.NewOrderID(),
		Customer: newCustomer(customer.TierStandard),
		Items: []order.Item{
			{ID: id.NewItemID(), Name: "Widget", UnitPrice: types.USD(2500)},
		},
		Total:    types.USD(2500),
		Status:   status,
		PlacedAt: placedAt,
	}
}

func TestCustomerRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	c := newCustomer(customer.TierPremium)
	if err := s.SaveCustomer(ctx, c); err != nil {
		t.Fatalf("SaveCustomer: %v", err)
	}

	got, err := s.GetCustomer(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCustomer: %v", err)
	}
	if got.Email != c.Email || got.Tier != c.Tier {
		t.Errorf("got %+v, want %+v", got, c)
	}

	// Save is an upsert.
	c.Tier = customer.TierStandard
	if err := s.SaveCustomer(ctx, c); err != nil {
		t.Fatalf("SaveCustomer (update): %v", err)
	}
	got, err = s.GetCustomer(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Tier != customer.TierStandard {
		t.Errorf("Tier after update: got %s", got.Tier)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	s := memory.New()
	_, err := s.GetCustomer(context.Background(), id.NewCustomerID())
	if !errors.Is(err, orderflow.ErrCustomerNotFound) {
		t.Errorf("got %v, want ErrCustomerNotFound", err)
	}
	if !errors.Is(err, orderflow.ErrNotFound) {
		t.Errorf("entity sentinel should match the ErrNotFound parent: %v", err)
	}
}

func TestListCustomersTierFilter(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	for i := 0; i < 3; i++ {
		if err := s.SaveCustomer(ctx, newCustomer(customer.TierStandard)); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 2; i++ {
		if err := s.SaveCustomer(ctx, newCustomer(customer.TierPremium)); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		opts customer.ListOpts
		want int
	}{
		{"all", customer.ListOpts{}, 5},
		{"standard", customer.ListOpts{Tier: customer.TierStandard}, 3},
		{"premium", customer.ListOpts{Tier: customer.TierPremium}, 2},
		{"limit", customer.ListOpts{Limit: 2}, 2},
		{"offset past end", customer.ListOpts{Offset: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListCustomers(ctx, tt.opts)
			if err != nil {
				t.Fatalf("ListCustomers: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d customers, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDeleteCustomer(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	c := newCustomer(customer.TierStandard)
	if err := s.SaveCustomer(ctx, c); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCustomer(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	if _, err := s.GetCustomer(ctx, c.ID); !errors.Is(err, orderflow.ErrCustomerNotFound) {
		t.Errorf("customer should be gone: %v", err)
	}
	if err := s.DeleteCustomer(ctx, c.ID); !errors.Is(err, orderflow.ErrCustomerNotFound) {
		t.Errorf("second delete: got %v, want ErrCustomerNotFound", err)
	}
}

func TestOrderRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	o := newOrder(order.StatusReceived, time.Now().UTC())
	if err := s.SaveOrder(ctx, o); err != nil {
		t.Fatalf("SaveOrder: %v", err)
	}

	got, err := s.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.Status != order.StatusReceived || got.Total.Amount != 2500 {
		t.Errorf("got %+v", got)
	}

	o.Status = order.StatusRecorded
	if err := s.SaveOrder(ctx, o); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != order.StatusRecorded {
		t.Errorf("Status after update: got %s", got.Status)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	s := memory.New()
	_, err := s.GetOrder(context.Background(), id.NewOrderID())
	if !errors.Is(err, orderflow.ErrOrderNotFound) {
		t.Errorf("got %v, want ErrOrderNotFound", err)
	}
	if !errors.Is(err, orderflow.ErrNotFound) {
		t.Errorf("entity sentinel should match the ErrNotFound parent: %v", err)
	}
}

func TestListOrdersFilters(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	now := time.Now().UTC()

	inside := newOrder(order.StatusRecorded, now.Add(-1*time.Hour))
	atStart := newOrder(order.StatusRecorded, now.Add(-2*time.Hour))
	pending := newOrder(order.StatusReceived, now.Add(-30*time.Minute))
	old := newOrder(order.StatusRecorded, now.Add(-48*time.Hour))

	for _, o := range []*order.Order{inside, atStart, pending, old} {
		if err := s.SaveOrder(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		opts order.ListOpts
		want int
	}{
		{"all", order.ListOpts{}, 4},
		{"recorded only", order.ListOpts{Status: order.StatusRecorded}, 3},
		{"received only", order.ListOpts{Status: order.StatusReceived}, 1},
		// Window bounds are exclusive: an order placed exactly at the
		// start is out.
		{"window", order.ListOpts{Start: now.Add(-2 * time.Hour), End: now}, 2},
		{"window and status", order.ListOpts{Status: order.StatusRecorded, Start: now.Add(-2 * time.Hour), End: now}, 1},
		{"limit", order.ListOpts{Limit: 3}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListOrders(ctx, tt.opts)
			if err != nil {
				t.Fatalf("ListOrders: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d orders, want %d", len(got), tt.want)
			}
		})
	}
}

func TestListPendingOrders(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	now := time.Now().UTC()

	pending := newOrder(order.StatusReceived, now)
	recorded := newOrder(order.StatusRecorded, now)
	validated := newOrder(order.StatusValidated, now)

	for _, o := range []*order.Order{pending, recorded, validated} {
		if err := s.SaveOrder(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListPendingOrders(ctx)
	if err != nil {
		t.Fatalf("ListPendingOrders: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d pending orders, want 1", len(got))
	}
	if got[0].ID != pending.ID {
		t.Errorf("got order %s, want %s", got[0].ID, pending.ID)
	}
}

func TestPurgeOrders(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	cutoff := time.Now().UTC().Add(-90 * 24 * time.Hour)

	old1 := newOrder(order.StatusRecorded, cutoff.Add(-time.Hour))
	old2 := newOrder(order.StatusRecorded, cutoff.Add(-48*time.Hour))
	atCutoff := newOrder(order.StatusRecorded, cutoff)
	recent := newOrder(order.StatusRecorded, cutoff.Add(time.Hour))

	for _, o := range []*order.Order{old1, old2, atCutoff, recent} {
		if err := s.SaveOrder(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	purged, err := s.PurgeOrders(ctx, cutoff)
	if err != nil {
		t.Fatalf("PurgeOrders: %v", err)
	}
	if purged != 2 {
		t.Errorf("purged: got %d, want 2", purged)
	}

	// Orders placed at or after the cutoff survive.
	for _, o := range []*order.Order{atCutoff, recent} {
		if _, err := s.GetOrder(ctx, o.ID); err != nil {
			t.Errorf("order %s should survive: %v", o.ID, err)
		}
	}
	for _, o := range []*order.Order{old1, old2} {
		if _, err := s.GetOrder(ctx, o.ID); !errors.Is(err, orderflow.ErrOrderNotFound) {
			t.Errorf("order %s should be purged: %v", o.ID, err)
		}
	}
}

func TestLifecycleNoOps(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	if err := s.Migrate(ctx); err != nil {
		t.Errorf("Migrate: %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	c := newCustomer(customer.TierStandard)
	if err := s.SaveCustomer(ctx, c); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := s.SaveCustomer(ctx, c); !errors.Is(err, orderflow.ErrStoreClosed) {
		t.Errorf("SaveCustomer: got %v, want ErrStoreClosed", err)
	}
	if _, err := s.GetCustomer(ctx, c.ID); !errors.Is(err, orderflow.ErrStoreClosed) {
		t.Errorf("GetCustomer: got %v, want ErrStoreClosed", err)
	}
	if _, err := s.ListPendingOrders(ctx); !errors.Is(err, orderflow.ErrStoreClosed) {
		t.Errorf("ListPendingOrders: got %v, want ErrStoreClosed", err)
	}
	if _, err := s.PurgeOrders(ctx, time.Now()); !errors.Is(err, orderflow.ErrStoreClosed) {
		t.Errorf("PurgeOrders: got %v, want ErrStoreClosed", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, orderflow.ErrStoreClosed) {
		t.Errorf("Ping: got %v, want ErrStoreClosed", err)
	}

	// Closing twice is a no-op.
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
