package extension_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/orderflow"
	"github.com/xraph/orderflow/extension"
	"github.com/xraph/orderflow/store/memory"
)

func TestHealthBeforeRegister(t *testing.T) {
	e := extension.New()
	if err := e.Health(context.Background()); !errors.Is(err, orderflow.ErrStoreNotReady) {
		t.Errorf("got %v, want ErrStoreNotReady", err)
	}
}

func TestHealthWithStore(t *testing.T) {
	e := extension.New(extension.WithStore(memory.New()))
	if err := e.Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}
}
