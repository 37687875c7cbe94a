package worker

import (
	"testing"

	"github.com/1983adrian/adimarketplace-sub002/internal/config"
	"github.com/1983adrian/adimarketplace-sub002/internal/provider"
)

func TestStaleCutoffDaysDefault(t *testing.T) {
	var nilConsumer *Consumer
	if got := nilConsumer.staleCutoffDays(); got != 30 {
		t.Fatalf("nil consumer cutoff want 30 got %d", got)
	}

	consumer := NewConsumer(&provider.Container{})
	if got := consumer.staleCutoffDays(); got != 30 {
		t.Fatalf("missing config cutoff want 30 got %d", got)
	}

	consumer = NewConsumer(&provider.Container{
		Config: &config.Config{Returns: config.ReturnsConfig{PendingAutoCancelDays: -5}},
	})
	if got := consumer.staleCutoffDays(); got != 30 {
		t.Fatalf("negative config cutoff want 30 got %d", got)
	}
}

func TestStaleCutoffDaysConfigured(t *testing.T) {
	consumer := NewConsumer(&provider.Container{
		Config: &config.Config{Returns: config.ReturnsConfig{PendingAutoCancelDays: 14}},
	})
	if got := consumer.staleCutoffDays(); got != 14 {
		t.Fatalf("configured cutoff want 14 got %d", got)
	}
}

func TestRegisterNilSafe(t *testing.T) {
	var nilConsumer *Consumer
	nilConsumer.Register(nil)

	consumer := NewConsumer(&provider.Container{})
	consumer.Register(nil)
}
