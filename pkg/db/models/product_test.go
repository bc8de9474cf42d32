package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductOrderable(t *testing.T) {
	info := Product{Price: decimal.Zero}
	if info.Orderable() {
		t.Fatal("expected zero price without options to be informational")
	}

	tiered := Product{Price: decimal.Zero, PricingOptions: []PricingOption{{Weight: "5g", Price: decimal.NewFromInt(40)}}}
	if !tiered.Orderable() {
		t.Fatal("expected product with pricing options to be orderable")
	}

	priced := Product{Price: decimal.RequireFromString("12.5")}
	if !priced.Orderable() {
		t.Fatal("expected priced product to be orderable")
	}
}
