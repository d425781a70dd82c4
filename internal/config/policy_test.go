package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPricingPolicyDefaults(t *testing.T) {
	p, err := LoadPricingPolicy("")
	if err != nil {
		t.Fatalf("empty path must yield defaults, got %v", err)
	}
	if p.TaxRate != 0.08 || p.FreeShippingThresholdCents != 50_000_00 || p.ShippingFeeCents != 500_00 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestLoadPricingPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	data := "tax_rate: 0.1\nfree_shipping_threshold_cents: 1000000\nshipping_fee_cents: 25000\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write temp policy: %v", err)
	}

	p, err := LoadPricingPolicy(path)
	if err != nil {
		t.Fatalf("LoadPricingPolicy: %v", err)
	}
	if p.TaxRate != 0.1 || p.FreeShippingThresholdCents != 1000000 || p.ShippingFeeCents != 25000 {
		t.Fatalf("file values not applied: %+v", p)
	}
}

func TestLoadPricingPolicyRejectsBadTaxRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("tax_rate: 1.5\n"), 0o644); err != nil {
		t.Fatalf("write temp policy: %v", err)
	}
	if _, err := LoadPricingPolicy(path); err == nil {
		t.Fatalf("tax_rate 1.5 must be rejected")
	}
}

func TestLoadPricingPolicyMissingFileIsAnError(t *testing.T) {
	if _, err := LoadPricingPolicy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("a configured but missing policy file must not silently fall back")
	}
}
