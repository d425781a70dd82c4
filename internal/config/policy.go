package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PricingPolicy holds the business constants invoice rollups depend on.
// They are deliberately file-configured rather than hardcoded; the defaults
// match the storefront's historical 8% tax and $500 flat shipping waived
// above $50,000.
type PricingPolicy struct {
	TaxRate                    float64 `yaml:"tax_rate"`
	FreeShippingThresholdCents int64   `yaml:"free_shipping_threshold_cents"`
	ShippingFeeCents           int64   `yaml:"shipping_fee_cents"`
}

// DefaultPricingPolicy returns the built-in policy used when no file is
// configured.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:                    0.08,
		FreeShippingThresholdCents: 50_000_00,
		ShippingFeeCents:           500_00,
	}
}

// LoadPricingPolicy reads the YAML policy file at path. An empty path yields
// the defaults; a present but unreadable or invalid file is an error so a
// typo'd policy never silently falls back.
func LoadPricingPolicy(path string) (PricingPolicy, error) {
	p := DefaultPricingPolicy()
	if path == "" {
		return p, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read pricing policy: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse pricing policy: %w", err)
	}

	if p.TaxRate < 0 || p.TaxRate >= 1 {
		return p, fmt.Errorf("pricing policy: tax_rate %v out of range", p.TaxRate)
	}
	if p.FreeShippingThresholdCents < 0 || p.ShippingFeeCents < 0 {
		return p, fmt.Errorf("pricing policy: negative shipping values")
	}
	return p, nil
}
