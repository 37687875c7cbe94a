package service

import "testing"

func TestTrackingRoundTripAllCarriers(t *testing.T) {
	for _, carrier := range Carriers() {
		stored := EncodeTracking(carrier.Code, "AWB123456")
		code, number := DecodeTracking(stored)
		if code != carrier.Code {
			t.Fatalf("carrier %s: decoded code %q", carrier.Code, code)
		}
		if number != "AWB123456" {
			t.Fatalf("carrier %s: decoded number %q", carrier.Code, number)
		}
	}
}

func TestEncodeTrackingBareNumber(t *testing.T) {
	if got := EncodeTracking("", "AWB99"); got != "AWB99" {
		t.Fatalf("expected bare number, got %q", got)
	}
	if got := EncodeTracking("fan_courier", "  AWB99  "); got != "fan_courier:AWB99" {
		t.Fatalf("unexpected encoding: %q", got)
	}
	if got := EncodeTracking("fan_courier", ""); got != "" {
		t.Fatalf("expected empty for missing number, got %q", got)
	}
}

func TestDecodeTrackingEdgeCases(t *testing.T) {
	cases := []struct {
		stored  string
		carrier string
		number  string
	}{
		{"AWB123", "", "AWB123"},
		{"sameday:123", "sameday", "123"},
		{"unknown_co:123", "", "unknown_co:123"},
		{":123", "", ":123"},
		{"dpd:", "", "dpd:"},
		{"", "", ""},
		{"posta_romana:RR12:34", "posta_romana", "RR12:34"},
	}
	for _, tc := range cases {
		carrier, number := DecodeTracking(tc.stored)
		if carrier != tc.carrier || number != tc.number {
			t.Fatalf("decode %q: got (%q, %q), want (%q, %q)", tc.stored, carrier, number, tc.carrier, tc.number)
		}
	}
}

func TestCarrierByCode(t *testing.T) {
	if _, ok := CarrierByCode("fan_courier"); !ok {
		t.Fatalf("fan_courier should resolve")
	}
	if _, ok := CarrierByCode(" GLS "); !ok {
		t.Fatalf("lookup should normalize case and spacing")
	}
	if _, ok := CarrierByCode("ups"); ok {
		t.Fatalf("ups is not in the carrier list")
	}
}
