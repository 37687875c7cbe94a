package service

import "strings"

// Carrier describes a shipping carrier selectable for return tracking.
type Carrier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// carriers is the fixed list offered to buyers. "other" covers anything else.
var carriers = []Carrier{
	{Code: "fan_courier", Name: "FAN Courier"},
	{Code: "cargus", Name: "Cargus"},
	{Code: "sameday", Name: "Sameday"},
	{Code: "dpd", Name: "DPD"},
	{Code: "gls", Name: "GLS"},
	{Code: "posta_romana", Name: "Posta Romana"},
	{Code: "other", Name: "Other"},
}

// Carriers returns the selectable carrier list.
func Carriers() []Carrier {
	out := make([]Carrier, len(carriers))
	copy(out, carriers)
	return out
}

// CarrierByCode resolves a carrier code for display.
func CarrierByCode(code string) (Carrier, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, c := range carriers {
		if c.Code == code {
			return c, true
		}
	}
	return Carrier{}, false
}

// EncodeTracking packs a carrier code and a tracking number into the stored
// form. Without a carrier the bare number is stored.
func EncodeTracking(carrierCode, number string) string {
	carrierCode = strings.ToLower(strings.TrimSpace(carrierCode))
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	if carrierCode == "" {
		return number
	}
	return carrierCode + ":" + number
}

// DecodeTracking splits a stored tracking value on the first colon. A value
// without a colon, or with a prefix that is not a known carrier, decodes as a
// bare number.
func DecodeTracking(stored string) (carrierCode, number string) {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return "", ""
	}
	idx := strings.Index(stored, ":")
	if idx <= 0 || idx == len(stored)-1 {
		return "", stored
	}
	prefix := strings.ToLower(stored[:idx])
	if _, ok := CarrierByCode(prefix); !ok {
		return "", stored
	}
	return prefix, stored[idx+1:]
}
