package enums

import "fmt"

// Carrier identifies a parcel delivery company.
type Carrier string

const (
	CarrierCJ     Carrier = "cj"
	CarrierHanjin Carrier = "hanjin"
	CarrierLogen  Carrier = "logen"
	CarrierLotte  Carrier = "lotte"
	CarrierPost   Carrier = "post"
)

var validCarriers = []Carrier{
	CarrierCJ,
	CarrierHanjin,
	CarrierLogen,
	CarrierLotte,
	CarrierPost,
}

var carrierLabels = map[Carrier]string{
	CarrierCJ:     "CJ대한통운",
	CarrierHanjin: "한진택배",
	CarrierLogen:  "로젠택배",
	CarrierLotte:  "롯데택배",
	CarrierPost:   "우체국택배",
}

// String implements fmt.Stringer.
func (c Carrier) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Carrier.
func (c Carrier) IsValid() bool {
	for _, candidate := range validCarriers {
		if candidate == c {
			return true
		}
	}
	return false
}

// Label returns the display name of the carrier.
func (c Carrier) Label() string {
	if label, ok := carrierLabels[c]; ok {
		return label
	}
	return "알 수 없음"
}

// ParseCarrier converts raw input into a Carrier.
func ParseCarrier(value string) (Carrier, error) {
	for _, candidate := range validCarriers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid carrier %q", value)
}
