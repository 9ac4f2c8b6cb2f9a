package types

import (
	"time"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
)

// ShippingInfo is the delivery destination captured at checkout.
type ShippingInfo struct {
	RecipientName    string  `json:"recipientName" validate:"required"`
	Phone            string  `json:"phone" validate:"required"`
	ZipCode          string  `json:"zipCode"`
	Address          string  `json:"address" validate:"required"`
	AddressDetail    string  `json:"addressDetail"`
	OrganizationName *string `json:"organizationName,omitempty"`
	Memo             *string `json:"memo,omitempty"`
}

// TrackingInfo records the parcel handed to a carrier.
type TrackingInfo struct {
	Carrier        enums.Carrier `json:"carrier"`
	TrackingNumber string        `json:"trackingNumber"`
	ShippedAt      time.Time     `json:"shippedAt"`
}
