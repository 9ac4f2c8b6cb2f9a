package types

import "github.com/angelmondragon/capstudio-backend/pkg/enums"

// ProductImage is a rendered product photo for one colour and view.
type ProductImage struct {
	ColorID string            `json:"colorId" validate:"required"`
	View    enums.ProductView `json:"view" validate:"required"`
	URL     string            `json:"url" validate:"required"`
}

// ProductVariant is a colour option and the sizes it ships in.
type ProductVariant struct {
	ID    string   `json:"id" validate:"required"`
	Label string   `json:"label" validate:"required"`
	Hex   string   `json:"hex" validate:"required"`
	Sizes []string `json:"sizes"`
}

// ReviewImage is a photo attached to a review.
type ReviewImage struct {
	URL     string  `json:"url" validate:"required"`
	Caption *string `json:"caption,omitempty"`
}
