package enums

import "fmt"

// ProductView names a side of the product a design layer or print area belongs to.
type ProductView string

const (
	ProductViewFront ProductView = "front"
	ProductViewBack  ProductView = "back"
	ProductViewLeft  ProductView = "left"
	ProductViewRight ProductView = "right"
	ProductViewTop   ProductView = "top"
)

var validProductViews = []ProductView{
	ProductViewFront,
	ProductViewBack,
	ProductViewLeft,
	ProductViewRight,
	ProductViewTop,
}

// String implements fmt.Stringer.
func (v ProductView) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ProductView.
func (v ProductView) IsValid() bool {
	for _, candidate := range validProductViews {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseProductView converts raw input into a ProductView.
func ParseProductView(value string) (ProductView, error) {
	for _, candidate := range validProductViews {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product view %q", value)
}

// DesignLayerType distinguishes uploaded artwork from typed text.
type DesignLayerType string

const (
	DesignLayerImage DesignLayerType = "image"
	DesignLayerText  DesignLayerType = "text"
)

// IsValid reports whether the value is a known DesignLayerType.
func (t DesignLayerType) IsValid() bool {
	return t == DesignLayerImage || t == DesignLayerText
}
