package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
)

// DesignLayer is one placed image or text element of a customer's design.
type DesignLayer struct {
	ID       string                `json:"id"`
	Type     enums.DesignLayerType `json:"type"`
	Content  string                `json:"content"`
	X        float64               `json:"x"`
	Y        float64               `json:"y"`
	Width    float64               `json:"width"`
	Height   float64               `json:"height"`
	Rotation float64               `json:"rotation"`
	FlipX    bool                  `json:"flipX"`
	FlipY    bool                  `json:"flipY"`
	View     enums.ProductView     `json:"view"`
	Color    *string               `json:"color,omitempty"`
}

// DesignSnapshot is the ordered layer list frozen onto an order item.
type DesignSnapshot []DesignLayer

// Value marshals the snapshot into JSON for Postgres.
func (d DesignSnapshot) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSONB into the snapshot.
func (d *DesignSnapshot) Scan(value interface{}) error {
	if value == nil {
		*d = DesignSnapshot{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	result := DesignSnapshot{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*d = result
	return nil
}

// TextLayers returns the text layers in placement order.
func (d DesignSnapshot) TextLayers() []DesignLayer {
	var out []DesignLayer
	for _, layer := range d {
		if layer.Type == enums.DesignLayerText {
			out = append(out, layer)
		}
	}
	return out
}
