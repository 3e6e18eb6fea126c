package lifx

import "go.yhsif.com/lifxlan"

type LIFXType uint16

const (
	Unknown LIFXType = 0
	Light   LIFXType = 100
	Switch  LIFXType = 200
)

// getType classifies a device from its hardware version. Relay products are
// switches and cannot mirror a color.
func getType(hw *lifxlan.HardwareVersion) (LIFXType, *lifxlan.Product) {
	if hw == nil {
		return Unknown, nil
	}

	if hw.VendorID != 1 {
		return Unknown, nil
	}

	key := lifxlan.ProductMapKey(hw.VendorID, hw.ProductID)
	product := lifxlan.ProductMap[key]

	hasRelays := product.Features.Relays
	if hasRelays != nil && *hasRelays {
		return Switch, &product
	}

	// Tiles, strips and candles all take a single color, which is all a
	// mirror needs.
	return Light, &product
}
