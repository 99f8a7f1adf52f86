package product

// Palette holds the placeholder swatch colors, in the order the web client
// shipped them. The swatch is display-only and never persisted.
var Palette = []string{
	"rose",
	"amber",
	"lime",
	"emerald",
	"cyan",
	"sky",
	"indigo",
	"violet",
}

// Swatch deterministically picks a palette color for value (a product ID or
// name). The hash is the classic h = h*31 + c with 32-bit wraparound, kept
// bit-compatible with the web client so both render the same colors.
func Swatch(value string) string {
	var h int32
	for _, c := range []byte(value) {
		h = h<<5 - h + int32(c)
	}

	// int64 widening: negating math.MinInt32 overflows int32.
	idx := int64(h)
	if idx < 0 {
		idx = -idx
	}
	return Palette[idx%int64(len(Palette))]
}
