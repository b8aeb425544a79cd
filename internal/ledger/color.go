package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PastelFallback is returned when the input color is not a well-formed
// #RRGGBB string.
const PastelFallback = "#f3f4f6"

// DefaultPastelRatio is the share of the original color kept when deriving
// badge backgrounds.
const DefaultPastelRatio = 0.7

// Pastelize blends a #RRGGBB color toward white and returns a CSS rgb()
// string. The ratio is the weight of the original color: each channel becomes
// round(channel*ratio + 255*(1-ratio)). Malformed input yields PastelFallback.
func Pastelize(hex string, ratio float64) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return PastelFallback
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", blend(r, ratio), blend(g, ratio), blend(b, ratio))
}

func blend(channel int, ratio float64) int {
	return int(math.Round(float64(channel)*ratio + 255*(1-ratio)))
}

// parseHexColor accepts only the full 6-digit form. Short #RGB colors are
// treated as malformed so every caller goes through the same fallback.
func parseHexColor(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || !strings.HasPrefix(hex, "#") {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	gv, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	bv, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return int(rv), int(gv), int(bv), true
}
