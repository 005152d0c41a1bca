package clipper

import (
	"math"
	"strconv"
	"strings"
)

// Line is one ingredient line split into quantity, unit and name.
type Line struct {
	Raw      string `json:"raw"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
	Name     string `json:"name"`
}

// maxQuantity is the largest amount a line may carry; larger numbers are
// ignored and the line falls back to quantity 1.
const maxQuantity = math.MaxInt32

var unitAliases = map[string]string{
	"g": "g", "gr": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg", "kilograms": "kg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"pc": "pcs", "pcs": "pcs", "piece": "pcs", "pieces": "pcs",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"cup": "cup", "cups": "cup",
}

// ParseLine splits "200 g flour" into 200, "g", "flour". Lines without a
// leading number, or with one above maxQuantity, get quantity 1; fractional
// amounts round up. It reports false when no name is left.
func ParseLine(raw string) (Line, bool) {
	fields := strings.Fields(raw)
	line := Line{Raw: strings.Join(fields, " "), Quantity: 1}

	// "200g" reads as "200 g"
	if len(fields) > 0 {
		if num, suffix := splitNumeric(fields[0]); num != "" && suffix != "" {
			fields = append([]string{num, suffix}, fields[1:]...)
		}
	}

	var qty float64
	n := 0
	for n < len(fields) && n < 2 {
		v, ok := parseNumber(fields[n])
		if !ok {
			break
		}
		qty += v
		n++
	}
	fields = fields[n:]

	if n > 0 && len(fields) > 1 {
		if unit, ok := unitAliases[strings.ToLower(strings.TrimRight(fields[0], "."))]; ok {
			line.Unit = unit
			fields = fields[1:]
		}
	}
	if len(fields) > 1 && strings.EqualFold(fields[0], "of") {
		fields = fields[1:]
	}

	if qty > 0 && qty <= maxQuantity {
		line.Quantity = int(math.Ceil(qty))
	}
	line.Name = strings.Trim(strings.Join(fields, " "), " ,-")
	return line, line.Name != ""
}

func splitNumeric(tok string) (string, string) {
	i := strings.IndexFunc(tok, func(r rune) bool { return !strings.ContainsRune("0123456789/.,", r) })
	if i == -1 {
		return tok, ""
	}
	return tok[:i], tok[i:]
}

func parseNumber(tok string) (float64, bool) {
	if tok == "" || tok[0] < '0' || tok[0] > '9' {
		return 0, false
	}
	if num, suffix := splitNumeric(tok); suffix != "" || num != tok {
		return 0, false
	}
	if a, b, ok := strings.Cut(tok, "/"); ok {
		x, err1 := strconv.Atoi(a)
		y, err2 := strconv.Atoi(b)
		if err1 != nil || err2 != nil || y == 0 {
			return 0, false
		}
		return float64(x) / float64(y), true
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
