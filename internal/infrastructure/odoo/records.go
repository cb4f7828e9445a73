package odoo

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Odoo devuelve false para cualquier campo vacío; estos helpers normalizan esos valores sueltos.

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case int:
		return strconv.Itoa(t)
	case []byte:
		return string(t)
	}
	return ""
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(math.Floor(t))
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(t))
		return n
	}
	return 0
}

func asDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}

// many2one [id, "nombre"] → ("id", "nombre").
func many2one(v any) (string, string) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return "", ""
	}
	id := asString(arr[0])
	if len(arr) < 2 {
		return id, ""
	}
	return id, asString(arr[1])
}

// firstID primer id de un many2many ([3, 8, ...]).
func firstID(v any) string {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return ""
	}
	return asString(arr[0])
}

// asTime fechas de Odoo: "2006-01-02 15:04:05" (UTC) o "2006-01-02".
func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.DateTime, time.DateOnly} {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

func asRecords(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
