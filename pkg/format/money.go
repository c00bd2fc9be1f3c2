// Package format holds the pt-BR currency and date converters used by
// receipts and closing reports. Nothing here returns an error: invalid
// input degrades to zero or to an empty/raw string.
package format

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const currencySymbol = "R$"

// Amount coerces v into a decimal. nil, non-numeric strings, NaN, Inf and
// unsupported types all become zero.
func Amount(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case decimal.NullDecimal:
		if !x.Valid {
			return decimal.Zero
		}
		return x.Decimal
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.RequireFromString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Pointer:
		if rv.IsNil() {
			return decimal.Zero
		}
		return Amount(rv.Elem().Interface())
	}
	return decimal.Zero
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Money renders v as Brazilian Real, e.g. "R$ 1.234,56" or "-R$ 5,00".
func Money(v any) string {
	d := Amount(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + currencySymbol + " " + groupBR(d.StringFixed(2))
}

// groupBR turns "1234567.89" into "1.234.567,89" without going through
// float64, so large amounts keep every digit.
func groupBR(fixed string) string {
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.Grow(len(fixed) + len(intPart)/3)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// Fixed renders v with two decimals and a dot separator ("12.50"), the
// way the manual payment receipt prints values.
func Fixed(v any) string {
	return Amount(v).StringFixed(2)
}
