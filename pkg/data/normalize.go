package data

import (
	"math"
	"strings"
)

// Canonical column names.
const (
	ClientID      = "client_id"
	Age           = "age"
	Balance       = "balance"
	TxCount       = "tx_count"
	ClusterLabel  = "cluster_label"
	ProductsOwned = "products_owned"
	RiskScore     = "risk_score"
)

// coercion describes how a canonical column's values are typed.
type coercion int

const (
	asText coercion = iota
	asInt
	asFloat
	asNullableInt
)

// Field is one canonical column and the ordered source names that map to it.
type Field struct {
	Name    string
	Aliases []string
	coerce  coercion
}

// Fields is the alias table. Within a field the first alias present wins;
// the canonical name itself is always tried first.
var Fields = []Field{
	{Name: ClientID, Aliases: []string{"client_id", "CIFs", "CIF"}, coerce: asText},
	{Name: Age, Aliases: []string{"age", "Age"}, coerce: asInt},
	{Name: Balance, Aliases: []string{"balance", "Account_Balance", "Account Balance", "Balance", "account_balance", "avg_balance"}, coerce: asFloat},
	{Name: TxCount, Aliases: []string{"tx_count", "Transaction_Frequency", "Transaction Frequency"}, coerce: asInt},
	{Name: ClusterLabel, Aliases: []string{"cluster_label", "Cluster", "cluster", "segment"}, coerce: asNullableInt},
	{Name: ProductsOwned, Aliases: []string{"products_owned", "products", "Products"}, coerce: asInt},
	{Name: RiskScore, Aliases: []string{"risk_score", "risk", "Risk"}, coerce: asFloat},
}

// Mapping records which source column was chosen for each canonical field.
type Mapping map[string]string

// Resolve picks the source column for every canonical field present in the
// given header list.
func Resolve(columns []string) Mapping {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	m := Mapping{}
	for _, f := range Fields {
		for _, a := range f.Aliases {
			if _, ok := present[a]; ok {
				m[f.Name] = a
				break
			}
		}
	}
	return m
}

// Normalize returns a table exposing canonical column names wherever an
// alias is present. Canonical columns are typed and missing or malformed
// values fall back to 0, except cluster_label which becomes NaN (null).
// Unrecognized columns, and aliases that lost to a higher priority alias,
// pass through unchanged. The input table is not modified.
func Normalize(t *Table) *Table {
	m := Resolve(t.Columns())
	chosen := make(map[string]string, len(m))
	for canon, src := range m {
		chosen[src] = canon
	}

	out := NewTable(t.Len())
	for _, c := range t.cols {
		canon, ok := chosen[c.Name]
		if !ok {
			_ = out.Set(c)
			continue
		}
		_ = out.Set(coerceColumn(c, canon, fieldByName(canon).coerce))
	}
	return out
}

func fieldByName(name string) Field {
	for _, f := range Fields {
		if f.Name == name {
			return f
		}
	}
	return Field{Name: name}
}

func coerceColumn(c *Column, name string, how coercion) *Column {
	n := c.Len()
	out := &Column{Name: name, Source: c.Source, raw: c.raw}
	if how == asText {
		out.Kind = Text
		out.Strs = make([]string, n)
		for i := 0; i < n; i++ {
			out.Strs[i] = identifier(c, i)
		}
		return out
	}
	out.Kind = Numeric
	out.Nums = make([]float64, n)
	for i := 0; i < n; i++ {
		v := numericAt(c, i)
		switch how {
		case asInt:
			if math.IsNaN(v) {
				v = 0
			}
			v = math.Trunc(v)
		case asFloat:
			if math.IsNaN(v) {
				v = 0
			}
		case asNullableInt:
			if !math.IsNaN(v) {
				v = math.Trunc(v)
			}
		}
		out.Nums[i] = v
	}
	return out
}

func numericAt(c *Column, i int) float64 {
	if c.Kind == Numeric {
		return c.Nums[i]
	}
	v, _ := ParseNumber(c.Strs[i])
	return v
}

// identifier renders an id cell from its raw text so long numeric ids keep
// every digit. An integral "101.0" collapses to "101".
func identifier(c *Column, i int) string {
	s := strings.TrimSpace(c.Raw(i))
	if IsMissing(s) {
		return ""
	}
	whole, frac, ok := strings.Cut(s, ".")
	if ok && whole != "" && isDigits(whole) && strings.Trim(frac, "0") == "" {
		return whole
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
