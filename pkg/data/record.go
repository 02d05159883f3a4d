package data

import (
	"errors"
	"math"
	"sort"
)

// ClientRecord is one client row as persisted by the store.
type ClientRecord struct {
	ClientID      string            `json:"client_id"`
	Age           int               `json:"age"`
	Balance       float64           `json:"balance"`
	TxCount       int               `json:"tx_count"`
	ClusterLabel  *int              `json:"cluster_label"`
	RawAttributes map[string]string `json:"raw_attributes,omitempty"`
}

var ErrNoClientID = errors.New("data: table has no client id column")

// Records reads the canonical columns of a normalized table. Optional
// canonical columns that are absent read as zero; a missing cluster_label
// reads as nil. Every source column is kept in RawAttributes under its
// original header.
func Records(t *Table) ([]ClientRecord, error) {
	ids, ok := t.Column(ClientID)
	if !ok {
		return nil, ErrNoClientID
	}
	age, _ := t.Column(Age)
	bal, _ := t.Column(Balance)
	tx, _ := t.Column(TxCount)
	lbl, _ := t.Column(ClusterLabel)

	out := make([]ClientRecord, t.Len())
	for i := range out {
		r := ClientRecord{
			ClientID:      ids.Strs[i],
			Age:           int(numAt(age, i)),
			Balance:       numAt(bal, i),
			TxCount:       int(numAt(tx, i)),
			RawAttributes: make(map[string]string, len(t.cols)),
		}
		if lbl != nil && !math.IsNaN(lbl.Nums[i]) {
			v := int(lbl.Nums[i])
			r.ClusterLabel = &v
		}
		for _, c := range t.cols {
			r.RawAttributes[c.Source] = c.Raw(i)
		}
		out[i] = r
	}
	return out, nil
}

func numAt(c *Column, i int) float64 {
	if c == nil || c.Kind != Numeric || math.IsNaN(c.Nums[i]) {
		return 0
	}
	return c.Nums[i]
}

// FromRecords builds the normalized table for stored records. Raw attributes
// are rebuilt into source columns and normalized, then the typed record
// fields replace the canonical columns, so a store-backed table has the same
// columns as one read from the file the records were imported from. A typed
// optional column is emitted only when the raw attributes carry one of its
// aliases; records without raw attributes get every typed column.
func FromRecords(recs []ClientRecord) *Table {
	var keys []string
	seen := map[string]struct{}{}
	for _, r := range recs {
		for k := range r.RawAttributes {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	raw := NewTable(len(recs))
	for _, k := range keys {
		cells := make([]string, len(recs))
		for i, r := range recs {
			cells[i] = r.RawAttributes[k]
		}
		_ = raw.Set(columnFromRaw(k, cells, len(recs)))
	}
	norm := Normalize(raw)
	present := Resolve(keys)
	emit := func(name string) bool {
		_, ok := present[name]
		return ok || len(keys) == 0
	}

	out := NewTable(len(recs))
	ids := make([]string, len(recs))
	ages := make([]float64, len(recs))
	bals := make([]float64, len(recs))
	txs := make([]float64, len(recs))
	lbls := make([]float64, len(recs))
	for i, r := range recs {
		ids[i] = r.ClientID
		ages[i] = float64(r.Age)
		bals[i] = r.Balance
		txs[i] = float64(r.TxCount)
		lbls[i] = math.NaN()
		if r.ClusterLabel != nil {
			lbls[i] = float64(*r.ClusterLabel)
		}
	}
	_ = out.SetText(ClientID, ids)
	if emit(Age) {
		_ = out.SetNumeric(Age, ages)
	}
	if emit(Balance) {
		_ = out.SetNumeric(Balance, bals)
	}
	if emit(TxCount) {
		_ = out.SetNumeric(TxCount, txs)
	}
	_ = out.SetNumeric(ClusterLabel, lbls)
	for _, c := range norm.cols {
		if out.Has(c.Name) {
			continue
		}
		_ = out.Set(c)
	}
	return out
}
