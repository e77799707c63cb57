package parser

import "github.com/valmark/xlsxlens/pkg/xlsxlens/models"

// sampleRows is the number of leading data rows used for column samples.
const sampleRows = 5

// kindCounter tallies value kinds for one column, remembering first-seen
// order so that frequency ties break deterministically.
type kindCounter struct {
	counts map[models.Kind]int
	order  []models.Kind
}

func (k *kindCounter) add(kind models.Kind) {
	if k.counts == nil {
		k.counts = make(map[models.Kind]int)
	}
	if _, seen := k.counts[kind]; !seen {
		k.order = append(k.order, kind)
	}
	k.counts[kind]++
}

// inferred picks the column kind: date wins outright if present at all,
// since real exports bury the occasional date under far more frequent blank
// and string noise; otherwise the most frequent kind wins.
func (k *kindCounter) inferred() models.Kind {
	if len(k.order) == 0 {
		return models.KindEmpty
	}
	if k.counts[models.KindDate] > 0 {
		return models.KindDate
	}
	best := k.order[0]
	for _, kind := range k.order[1:] {
		if k.counts[kind] > k.counts[best] {
			best = kind
		}
	}
	return best
}

func (k *kindCounter) nonNull() int {
	n := 0
	for kind, count := range k.counts {
		if kind != models.KindEmpty {
			n += count
		}
	}
	return n
}

// InferColumns aggregates value-kind counts per header column across the
// collected data rows and derives one summary per column. Blank values
// (empty cells and empty strings) count as empty.
func InferColumns(headers []string, rows [][]models.CellValue) []models.ColumnSummary {
	counters := make([]kindCounter, len(headers))
	for _, row := range rows {
		for i, v := range row {
			if i >= len(counters) {
				break
			}
			if v.IsBlank() {
				counters[i].add(models.KindEmpty)
			} else {
				counters[i].add(v.Kind)
			}
		}
	}

	columns := make([]models.ColumnSummary, len(headers))
	for i, name := range headers {
		samples := []interface{}{}
		for r := 0; r < len(rows) && r < sampleRows; r++ {
			if i < len(rows[r]) {
				samples = append(samples, rows[r][i].Interface())
			}
		}
		columns[i] = models.ColumnSummary{
			Index:        i,
			Name:         name,
			InferredKind: counters[i].inferred(),
			NonNullCount: counters[i].nonNull(),
			Samples:      samples,
		}
	}
	return columns
}
