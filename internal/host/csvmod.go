package host

import (
	"encoding/csv"
	"strings"

	"github.com/latchlang/latch/internal/value"
)

// CSV implements the supplemental csv module: parse(text) -> list of
// list of string, stringify(rows) -> text.
type CSV struct{}

func NewCSV() *CSV { return &CSV{} }

func (c *CSV) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "parse":
		if len(args) != 1 {
			return value.Null(), argErr("csv", method, 1, len(args))
		}
		r := csv.NewReader(strings.NewReader(args[0].Str))
		records, err := r.ReadAll()
		if err != nil {
			return value.Null(), err
		}
		rows := make([]value.Value, len(records))
		for i, rec := range records {
			cells := make([]value.Value, len(rec))
			for j, cell := range rec {
				cells[j] = value.Str(cell)
			}
			rows[i] = value.NewList(cells...)
		}
		return value.NewList(rows...), nil
	case "stringify":
		if len(args) != 1 || args[0].Kind != value.KindList {
			return value.Null(), wrongType("csv", method, "argument", "a list of lists")
		}
		var b strings.Builder
		w := csv.NewWriter(&b)
		for _, rowVal := range args[0].List.Elems {
			if rowVal.Kind != value.KindList {
				return value.Null(), wrongType("csv", method, "row", "a list")
			}
			rec := make([]string, len(rowVal.List.Elems))
			for j, cell := range rowVal.List.Elems {
				rec[j] = cell.String()
			}
			if err := w.Write(rec); err != nil {
				return value.Null(), err
			}
		}
		w.Flush()
		return value.Str(b.String()), nil
	default:
		return value.Null(), wrongType("csv", method, "method", "parse or stringify")
	}
}
