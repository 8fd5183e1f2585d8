package compare

import (
	"strconv"
	"strings"

	"github.com/fekuna/ecoscan/internal/cart"
	"github.com/fekuna/ecoscan/internal/model"
	"github.com/shopspring/decimal"
)

const Placeholder = "-"

type Field int

const (
	FieldName Field = iota
	FieldPrice
	FieldScore
	FieldDescription
)

var fieldLabels = [...]string{
	FieldName:        "Name",
	FieldPrice:       "Price",
	FieldScore:       "Sustainability Score",
	FieldDescription: "Description",
}

func (f Field) String() string { return fieldLabels[f] }

// Slot identifies a comparison column. SlotNone means no column wins.
type Slot int

const (
	SlotNone   Slot = -1
	SlotFirst  Slot = 0
	SlotSecond Slot = 1
)

type Cell struct {
	Text      string
	Highlight bool
}

type Row struct {
	Field Field
	Cells [MaxSelected]Cell
}

type Table struct {
	Rows []Row
}

func (t Table) Cell(f Field, slot Slot) Cell {
	for _, r := range t.Rows {
		if r.Field == f {
			return r.Cells[slot]
		}
	}
	return Cell{}
}

// Render fills the two columns from selected, in selection order, with
// placeholders for empty columns. Differences are highlighted only when both
// columns are filled.
func Render(selected []model.Product) Table {
	t := Table{Rows: []Row{
		{Field: FieldName}, {Field: FieldPrice}, {Field: FieldScore}, {Field: FieldDescription},
	}}
	for i := range t.Rows {
		for slot := range t.Rows[i].Cells {
			t.Rows[i].Cells[slot] = Cell{Text: Placeholder}
		}
	}

	for slot, p := range selected {
		if slot >= MaxSelected {
			break
		}
		t.Rows[FieldName].Cells[slot].Text = p.Name
		t.Rows[FieldPrice].Cells[slot].Text = cart.ProductPrice(p)
		t.Rows[FieldScore].Cells[slot].Text = p.SustainabilityScore
		t.Rows[FieldDescription].Cells[slot].Text = p.Description
	}

	if len(selected) == MaxSelected {
		h := HighlightDifferences(selected[0], selected[1])
		if h.Price != SlotNone {
			t.Rows[FieldPrice].Cells[h.Price].Highlight = true
		}
		if h.Score != SlotNone {
			t.Rows[FieldScore].Cells[h.Score].Highlight = true
		}
	}
	return t
}

type Highlights struct {
	Price Slot
	Score Slot
}

// HighlightDifferences picks the cheaper price and the higher score. Ties and
// scores without a leading integer pick nothing. No other field is compared.
func HighlightDifferences(a, b model.Product) Highlights {
	h := Highlights{Price: SlotNone, Score: SlotNone}

	switch decimal.NewFromFloat(a.Price).Cmp(decimal.NewFromFloat(b.Price)) {
	case -1:
		h.Price = SlotFirst
	case 1:
		h.Price = SlotSecond
	}

	sa, okA := leadingInt(a.SustainabilityScore)
	sb, okB := leadingInt(b.SustainabilityScore)
	if okA && okB {
		switch {
		case sa > sb:
			h.Score = SlotFirst
		case sb > sa:
			h.Score = SlotSecond
		}
	}
	return h
}

// leadingInt parses the integer prefix of s, so "8/10" yields 8.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
