package ui

import (
	"fmt"
	"strings"

	"github.com/fekuna/ecoscan/internal/cart"
	"github.com/fekuna/ecoscan/internal/compare"
	"github.com/fekuna/ecoscan/internal/model"
	"github.com/fekuna/ecoscan/internal/scan"
)

// HighlightMarker follows highlighted comparison cells so they stand out
// without color too.
const HighlightMarker = " *"

func CartView(styles Styles, v cart.View) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Your Cart"))
	sb.WriteString("\n\n")

	switch {
	case v.Message == cart.MessageLoadFailed:
		sb.WriteString(styles.Error.Render(v.Message))
		sb.WriteString("\n")
	case v.Message != "":
		sb.WriteString(styles.Muted.Render(v.Message))
		sb.WriteString("\n")
	default:
		t := &table{headers: []string{"Item", "Product", "Price", "Qty", "Subtotal", ""}}
		for _, l := range v.Lines {
			eco := ""
			if l.EcoFriendly {
				eco = styles.Eco.Render("Eco-Friendly")
			}
			t.addRow(l.CartItemID, l.Name+styles.Muted.Render(" ("+l.ProductID+")"), l.Price, fmt.Sprint(l.Quantity), l.Subtotal, eco)
		}
		sb.WriteString(t.view(styles))
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Bold.Render("Total: " + v.Total))
	sb.WriteString("\n")
	if v.Notice != "" {
		sb.WriteString(styles.Notice.Render(v.Notice))
		sb.WriteString("\n")
	}
	return sb.String()
}

func ScanPanel(styles Styles, mode scan.Mode, p scan.ResultPanel) string {
	if !p.Visible {
		return ""
	}

	title := styles.Title
	if !p.Found {
		title = styles.Error
	}
	lines := []string{title.Render(p.Name), styles.Body.Render(p.Description), styles.Muted.Render(p.Score)}
	if p.Banner != "" {
		lines = append(lines, "", styles.Success.Render(p.Banner), styles.Muted.Render("Run `ecoscan cart` to view your cart."))
	}
	if p.Notice != "" {
		lines = append(lines, "", styles.Notice.Render(p.Notice))
	}

	header := styles.Muted.Render(fmt.Sprintf("[%s] %s", mode, p.Code))
	return header + "\n" + styles.Panel.Render(strings.Join(lines, "\n")) + "\n"
}

func ScanControls(styles Styles, mode scan.Mode, c scan.Controls) string {
	var parts []string
	if c.StartVisible {
		parts = append(parts, styles.Bold.Render("[Start "+mode.String()+" scan]"))
	}
	if c.StopVisible {
		parts = append(parts, styles.Bold.Render("[Stop]"))
	}
	if c.VideoVisible {
		parts = append(parts, styles.Muted.Render("scanning on "+mode.Target()+"..."))
	}
	if c.Message != "" {
		parts = append(parts, styles.Error.Render(c.Message))
	}
	return strings.Join(parts, " ") + "\n"
}

func ComparisonTable(styles Styles, tbl compare.Table) string {
	t := &table{headers: []string{"", "Product 1", "Product 2"}}
	for _, row := range tbl.Rows {
		cells := []string{styles.Bold.Render(row.Field.String())}
		for _, c := range row.Cells {
			if c.Highlight {
				cells = append(cells, styles.Highlight.Render(c.Text+HighlightMarker))
			} else {
				cells = append(cells, c.Text)
			}
		}
		t.addRow(cells...)
	}
	return styles.Title.Render("Compare Products") + "\n\n" + t.view(styles)
}

// CompareCandidates lists the cart products that can be compared, marking
// the selected ones.
func CompareCandidates(styles Styles, products []model.Product, selected func(id string) bool) string {
	var sb strings.Builder
	for _, p := range products {
		mark := "[ ]"
		if selected(p.ID) {
			mark = styles.Highlight.Render("[x]")
		}
		fmt.Fprintf(&sb, "%s %s  %s  Sustainability Score: %s  %s\n",
			mark, styles.Bold.Render(p.Name), cart.ProductPrice(p), p.SustainabilityScore, styles.Muted.Render(p.ID))
	}
	return sb.String()
}

func CatalogList(styles Styles, products []model.Product) string {
	if len(products) == 0 {
		return styles.Muted.Render("Catalog is empty") + "\n"
	}
	t := &table{headers: []string{"Code", "Name", "Price", "Score", "Description"}}
	for _, p := range products {
		t.addRow(p.Code(), p.Name, cart.ProductPrice(p), p.SustainabilityScore, p.Description)
	}
	return t.view(styles)
}
