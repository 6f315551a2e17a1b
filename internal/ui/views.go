package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// tabRoot is shared by all tab view structs; it holds the Fyne container and
// provides a common CanvasObject() accessor.
type tabRoot struct {
	root *fyne.Container
}

func newTabRoot() tabRoot {
	return tabRoot{root: container.NewStack()}
}

func (t *tabRoot) CanvasObject() fyne.CanvasObject {
	return t.root
}

// cellGrid backs a widget.Table with a string matrix. Row 0 is the header;
// the last row is bold when boldLast is set.
type cellGrid struct {
	cells    [][]string
	boldLast bool
	table    *widget.Table
}

func newCellGrid(boldLast bool) *cellGrid {
	g := &cellGrid{boldLast: boldLast}
	g.table = widget.NewTable(
		func() (int, int) {
			if len(g.cells) == 0 {
				return 0, 0
			}
			return len(g.cells), len(g.cells[0])
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			text := ""
			if id.Row < len(g.cells) && id.Col < len(g.cells[id.Row]) {
				text = g.cells[id.Row][id.Col]
			}
			lbl.TextStyle = fyne.TextStyle{Bold: id.Row == 0 || (g.boldLast && id.Row == len(g.cells)-1)}
			if id.Col == 0 {
				lbl.Alignment = fyne.TextAlignLeading
			} else {
				lbl.Alignment = fyne.TextAlignTrailing
			}
			lbl.SetText(text)
		},
	)
	return g
}

func (g *cellGrid) SetCells(cells [][]string) {
	g.cells = cells
	g.table.SetColumnWidth(0, 120)
	if len(cells) > 0 {
		for col := 1; col < len(cells[0]); col++ {
			g.table.SetColumnWidth(col, columnWidthFor(cells, col))
		}
	}
	g.table.Refresh()
}

// columnWidthFor sizes a column to its longest cell, in rough pixels.
func columnWidthFor(cells [][]string, col int) float32 {
	longest := 0
	for _, row := range cells {
		if col < len(row) {
			if n := len([]rune(row[col])); n > longest {
				longest = n
			}
		}
	}
	w := float32(longest)*13 + 16
	if w < 64 {
		w = 64
	}
	return w
}
