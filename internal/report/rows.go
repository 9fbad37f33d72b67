package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Row is one display-ready statement line. Rendering (tables, PDF,
// ANSI color) is left to callers.
type Row struct {
	Category string
	Group    string
	Line     string
	Amount   decimal.Decimal
	IsTotal  bool
}

// Rows flattens the statement into deterministic display order:
// categories in canonical order, groups by name, lines by name with the
// group "_total" last, and each category closed by its own total row
// (Group set to "_total").
func (s *Statement) Rows() []Row {
	var rows []Row
	for _, catName := range s.CategoryOrder() {
		c, ok := s.Categories[catName]
		if !ok {
			continue
		}
		for _, gname := range sortedGroupNames(c) {
			g := c.Groups[gname]
			for _, line := range sortedLineNames(g) {
				rows = append(rows, Row{
					Category: catName,
					Group:    gname,
					Line:     line,
					Amount:   g.Lines[line],
				})
			}
			rows = append(rows, Row{
				Category: catName,
				Group:    gname,
				Line:     TotalKey,
				Amount:   g.Total,
				IsTotal:  true,
			})
		}
		rows = append(rows, Row{
			Category: catName,
			Group:    TotalKey,
			Amount:   c.Total,
			IsTotal:  true,
		})
	}
	return rows
}

func sortedGroupNames(c *Category) []string {
	names := make([]string, 0, len(c.Groups))
	for name := range c.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedLineNames(g *Group) []string {
	names := make([]string, 0, len(g.Lines))
	for name := range g.Lines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
