package core

import (
	"sort"
	"strconv"
	"strings"

	"github.com/orderscope/orderscope/schema"
)

// CellString renders a raw cell as a string for identity and matching
// purposes. Numeric cells keep their shortest exact representation so order
// ids read from XLSX line up with the same ids read from CSV.
func CellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// CellFloat parses a raw cell as a number. String cells are trimmed and may
// carry a currency prefix or thousands separators, which Shopify does not
// emit but re-saved spreadsheets often do.
func CellFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// BuildOrderIndex makes one scan over the export and captures per-order
// facts keyed by order id. The first row seen for an order fixes its month
// bucket; the total back-fills from the first row carrying a parseable total,
// since Shopify repeats order-level columns only on the order's first line
// item and leaves them blank on the rest.
func BuildOrderIndex(rows []schema.RawRow, roleMap schema.ColumnRoleMap) map[string]*schema.OrderMeta {
	index := make(map[string]*schema.OrderMeta)
	orderCol := roleMap[schema.RoleOrder]
	totalCol := roleMap[schema.RoleTotal]
	createdCol := roleMap[schema.RoleCreated]
	if orderCol == "" {
		return index
	}

	for _, row := range rows {
		orderID := strings.TrimSpace(CellString(row[orderCol]))
		if orderID == "" {
			continue
		}
		meta, seen := index[orderID]
		if !seen {
			meta = &schema.OrderMeta{MonthKey: schema.UnknownMonthKey}
			if createdCol != "" {
				meta.MonthKey = MonthKey(ParseCellDate(row[createdCol]))
			}
			index[orderID] = meta
		}
		if meta.Total == nil && totalCol != "" {
			if total, ok := CellFloat(row[totalCol]); ok {
				meta.Total = &total
			}
		}
	}
	return index
}

// BuildFilteredAggregate sums line-item quantities per order across every row
// whose product name contains the keyword, case-insensitively. An empty
// keyword or an unresolved order/lineitem/quantity role yields an empty
// aggregate. Rows with an unparseable quantity are skipped, not treated as
// zero, so an order whose matched rows all fail to parse is never counted.
func BuildFilteredAggregate(rows []schema.RawRow, roleMap schema.ColumnRoleMap, keyword string) map[string]float64 {
	qtyByOrder := make(map[string]float64)
	needle := normalizeCell(keyword)
	if needle == "" {
		return qtyByOrder
	}
	orderCol := roleMap[schema.RoleOrder]
	itemCol := roleMap[schema.RoleLineItem]
	qtyCol := roleMap[schema.RoleQuantity]
	if orderCol == "" || itemCol == "" || qtyCol == "" {
		return qtyByOrder
	}

	for _, row := range rows {
		name := normalizeCell(CellString(row[itemCol]))
		if name == "" || !strings.Contains(name, needle) {
			continue
		}
		orderID := strings.TrimSpace(CellString(row[orderCol]))
		if orderID == "" {
			continue
		}
		if q, ok := CellFloat(row[qtyCol]); ok {
			qtyByOrder[orderID] += q
		}
	}
	return qtyByOrder
}

// ProductNames returns the distinct line-item names in the export, sorted
// case-insensitively. Useful for picking a filter keyword without opening
// the file.
func ProductNames(rows []schema.RawRow, roleMap schema.ColumnRoleMap) []string {
	itemCol := roleMap[schema.RoleLineItem]
	if itemCol == "" {
		return nil
	}
	seen := make(map[string]string)
	for _, row := range rows {
		name := strings.TrimSpace(CellString(row[itemCol]))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; !ok {
			seen[key] = name
		}
	}
	names := make([]string, 0, len(seen))
	for _, name := range seen {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}
