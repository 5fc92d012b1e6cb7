package utils

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DisplayResultsTable writes rows as a box-drawn table with columns in the
// given order.
func DisplayResultsTable(w io.Writer, columns []string, rows []map[string]interface{}) {
	if len(rows) == 0 {
		return
	}

	colWidths := make(map[string]int, len(columns))
	for _, col := range columns {
		colWidths[col] = utf8.RuneCountInString(col)
	}

	for _, row := range rows {
		for _, col := range columns {
			if n := utf8.RuneCountInString(FormatValue(row[col])); n > colWidths[col] {
				colWidths[col] = n
			}
		}
	}

	border := func(left, mid, right string) {
		fmt.Fprint(w, left)
		for i, col := range columns {
			fmt.Fprint(w, strings.Repeat("─", colWidths[col]+2))
			if i < len(columns)-1 {
				fmt.Fprint(w, mid)
			}
		}
		fmt.Fprintln(w, right)
	}

	border("┌", "┬", "┐")

	fmt.Fprint(w, "│")
	for _, col := range columns {
		fmt.Fprintf(w, " %-*s │", colWidths[col], col)
	}
	fmt.Fprintln(w)

	border("├", "┼", "┤")

	for _, row := range rows {
		fmt.Fprint(w, "│")
		for _, col := range columns {
			val := FormatValue(row[col])
			if isNumeric(row[col]) {
				fmt.Fprintf(w, " %*s │", colWidths[col], val)
			} else {
				fmt.Fprintf(w, " %-*s │", colWidths[col], val)
			}
		}
		fmt.Fprintln(w)
	}

	border("└", "┴", "┘")
}

// FormatValue formats a value for display
func FormatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(v, 'f', 6, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 6, 32)
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isNumeric(val interface{}) bool {
	switch val.(type) {
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}
