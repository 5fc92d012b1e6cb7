package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Rana718/busseed/internal/database"
	"github.com/Rana718/busseed/internal/database/common"
	"github.com/Rana718/busseed/internal/types"
	"gopkg.in/yaml.v3"
)

const FormatVersion = "1.0"

var Formats = []string{"json", "csv", "yaml"}

var now = time.Now

// PerformExport dumps table into a timestamped file under exportPath and
// returns the file path. Columns keep the table's own order.
func PerformExport(ctx context.Context, adapter database.DatabaseAdapter, table, exportPath, format string) (string, error) {
	format = strings.ToLower(format)
	if !isSupported(format) {
		return "", fmt.Errorf("unsupported export format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
	if err := common.ValidateTableName(table); err != nil {
		return "", err
	}

	exists, err := adapter.CheckTableExists(ctx, table)
	if err != nil {
		return "", fmt.Errorf("failed to check for table %s: %w", table, err)
	}
	if !exists {
		return "", fmt.Errorf("table %s does not exist", table)
	}

	columns, err := adapter.GetTableColumns(ctx, table)
	if err != nil {
		return "", fmt.Errorf("failed to get columns of %s: %w", table, err)
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}

	query, args, err := adapter.StatementBuilder().
		Select(names...).
		From(adapter.QuoteIdentifier(table)).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	result, err := adapter.ExecuteQuery(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("failed to get data for table %s: %w", table, err)
	}

	data := types.ExportData{
		Timestamp: now().Format("2006-01-02 15:04:05"),
		Version:   FormatVersion,
		Table:     table,
		Columns:   columns,
		Rows:      result.Rows,
		Comment:   "Bus data export",
	}

	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	filePath := filepath.Join(exportPath,
		fmt.Sprintf("export_%s_%s.%s", table, now().Format("2006-01-02_15-04-05"), format))

	switch format {
	case "csv":
		err = writeCSV(data, filePath)
	case "yaml":
		err = writeYAML(data, filePath)
	default:
		err = writeJSON(data, filePath)
	}
	if err != nil {
		return "", err
	}
	return filePath, nil
}

func isSupported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func writeJSON(data types.ExportData, filePath string) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func writeYAML(data types.ExportData, filePath string) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := os.WriteFile(filePath, yamlData, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func writeCSV(data types.ExportData, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file for %s: %w", data.Table, err)
	}
	defer file.Close()

	headers := make([]string, len(data.Columns))
	for i, c := range data.Columns {
		headers[i] = c.Name
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range data.Rows {
		values := make([]string, len(headers))
		for i, header := range headers {
			values[i] = formatCell(row[header])
		}
		if err := writer.Write(values); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}

// formatCell renders floats at full precision so exports round-trip.
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	default:
		return fmt.Sprintf("%v", val)
	}
}
