// Package bus defines the synthetic bus record written by the seeder and
// the fixed table layout it is stored in.
package bus

import (
	"fmt"
	"slices"
	"strconv"
)

const (
	LatMin = 50.0
	LatMax = 58.0
	LngMin = -5.0
	LngMax = 1.0

	// Span offsets added to the min coordinates to derive the max ones.
	SpanMin = 0.1
	SpanMax = 0.5

	NumberMin = 1
	NumberMax = 999
)

var Companies = []string{"First Bus", "Stagecoach", "Arriva", "Go-Ahead", "National Express"}

var Regions = []string{"London", "South East", "North West", "Scotland", "Wales", "South West"}

// Logical column types, mapped to concrete SQL types by each database adapter.
const (
	TypeText    = "text"
	TypeFloat64 = "float64"
)

type Column struct {
	Name string
	Type string
}

// Columns is the table layout in insertion order.
var Columns = []Column{
	{Name: "bus_number", Type: TypeText},
	{Name: "company", Type: TypeText},
	{Name: "region", Type: TypeText},
	{Name: "lat_min", Type: TypeFloat64},
	{Name: "lat_max", Type: TypeFloat64},
	{Name: "lng_min", Type: TypeFloat64},
	{Name: "lng_max", Type: TypeFloat64},
}

// ColumnNames returns the names of Columns in order.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.Name
	}
	return names
}

type Record struct {
	BusNumber string  `json:"bus_number" yaml:"bus_number"`
	Company   string  `json:"company" yaml:"company"`
	Region    string  `json:"region" yaml:"region"`
	LatMin    float64 `json:"lat_min" yaml:"lat_min"`
	LatMax    float64 `json:"lat_max" yaml:"lat_max"`
	LngMin    float64 `json:"lng_min" yaml:"lng_min"`
	LngMax    float64 `json:"lng_max" yaml:"lng_max"`
}

// Values returns the record fields in Columns order.
func (r Record) Values() []interface{} {
	return []interface{}{r.BusNumber, r.Company, r.Region, r.LatMin, r.LatMax, r.LngMin, r.LngMax}
}

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

func (r Record) Bounds() Bounds {
	return Bounds{MinLat: r.LatMin, MinLon: r.LngMin, MaxLat: r.LatMax, MaxLon: r.LngMax}
}

// Area is the planar area of the record's envelope in squared degrees.
func (r Record) Area() float64 {
	return (r.LngMax - r.LngMin) * (r.LatMax - r.LatMin)
}

// Validate checks the structural invariants every generated record holds.
func (r Record) Validate() error {
	if len(r.BusNumber) != 3 {
		return fmt.Errorf("bus_number %q must be 3 characters", r.BusNumber)
	}
	for _, c := range r.BusNumber {
		if c < '0' || c > '9' {
			return fmt.Errorf("bus_number %q must be numeric", r.BusNumber)
		}
	}
	if r.BusNumber == "000" {
		return fmt.Errorf("bus_number %q out of range", r.BusNumber)
	}
	if !slices.Contains(Companies, r.Company) {
		return fmt.Errorf("unknown company %q", r.Company)
	}
	if !slices.Contains(Regions, r.Region) {
		return fmt.Errorf("unknown region %q", r.Region)
	}
	if !(r.LatMax > r.LatMin) {
		return fmt.Errorf("lat_max %v must be greater than lat_min %v", r.LatMax, r.LatMin)
	}
	if !(r.LngMax > r.LngMin) {
		return fmt.Errorf("lng_max %v must be greater than lng_min %v", r.LngMax, r.LngMin)
	}
	return nil
}

// FromRow builds a record from a row keyed by column name, as returned by
// the database adapters.
func FromRow(row map[string]interface{}) (Record, error) {
	var r Record
	var err error

	if r.BusNumber, err = asString(row, "bus_number"); err != nil {
		return r, err
	}
	if r.Company, err = asString(row, "company"); err != nil {
		return r, err
	}
	if r.Region, err = asString(row, "region"); err != nil {
		return r, err
	}
	if r.LatMin, err = asFloat(row, "lat_min"); err != nil {
		return r, err
	}
	if r.LatMax, err = asFloat(row, "lat_max"); err != nil {
		return r, err
	}
	if r.LngMin, err = asFloat(row, "lng_min"); err != nil {
		return r, err
	}
	if r.LngMax, err = asFloat(row, "lng_max"); err != nil {
		return r, err
	}
	return r, nil
}

func asString(row map[string]interface{}, col string) (string, error) {
	switch v := row[col].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("column %s: unexpected type %T", col, row[col])
	}
}

func asFloat(row map[string]interface{}, col string) (float64, error) {
	switch v := row[col].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		// text-protocol drivers return numeric columns as strings
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("column %s: unexpected type %T", col, row[col])
	}
}
