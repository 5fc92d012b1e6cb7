package seeder

import (
	"fmt"

	"github.com/Rana718/busseed/internal/bus"
	"github.com/Rana718/busseed/internal/randsrc"
)

type DataGenerator struct {
	rand *randsrc.MT19937
}

func NewDataGenerator(seed uint32) *DataGenerator {
	return &DataGenerator{
		rand: randsrc.New(seed),
	}
}

// Generate draws count records. Values are drawn a column at a time (every
// bus number, then every company, region, lat_min and lng_min) and the max
// coordinates last, row by row. The draw order is part of the output: the
// same seed always yields the same dataset.
func (g *DataGenerator) Generate(count int) []bus.Record {
	records := make([]bus.Record, count)

	for i := range records {
		records[i].BusNumber = g.generateBusNumber()
	}
	for i := range records {
		records[i].Company = randsrc.Choice(g.rand, bus.Companies)
	}
	for i := range records {
		records[i].Region = randsrc.Choice(g.rand, bus.Regions)
	}
	for i := range records {
		records[i].LatMin = g.rand.Uniform(bus.LatMin, bus.LatMax)
	}
	for i := range records {
		records[i].LngMin = g.rand.Uniform(bus.LngMin, bus.LngMax)
	}
	for i := range records {
		records[i].LatMax = records[i].LatMin + g.generateSpan()
		records[i].LngMax = records[i].LngMin + g.generateSpan()
	}

	return records
}

func (g *DataGenerator) generateBusNumber() string {
	return fmt.Sprintf("%03d", g.rand.Intn(bus.NumberMin, bus.NumberMax))
}

func (g *DataGenerator) generateSpan() float64 {
	return g.rand.Uniform(bus.SpanMin, bus.SpanMax)
}
