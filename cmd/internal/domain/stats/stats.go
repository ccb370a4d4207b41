// Package stats turns producer rows into dashboard totals and chart data.
// Every function is pure, never fails and keeps the input order.
package stats

import (
	"farmregistry/cmd/internal/contract"
	"strings"
)

const (
	LandUseCategory = "Agricultural & Vegetation Area"

	titleState   = "State"
	titleCulture = "Crop"
	titleLandUse = "Agricultural & Vegetation Area"
)

// Count returns how many producers have a total area.
func Count(producers []*contract.Producer) int {
	n := 0
	for _, p := range producers {
		if p != nil && p.TotalArea != nil {
			n++
		}
	}
	return n
}

// SumArea adds up every total area, missing ones count as zero.
func SumArea(producers []*contract.Producer) float64 {
	var total float64
	for _, p := range producers {
		if p != nil {
			total += area(p.TotalArea)
		}
	}
	return total
}

// GroupByState projects each producer to (state, id). Entries are not
// reduced per state.
func GroupByState(producers []*contract.Producer) []*contract.ChartEntry {
	return project(producers, func(p *contract.Producer) *contract.ChartEntry {
		return &contract.ChartEntry{Category: p.State, Value: float64(p.ID)}
	})
}

// GroupByCrop projects each producer to (joined crops, id).
func GroupByCrop(producers []*contract.Producer) []*contract.ChartEntry {
	return project(producers, func(p *contract.Producer) *contract.ChartEntry {
		return &contract.ChartEntry{Category: strings.Join(p.Crops, ", "), Value: float64(p.ID)}
	})
}

// GroupByLandUse projects each producer to its agricultural plus
// vegetation area, all under LandUseCategory.
func GroupByLandUse(producers []*contract.Producer) []*contract.ChartEntry {
	return project(producers, func(p *contract.Producer) *contract.ChartEntry {
		return &contract.ChartEntry{
			Category: LandUseCategory,
			Value:    area(p.AgriculturalArea) + area(p.VegetationArea),
		}
	})
}

// Charts returns the three dashboard charts in display order.
func Charts(producers []*contract.Producer) []*contract.Chart {
	return []*contract.Chart{
		{Type: contract.ChartState, Title: titleState, Data: GroupByState(producers)},
		{Type: contract.ChartCulture, Title: titleCulture, Data: GroupByCrop(producers)},
		{Type: contract.ChartLandUse, Title: titleLandUse, Data: GroupByLandUse(producers)},
	}
}

func Summarize(producers []*contract.Producer) *contract.Summary {
	return &contract.Summary{
		Quantity:  Count(producers),
		AreaTotal: SumArea(producers),
		Charts:    Charts(producers),
	}
}

func project(producers []*contract.Producer, fn func(*contract.Producer) *contract.ChartEntry) []*contract.ChartEntry {
	entries := make([]*contract.ChartEntry, 0, len(producers))
	for _, p := range producers {
		if p == nil {
			continue
		}
		entries = append(entries, fn(p))
	}
	return entries
}

func area(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
