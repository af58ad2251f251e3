package analytics

import (
	"sort"

	"cardiopulse/pkg/contracts/domain"
)

// ComputeKPIs derives the headline indicators for a filtered view.
// Aggregation is null-aware throughout: nil inputs are skipped and a KPI
// stays nil when nothing contributed to it. An empty view yields zero
// cases and all-nil means.
func ComputeKPIs(records []domain.ProcedureRecord) domain.KpiSet {
	kpis := domain.KpiSet{RecordCount: len(records)}

	var observed meanAcc
	var diff meanAcc

	for i := range records {
		r := &records[i]
		if r.NumberOfCases != nil {
			kpis.TotalCases += *r.NumberOfCases
		}
		observed.add(r.ObservedRate)
		diff.add(r.ObsVsExpectedDiff)
	}

	kpis.AvgObservedRate = observed.mean()
	kpis.AvgObsVsExpectedDiff = diff.mean()
	kpis.YoYObservedChange = yoyObservedChange(records)

	return kpis
}

// yoyObservedChange is the difference between the mean observed mortality
// rate of the latest distinct start year in the view and that of the
// immediately preceding distinct start year. Nil when fewer than two
// distinct years are present or either year has no observed rates.
func yoyObservedChange(records []domain.ProcedureRecord) *float64 {
	byYear := make(map[int]*meanAcc)
	for i := range records {
		r := &records[i]
		if r.StartYear == nil || r.ObservedRate == nil {
			continue
		}
		acc, ok := byYear[*r.StartYear]
		if !ok {
			acc = &meanAcc{}
			byYear[*r.StartYear] = acc
		}
		acc.add(r.ObservedRate)
	}

	if len(byYear) < 2 {
		return nil
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	latest := byYear[years[len(years)-1]].mean()
	previous := byYear[years[len(years)-2]].mean()
	if latest == nil || previous == nil {
		return nil
	}

	change := *latest - *previous
	return &change
}

// meanAcc accumulates a null-aware arithmetic mean.
type meanAcc struct {
	sum   float64
	count int
}

func (a *meanAcc) add(v *float64) {
	if v == nil {
		return
	}
	a.sum += *v
	a.count++
}

func (a *meanAcc) mean() *float64 {
	if a.count == 0 {
		return nil
	}
	m := a.sum / float64(a.count)
	return &m
}
