package analytics

import (
	"sort"

	"cardiopulse/pkg/contracts/domain"
)

// BuildCharts assembles every chart series for a filtered view.
// topN bounds each side of the hospital ranking.
func BuildCharts(records []domain.ProcedureRecord, topN int) domain.ChartSet {
	return domain.ChartSet{
		VolumeTrend:      VolumeTrend(records),
		MortalityTrend:   MortalityTrend(records),
		DiffTrend:        DiffTrend(records),
		Procedures:       ProcedureBreakdowns(records),
		RegionDiffs:      RegionDiffs(records),
		RegionShares:     RegionComparisonShares(records),
		HospitalScatter:  HospitalScatter(records),
		HospitalRanking:  TopBottomHospitals(records, topN),
		ProcedureCIs:     ProcedureCIs(records),
		HospitalCIWidths: HospitalCIWidths(records),
	}
}

// VolumeTrend sums cases per (start year, procedure), ordered by year
// then procedure.
func VolumeTrend(records []domain.ProcedureRecord) []domain.VolumePoint {
	type key struct {
		year      int
		procedure string
	}
	sums := make(map[key]int64)
	for i := range records {
		r := &records[i]
		if r.StartYear == nil || r.NumberOfCases == nil {
			continue
		}
		sums[key{*r.StartYear, r.Procedure}] += *r.NumberOfCases
	}

	out := make([]domain.VolumePoint, 0, len(sums))
	for k, cases := range sums {
		out = append(out, domain.VolumePoint{StartYear: k.year, Procedure: k.procedure, Cases: cases})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartYear != out[j].StartYear {
			return out[i].StartYear < out[j].StartYear
		}
		return out[i].Procedure < out[j].Procedure
	})
	return out
}

// MortalityTrend computes the mean observed, expected and risk-adjusted
// rates per start year, ordered by year.
func MortalityTrend(records []domain.ProcedureRecord) []domain.MortalityTrendPoint {
	type accs struct {
		observed, expected, riskAdjusted meanAcc
	}
	byYear := make(map[int]*accs)
	for i := range records {
		r := &records[i]
		if r.StartYear == nil {
			continue
		}
		a, ok := byYear[*r.StartYear]
		if !ok {
			a = &accs{}
			byYear[*r.StartYear] = a
		}
		a.observed.add(r.ObservedRate)
		a.expected.add(r.ExpectedRate)
		a.riskAdjusted.add(r.RiskAdjustedRate)
	}

	out := make([]domain.MortalityTrendPoint, 0, len(byYear))
	for year, a := range byYear {
		out = append(out, domain.MortalityTrendPoint{
			StartYear:        year,
			ObservedRate:     a.observed.mean(),
			ExpectedRate:     a.expected.mean(),
			RiskAdjustedRate: a.riskAdjusted.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartYear < out[j].StartYear })
	return out
}

// DiffTrend computes the mean observed-vs-expected difference per start
// year, ordered by year.
func DiffTrend(records []domain.ProcedureRecord) []domain.DiffTrendPoint {
	byYear := make(map[int]*meanAcc)
	for i := range records {
		r := &records[i]
		if r.StartYear == nil {
			continue
		}
		a, ok := byYear[*r.StartYear]
		if !ok {
			a = &meanAcc{}
			byYear[*r.StartYear] = a
		}
		a.add(r.ObsVsExpectedDiff)
	}

	out := make([]domain.DiffTrendPoint, 0, len(byYear))
	for year, a := range byYear {
		out = append(out, domain.DiffTrendPoint{StartYear: year, AvgDiff: a.mean()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartYear < out[j].StartYear })
	return out
}

// ProcedureBreakdowns sums cases and averages rates per procedure type,
// ordered by descending case volume then name.
func ProcedureBreakdowns(records []domain.ProcedureRecord) []domain.ProcedureBreakdown {
	type accs struct {
		cases              int64
		observed, expected meanAcc
	}
	byProc := make(map[string]*accs)
	for i := range records {
		r := &records[i]
		a, ok := byProc[r.Procedure]
		if !ok {
			a = &accs{}
			byProc[r.Procedure] = a
		}
		if r.NumberOfCases != nil {
			a.cases += *r.NumberOfCases
		}
		a.observed.add(r.ObservedRate)
		a.expected.add(r.ExpectedRate)
	}

	out := make([]domain.ProcedureBreakdown, 0, len(byProc))
	for proc, a := range byProc {
		out = append(out, domain.ProcedureBreakdown{
			Procedure:    proc,
			Cases:        a.cases,
			ObservedRate: a.observed.mean(),
			ExpectedRate: a.expected.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cases != out[j].Cases {
			return out[i].Cases > out[j].Cases
		}
		return out[i].Procedure < out[j].Procedure
	})
	return out
}

// RegionDiffs averages the observed-vs-expected difference per region,
// ordered ascending by difference so the best-performing region leads.
func RegionDiffs(records []domain.ProcedureRecord) []domain.RegionDiff {
	byRegion := make(map[string]*meanAcc)
	for i := range records {
		r := &records[i]
		a, ok := byRegion[r.Region]
		if !ok {
			a = &meanAcc{}
			byRegion[r.Region] = a
		}
		a.add(r.ObsVsExpectedDiff)
	}

	out := make([]domain.RegionDiff, 0, len(byRegion))
	for region, a := range byRegion {
		out = append(out, domain.RegionDiff{Region: region, AvgDiff: a.mean()})
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].AvgDiff, out[j].AvgDiff
		switch {
		case di == nil && dj == nil:
			return out[i].Region < out[j].Region
		case di == nil:
			return false
		case dj == nil:
			return true
		case *di != *dj:
			return *di < *dj
		default:
			return out[i].Region < out[j].Region
		}
	})
	return out
}

// RegionComparisonShares computes, per region, the share of records in
// each comparison category, ordered by region then category.
func RegionComparisonShares(records []domain.ProcedureRecord) []domain.RegionComparisonShare {
	type key struct {
		region     string
		comparison domain.ComparisonResult
	}
	counts := make(map[key]int)
	totals := make(map[string]int)
	for i := range records {
		r := &records[i]
		counts[key{r.Region, r.Comparison}]++
		totals[r.Region]++
	}

	out := make([]domain.RegionComparisonShare, 0, len(counts))
	for k, count := range counts {
		out = append(out, domain.RegionComparisonShare{
			Region:     k.region,
			Comparison: k.comparison,
			Count:      count,
			Share:      float64(count) / float64(totals[k.region]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		return out[i].Comparison < out[j].Comparison
	})
	return out
}

// HospitalScatter maps each record to a scatter point in base-table
// order.
func HospitalScatter(records []domain.ProcedureRecord) []domain.HospitalPoint {
	out := make([]domain.HospitalPoint, 0, len(records))
	for i := range records {
		r := &records[i]
		out = append(out, domain.HospitalPoint{
			HospitalName: r.HospitalName,
			Cases:        r.NumberOfCases,
			ObservedRate: r.ObservedRate,
			Comparison:   r.Comparison,
		})
	}
	return out
}

// TopBottomHospitals ranks hospitals by mean observed-vs-expected
// difference and returns the n best (most negative) and n worst (most
// positive), ordered from worst to best as the dashboard renders them.
// Hospitals with no computable difference are excluded.
func TopBottomHospitals(records []domain.ProcedureRecord, n int) []domain.HospitalDiff {
	if n <= 0 {
		return nil
	}

	byHospital := make(map[string]*meanAcc)
	for i := range records {
		r := &records[i]
		a, ok := byHospital[r.HospitalName]
		if !ok {
			a = &meanAcc{}
			byHospital[r.HospitalName] = a
		}
		a.add(r.ObsVsExpectedDiff)
	}

	ranked := make([]domain.HospitalDiff, 0, len(byHospital))
	for hospital, a := range byHospital {
		m := a.mean()
		if m == nil {
			continue
		}
		ranked = append(ranked, domain.HospitalDiff{HospitalName: hospital, AvgDiff: *m})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AvgDiff != ranked[j].AvgDiff {
			return ranked[i].AvgDiff < ranked[j].AvgDiff
		}
		return ranked[i].HospitalName < ranked[j].HospitalName
	})

	if len(ranked) <= 2*n {
		out := make([]domain.HospitalDiff, len(ranked))
		for i, h := range ranked {
			out[len(ranked)-1-i] = h
		}
		return out
	}

	out := make([]domain.HospitalDiff, 0, 2*n)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- { // worst first
		out = append(out, ranked[i])
	}
	for i := n - 1; i >= 0; i-- { // then best, keeping descending order
		out = append(out, ranked[i])
	}
	return out
}

// ProcedureCIs averages the observed rate and the confidence bounds per
// procedure and derives the asymmetric error extents, ordered by
// procedure name.
func ProcedureCIs(records []domain.ProcedureRecord) []domain.ProcedureCI {
	type accs struct {
		observed, lower, upper meanAcc
	}
	byProc := make(map[string]*accs)
	for i := range records {
		r := &records[i]
		a, ok := byProc[r.Procedure]
		if !ok {
			a = &accs{}
			byProc[r.Procedure] = a
		}
		a.observed.add(r.ObservedRate)
		a.lower.add(r.CILower)
		a.upper.add(r.CIUpper)
	}

	out := make([]domain.ProcedureCI, 0, len(byProc))
	for proc, a := range byProc {
		ci := domain.ProcedureCI{
			Procedure:    proc,
			ObservedRate: a.observed.mean(),
			CILower:      a.lower.mean(),
			CIUpper:      a.upper.mean(),
		}
		if ci.ObservedRate != nil && ci.CILower != nil {
			minus := *ci.ObservedRate - *ci.CILower
			ci.ErrorMinus = &minus
		}
		if ci.ObservedRate != nil && ci.CIUpper != nil {
			plus := *ci.CIUpper - *ci.ObservedRate
			ci.ErrorPlus = &plus
		}
		out = append(out, ci)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Procedure < out[j].Procedure })
	return out
}

// HospitalCIWidths relates each hospital's total case volume to its mean
// confidence interval width, ordered by hospital name.
func HospitalCIWidths(records []domain.ProcedureRecord) []domain.HospitalCIWidth {
	type accs struct {
		cases int64
		width meanAcc
	}
	byHospital := make(map[string]*accs)
	for i := range records {
		r := &records[i]
		a, ok := byHospital[r.HospitalName]
		if !ok {
			a = &accs{}
			byHospital[r.HospitalName] = a
		}
		if r.NumberOfCases != nil {
			a.cases += *r.NumberOfCases
		}
		a.width.add(r.CIWidth)
	}

	out := make([]domain.HospitalCIWidth, 0, len(byHospital))
	for hospital, a := range byHospital {
		out = append(out, domain.HospitalCIWidth{
			HospitalName: hospital,
			TotalCases:   a.cases,
			AvgCIWidth:   a.width.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HospitalName < out[j].HospitalName })
	return out
}
