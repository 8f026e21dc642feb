package analytics

import (
	"math/rand"
	"testing"
)

func rawFact(brand, city, pincode, platform, date, status string) Fact {
	listed, available := ParseAvailability(status)
	return FactFromRecord(CanonicalRecord{
		UniqueProductID: brand + "-sku",
		Brand:           brand,
		City:            city,
		Pincode:         pincode,
		Platform:        platform,
		ReportDate:      day(date),
		DateValid:       true,
		IsListed:        listed,
		IsAvailable:     available,
	})
}

func exampleFacts() []Fact {
	return []Fact{
		rawFact("A", "X", "1", "Blinkit", "2024-01-01", "Yes"),
		rawFact("A", "X", "1", "Blinkit", "2024-01-01", "No"),
		rawFact("A", "Y", "2", "Zepto", "2024-01-01", "Yes"),
	}
}

func TestKPIsExample(t *testing.T) {
	got := ComputeKPIs(exampleFacts(), RawStrategy{})
	want := KPIs{SKUsTracked: 3, Penetration: 100, Availability: 67, Coverage: 67}
	if got != want {
		t.Errorf("KPIs: got %+v, want %+v", got, want)
	}
}

func TestBrandCoverageExample(t *testing.T) {
	got := ComputeBrandCoverage(exampleFacts(), RawStrategy{})
	if len(got) != 1 {
		t.Fatalf("got %d brands, want 1", len(got))
	}
	if got[0].Name != "A" || got[0].Coverage != 66.7 {
		t.Errorf("got %+v, want {A 66.7}", got[0])
	}
}

func TestEmptyInput(t *testing.T) {
	res := Aggregate(nil, RawStrategy{})
	if res.KPIs != (KPIs{}) {
		t.Errorf("KPIs: got %+v, want zero", res.KPIs)
	}
	if res.TimeSeriesData == nil || len(res.TimeSeriesData) != 0 {
		t.Errorf("TimeSeriesData: got %v, want empty non-nil", res.TimeSeriesData)
	}
	if res.RegionalData == nil || res.PlatformShareData == nil || res.BrandCoverage == nil || res.RawData == nil {
		t.Error("sequence fields must be empty, not nil")
	}
}

func TestUnlistedStatusCountsOnlyInTotal(t *testing.T) {
	facts := []Fact{
		rawFact("A", "X", "1", "Blinkit", "2024-01-01", "Partial"),
		rawFact("A", "X", "1", "Blinkit", "2024-01-01", "Yes"),
	}
	got := ComputeKPIs(facts, RawStrategy{})
	if got.Penetration != 50 {
		t.Errorf("Penetration: got %v, want 50", got.Penetration)
	}
	if got.Availability != 100 {
		t.Errorf("Availability: got %v, want 100", got.Availability)
	}
	if got.Coverage != 50 {
		t.Errorf("Coverage: got %v, want 50", got.Coverage)
	}
}

func TestZeroDenominators(t *testing.T) {
	facts := []Fact{rawFact("A", "X", "1", "Blinkit", "2024-01-01", "")}
	k := ComputeKPIs(facts, RawStrategy{})
	if k.Availability != 0 || k.Penetration != 0 || k.Coverage != 0 {
		t.Errorf("got %+v, want zero ratios", k)
	}

	ts := ComputeTimeSeries(facts)
	if len(ts) != 1 || ts[0].Value != 0 {
		t.Errorf("time series: got %+v", ts)
	}

	reg := ComputeRegional(facts, RawStrategy{})
	if len(reg) != 1 || reg[0].StockAvailability != 0 || reg[0].StockOutPercent != 0 {
		t.Errorf("regional: got %+v", reg)
	}
}

func TestTimeSeriesAscendingUnique(t *testing.T) {
	facts := []Fact{
		rawFact("A", "X", "1", "Blinkit", "03-01-2024", "Yes"),
		rawFact("A", "X", "1", "Blinkit", "2024-01-01", "No"),
		rawFact("A", "X", "1", "Blinkit", "2024-01-03", "No"),
		rawFact("A", "X", "1", "Blinkit", "2024-01-02", "Yes"),
	}
	got := ComputeTimeSeries(facts)
	want := []TimePoint{
		{Date: "2024-01-01", Value: 0},
		{Date: "2024-01-02", Value: 100},
		{Date: "2024-01-03", Value: 50},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRegionalRawAndRollup(t *testing.T) {
	facts := []Fact{
		rawFact("A", "Pune", "411010", "Blinkit", "2024-01-01", "Yes"),
		rawFact("A", "Pune", "411002", "Blinkit", "2024-01-01", "No"),
		rawFact("A", "Pune", "411002", "Blinkit", "2024-01-01", "Yes"),
		rawFact("A", "Delhi", "110001", "Blinkit", "2024-01-01", "No"),
	}

	raw := ComputeRegional(facts, RawStrategy{})
	want := []RegionalPoint{
		{City: "Delhi", Pincode: "110001", StockAvailability: 0, StockOutPercent: 100},
		{City: "Pune", Pincode: "411002", StockAvailability: 50, StockOutPercent: 50},
		{City: "Pune", Pincode: "411010", StockAvailability: 100, StockOutPercent: 0},
	}
	if len(raw) != len(want) {
		t.Fatalf("raw: got %d regions, want %d", len(raw), len(want))
	}
	for i := range want {
		if raw[i] != want[i] {
			t.Errorf("raw region %d: got %+v, want %+v", i, raw[i], want[i])
		}
	}

	rollup := ComputeRegional(facts, RollupStrategy{})
	if len(rollup) != 2 {
		t.Fatalf("rollup: got %d regions, want 2", len(rollup))
	}
	if rollup[1].City != "Pune" || rollup[1].Pincode != "" || rollup[1].StockAvailability != 67 {
		t.Errorf("rollup Pune: got %+v", rollup[1])
	}
}

func TestPlatformShare(t *testing.T) {
	facts := []Fact{
		rawFact("A", "X", "1", "Zepto", "2024-01-01", "Yes"),
		rawFact("A", "X", "1", "Blinkit", "2024-01-01", "Yes"),
		rawFact("A", "X", "1", "Blinkit", "2024-01-01", "Yes"),
		rawFact("A", "X", "1", "Instamart", "2024-01-01", "Yes"),
	}
	got := ComputePlatformShare(facts)
	want := []PlatformShare{{"Blinkit", 50}, {"Zepto", 25}, {"Instamart", 25}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("share %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPlatformShareSumsToHundred(t *testing.T) {
	facts := []Fact{
		rawFact("A", "X", "1", "P1", "2024-01-01", "Yes"),
		rawFact("A", "X", "1", "P2", "2024-01-01", "Yes"),
		rawFact("A", "X", "1", "P3", "2024-01-01", "Yes"),
	}
	var sum float64
	for _, s := range ComputePlatformShare(facts) {
		sum += s.Value
	}
	if sum < 99 || sum > 101 {
		t.Errorf("sum of shares: got %v, want 100±1", sum)
	}
}

func TestBrandCoverageOrderInvariant(t *testing.T) {
	facts := []Fact{
		rawFact("A", "X", "1", "P", "2024-01-01", "Yes"),
		rawFact("A", "X", "1", "P", "2024-01-02", "No"),
		rawFact("A", "Y", "2", "P", "2024-01-01", "Yes"),
		rawFact("A", "Z", "3", "P", "2024-01-01", "No"),
		rawFact("B", "X", "1", "P", "2024-01-01", "Yes"),
		rawFact("B", "Y", "2", "P", "2024-01-01", "Partial"),
	}
	want := ComputeBrandCoverage(facts, RawStrategy{})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]Fact(nil), facts...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := ComputeBrandCoverage(shuffled, RawStrategy{})
		for _, w := range want {
			found := false
			for _, g := range got {
				if g.Name == w.Name {
					found = true
					if g.Coverage != w.Coverage {
						t.Errorf("brand %s: got %v, want %v", w.Name, g.Coverage, w.Coverage)
					}
				}
			}
			if !found {
				t.Errorf("brand %s missing after shuffle", w.Name)
			}
		}
	}

	for i := 1; i < len(want); i++ {
		if want[i-1].Coverage < want[i].Coverage {
			t.Errorf("brand coverage not sorted descending: %+v", want)
		}
	}
}

func TestBrandCoverageStages(t *testing.T) {
	locs := GroupBrandLocations(exampleFacts(), RawStrategy{})
	if len(locs) != 2 {
		t.Fatalf("stage one: got %d locations, want 2", len(locs))
	}
	if locs[0].Available != 1 || locs[0].Total != 2 {
		t.Errorf("stage one X/1: got %+v", locs[0])
	}

	got := SumBrandCoverage(locs)
	if got[0].Coverage != 66.7 {
		t.Errorf("stage two: got %v, want 66.7", got[0].Coverage)
	}
}

func TestRollupKPIsCountDistinctProducts(t *testing.T) {
	rows := []SummaryRow{
		{UniqueProductID: "p1", City: "Pune", Platform: "Blinkit", ReportDate: day("2024-01-01"), TotalCount: 4, ListedCount: 3, AvailableCount: 2},
		{UniqueProductID: "p1", City: "Delhi", Platform: "Blinkit", ReportDate: day("2024-01-01"), TotalCount: 2, ListedCount: 2, AvailableCount: 1},
		{UniqueProductID: "p2", City: "Pune", Platform: "Zepto", ReportDate: day("2024-01-01"), TotalCount: 2, ListedCount: 0, AvailableCount: 0},
	}
	facts := make([]Fact, 0, len(rows))
	for _, r := range rows {
		facts = append(facts, FactFromSummary(r))
	}

	got := ComputeKPIs(facts, RollupStrategy{})
	want := KPIs{SKUsTracked: 2, Penetration: 63, Availability: 60, Coverage: 38}
	if got != want {
		t.Errorf("rollup KPIs: got %+v, want %+v", got, want)
	}

	raw := ComputeKPIs(facts, RawStrategy{})
	if raw.SKUsTracked != 3 {
		t.Errorf("raw strategy counts rows: got %d, want 3", raw.SKUsTracked)
	}
}

func TestPercentagesBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	statuses := []string{"Yes", "No", "Partial", ""}
	var facts []Fact
	for i := 0; i < 200; i++ {
		facts = append(facts, rawFact(
			string(rune('A'+rng.Intn(4))),
			string(rune('K'+rng.Intn(3))),
			"1",
			string(rune('P'+rng.Intn(3))),
			"2024-01-01",
			statuses[rng.Intn(len(statuses))],
		))
	}
	res := Aggregate(facts, RawStrategy{})

	check := func(name string, v float64) {
		if v < 0 || v > 100 {
			t.Errorf("%s out of range: %v", name, v)
		}
	}
	check("penetration", res.KPIs.Penetration)
	check("availability", res.KPIs.Availability)
	check("coverage", res.KPIs.Coverage)
	for _, p := range res.TimeSeriesData {
		check("time series", p.Value)
	}
	for _, r := range res.RegionalData {
		check("stock availability", r.StockAvailability)
		check("stock out", r.StockOutPercent)
	}
	for _, p := range res.PlatformShareData {
		check("platform share", p.Value)
	}
	for _, b := range res.BrandCoverage {
		check("brand coverage", b.Coverage)
	}
}

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		part, whole int64
		places      int32
		want        float64
	}{
		{2, 3, 0, 67},
		{2, 3, 1, 66.7},
		{1, 3, 1, 33.3},
		{1, 8, 0, 13},  // 12.5 rounds half up
		{1, 200, 0, 1}, // 0.5 rounds half up
		{1, 201, 0, 0},
		{5, 0, 0, 0},
		{0, 5, 1, 0},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole, tt.places); got != tt.want {
			t.Errorf("Percent(%d, %d, %d): got %v, want %v", tt.part, tt.whole, tt.places, got, tt.want)
		}
	}

	if got := Round(2.675, 2); got != 2.68 {
		t.Errorf("Round(2.675, 2): got %v, want 2.68", got)
	}
}

func TestRegionalPincodeOrderIsTotal(t *testing.T) {
	pincodes := []string{"9", "10", "1a", "560001", "560001.0", "", "abc", "2"}
	want := []string{"2", "9", "10", "560001", "560001.0", "", "1a", "abc"}

	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		shuffled := append([]string(nil), pincodes...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		facts := make([]Fact, 0, len(shuffled))
		for _, pin := range shuffled {
			facts = append(facts, rawFact("A", "X", pin, "Blinkit", "2024-01-01", "Yes"))
		}

		got := ComputeRegional(facts, RawStrategy{})
		if len(got) != len(want) {
			t.Fatalf("run %d: got %d points, want %d", run, len(got), len(want))
		}
		for i := range want {
			if got[i].Pincode != want[i] {
				t.Fatalf("run %d (input %v): position %d got %q, want %q", run, shuffled, i, got[i].Pincode, want[i])
			}
		}
	}
}
