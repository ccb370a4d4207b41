package contract

const (
	ChartState   = "state"
	ChartCulture = "culture"
	ChartLandUse = "landUse"
)

// ChartEntry is one raw data point. Charts are not reduced here, the
// rendering layer groups entries by Category itself.
type ChartEntry struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type Chart struct {
	Type  string        `json:"type"`
	Title string        `json:"title"`
	Data  []*ChartEntry `json:"data"`
}

type Summary struct {
	Quantity  int      `json:"quantity"`
	AreaTotal float64  `json:"areaTotal"`
	Charts    []*Chart `json:"charts"`
}

type DashboardResponse struct {
	Status           string      `json:"status"`
	Error            string      `json:"error,omitempty"`
	Producers        []*Producer `json:"producers"`
	OrderedProducers []*Producer `json:"orderedProducers"`
	*Summary
}
