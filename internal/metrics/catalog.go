package metrics

import (
	"github.com/duke-git/lancet/v2/slice"
)

// Unit is the measurement unit of a metric.
type Unit string

const (
	UnitMillis    Unit = "ms"
	UnitKilobytes Unit = "kB"
	UnitCount     Unit = "count"
)

// PageSpeedScore is the only composite metric: its document value is a
// mapping and the sample is read from its "Total Score" field.
const (
	PageSpeedScore      = "ps_scores"
	pageSpeedTotalField = "Total Score"
)

// Descriptor describes one metric tracked per test run.
type Descriptor struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Unit  Unit   `json:"unit" yaml:"unit"`
}

// catalog is never handed out directly; callers always receive a copy.
var catalog = []Descriptor{
	{ID: "full_load_time", Title: "Full Load Time (ms)", Unit: UnitMillis},
	{ID: "requests", Title: "Total Requests", Unit: UnitCount},
	{ID: "total_size", Title: "Total Size (kB)", Unit: UnitKilobytes},
	{ID: PageSpeedScore, Title: "Page Speed Score", Unit: UnitCount},
	{ID: "onload_event", Title: "onLoad Event (ms)", Unit: UnitMillis},
	{ID: "start_render_time", Title: "Start Render Time (ms)", Unit: UnitMillis},
	{ID: "time_to_first_byte", Title: "Time to First Byte (ms)", Unit: UnitMillis},
	{ID: "total_dns_time", Title: "Total DNS Time (ms)", Unit: UnitMillis},
	{ID: "total_transfer_time", Title: "Total Transfer Time (ms)", Unit: UnitMillis},
	{ID: "total_server_time", Title: "Total Server Time (ms)", Unit: UnitMillis},
	{ID: "avg_connecting_time", Title: "Avg. Connecting Time (ms)", Unit: UnitMillis},
	{ID: "avg_blocking_time", Title: "Avg. Blocking Time (ms)", Unit: UnitMillis},
	{ID: "text_size", Title: "Text Size (kB)", Unit: UnitKilobytes},
	{ID: "media_size", Title: "Media Size (kB)", Unit: UnitKilobytes},
	{ID: "cache_size", Title: "Cache Size (kB)", Unit: UnitKilobytes},
	{ID: "redirects", Title: "Redirects", Unit: UnitCount},
	{ID: "bad_requests", Title: "Bad Requests", Unit: UnitCount},
	{ID: "domains", Title: "Domains", Unit: UnitCount},
}

// Catalog returns a copy of every known metric in catalog order.
func Catalog() []Descriptor {
	result := make([]Descriptor, len(catalog))
	copy(result, catalog)
	return result
}

// Select returns the catalog entries whose ids appear in ids, keeping
// catalog order. An empty filter selects the whole catalog and ids that
// are not in the catalog are ignored.
func Select(ids []string) []Descriptor {
	if len(ids) == 0 {
		return Catalog()
	}
	return slice.Filter(catalog, func(_ int, d Descriptor) bool {
		return slice.Contain(ids, d.ID)
	})
}

// Lookup finds a metric by id.
func Lookup(id string) (Descriptor, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// IDs returns the ids of the given descriptors.
func IDs(descriptors []Descriptor) []string {
	ids := make([]string, len(descriptors))
	for i, d := range descriptors {
		ids[i] = d.ID
	}
	return ids
}
