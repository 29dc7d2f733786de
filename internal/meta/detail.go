package meta

import "math"

// Detail is everything the side panel shows for a locked region.
type Detail struct {
	Key          string
	Name         string
	Cluster      int
	ClusterLabel string
	Color        string
	Score        *float64
	Bar          float64
	Features     []string
}

// BuildDetail looks the region up by name, then by key.
func BuildDetail(key, name string, cluster int, label, color string, m Metrics, a Aliases) Detail {
	d := Detail{Key: key, Name: name, Cluster: cluster, ClusterLabel: label, Color: color}
	if d.Name == "" {
		d.Name = key
	}
	e, ok := m[d.Name]
	if !ok {
		e = m[key]
	}
	if e.Score != nil && !math.IsNaN(*e.Score) && !math.IsInf(*e.Score, 0) {
		s := *e.Score
		d.Score = &s
		d.Bar = max(0, min(1, (s+1)/2))
	}
	for _, f := range e.Features {
		d.Features = append(d.Features, a.Prettify(f))
	}
	if len(d.Features) == 0 {
		d.Features = []string{"–"}
	}
	return d
}
