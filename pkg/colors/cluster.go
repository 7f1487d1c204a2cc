package colors

import (
	"fmt"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

//Group is one k-means cluster: its representative color and how many of the
//analyzed pixels were assigned to it
type Group struct {
	Center [3]uint8
	Count  int
}

type rgbObservation struct {
	r, g, b float64
}

func (o rgbObservation) Coordinates() clusters.Coordinates {
	return clusters.Coordinates{o.r, o.g, o.b}
}

func (o rgbObservation) Distance(point clusters.Coordinates) float64 {
	dr := o.r - point[0]
	dg := o.g - point[1]
	db := o.b - point[2]
	return dr*dr + dg*dg + db*db
}

//Cluster partitions pixels into at most k groups. It runs the partition
//'restarts' times and keeps the one with the lowest total within-cluster
//distance, which damps the sensitivity of k-means to its random
//initialization. The library re-seeds its PRNG from the wall clock on every
//partition, so two direct calls on the same input may still differ slightly:
//repeatability of a (image, k, factor) combination comes from the analysis
//Cache, which replays the stored result instead of clustering again.
//
//When the image has no more distinct colors than k, clustering is skipped
//entirely and every distinct color becomes its own group. That keeps the
//result exact for flat images and avoids feeding k-means fewer unique points
//than clusters.
func Cluster(pixels [][3]uint8, k, restarts int) ([]Group, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("Cluster: no pixels to cluster")
	}
	if k < 1 {
		return nil, fmt.Errorf("Cluster: cluster count %d out of range", k)
	}
	if restarts < 1 {
		restarts = 1
	}

	if groups, ok := distinctGroups(pixels, k); ok {
		return groups, nil
	}

	//the library seeds initial centers inside the unit cube, so channels are
	//normalized to [0,1] for clustering and scaled back afterwards
	observations := make(clusters.Observations, 0, len(pixels))
	for _, p := range pixels {
		observations = append(observations, rgbObservation{
			float64(p[0]) / 255.0,
			float64(p[1]) / 255.0,
			float64(p[2]) / 255.0,
		})
	}

	var best clusters.Clusters
	bestScore := math.Inf(1)

	for i := 0; i < restarts; i++ {
		km := kmeans.New()
		partition, err := km.Partition(observations, k)
		if err != nil {
			return nil, fmt.Errorf("Cluster: partition failed, got '%v'", err)
		}

		score := withinClusterDistance(partition)
		if score < bestScore {
			bestScore = score
			best = partition
		}
	}

	groups := make([]Group, 0, len(best))
	for _, c := range best {
		groups = append(groups, Group{
			Center: centerRGB(c.Center),
			Count:  len(c.Observations),
		})
	}

	return groups, nil
}

//distinctGroups returns one group per distinct color when the image carries
//at most k of them. The groups keep first-appearance order.
func distinctGroups(pixels [][3]uint8, k int) ([]Group, bool) {
	counts := make(map[[3]uint8]int)
	order := make([][3]uint8, 0, k+1)

	for _, p := range pixels {
		if _, seen := counts[p]; !seen {
			if len(order) == k {
				return nil, false //more distinct colors than clusters, k-means it is
			}
			order = append(order, p)
		}
		counts[p]++
	}

	groups := make([]Group, 0, len(order))
	for _, c := range order {
		groups = append(groups, Group{Center: c, Count: counts[c]})
	}

	return groups, true
}

func withinClusterDistance(partition clusters.Clusters) float64 {
	total := 0.0
	for _, c := range partition {
		for _, o := range c.Observations {
			total += o.Distance(c.Center)
		}
	}
	return total
}

func centerRGB(center clusters.Coordinates) [3]uint8 {
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v := math.Round(center[i] * 255.0)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		rgb[i] = uint8(v)
	}
	return rgb
}
