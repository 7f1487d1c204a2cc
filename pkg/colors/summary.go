package colors

import (
	"fmt"
	"image"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

//ColorCluster is one row of the final report: a cluster center, its share of
//the analyzed pixels and the human-readable rendering of both
type ColorCluster struct {
	Center [3]uint8 `json:"rgb"`
	Share  float64  `json:"share"`
	Hex    string   `json:"hex"`
	Family string   `json:"family"`
}

//familyRule is one entry of the ordered classification table. The first rule
//whose match function accepts the color wins, so the order below is part of
//the contract: near-white and near-black must be tested before the channel
//dominance rules, and the yellow heuristic only sees colors the dominance
//rules rejected.
type familyRule struct {
	name  string
	match func(r, g, b int) bool
}

var familyRules = []familyRule{
	{"Putih/Terang", func(r, g, b int) bool { return r > 200 && g > 200 && b > 200 }},
	{"Hitam/Gelap", func(r, g, b int) bool { return r < 50 && g < 50 && b < 50 }},
	{"Merah", func(r, g, b int) bool { return r > g+40 && r > b+40 }},
	{"Hijau", func(r, g, b int) bool { return g > r+40 && g > b+40 }},
	{"Biru", func(r, g, b int) bool { return b > r+40 && b > g+40 }},
	{"Kuning", func(r, g, b int) bool { return r > 150 && g > 150 && b < 100 }},
}

//fallback family when no rule matches
const familyGray = "Abu-abu"

//Family classifies a cluster center into a coarse color family
func Family(rgb [3]uint8) string {
	r, g, b := int(rgb[0]), int(rgb[1]), int(rgb[2])
	for _, rule := range familyRules {
		if rule.match(r, g, b) {
			return rule.name
		}
	}
	return familyGray
}

//HexCode formats a color as lowercase #rrggbb. Pure function of its input.
func HexCode(rgb [3]uint8) string {
	c := colorful.Color{
		R: float64(rgb[0]) / 255.0,
		G: float64(rgb[1]) / 255.0,
		B: float64(rgb[2]) / 255.0,
	}
	return c.Hex()
}

//ParseHex is the inverse of HexCode
func ParseHex(s string) ([3]uint8, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return [3]uint8{}, fmt.Errorf("ParseHex: invalid hex code '%s', got '%v'", s, err)
	}
	r, g, b := c.RGB255()
	return [3]uint8{r, g, b}, nil
}

//Summarize turns raw cluster groups into the final report rows: population
//shares in percent (summing to 100 within rounding), hex codes and family
//labels, sorted descending by share. The sort is stable so ties keep the
//input cluster order.
func Summarize(groups []Group) []ColorCluster {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	if total == 0 {
		return nil
	}

	result := make([]ColorCluster, 0, len(groups))
	for _, g := range groups {
		result = append(result, ColorCluster{
			Center: g.Center,
			Share:  float64(g.Count) / float64(total) * 100.0,
			Hex:    HexCode(g.Center),
			Family: Family(g.Center),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Share > result[j].Share
	})

	return result
}

//Analyze runs the whole downsample -> cluster -> summarize pipeline over a
//decoded image. Callers that need a repeatable answer for the same input go
//through Cache instead of calling this twice.
func Analyze(img image.Image, k int, factor float64, restarts int) ([]ColorCluster, error) {
	small, err := Downsample(img, factor)
	if err != nil {
		return nil, err
	}

	groups, err := Cluster(Pixels(small), k, restarts)
	if err != nil {
		return nil, err
	}

	return Summarize(groups), nil
}
