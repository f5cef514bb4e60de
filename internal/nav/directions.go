package nav

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Direction synthesis parameters.
const (
	// turnAngleThreshold is the minimum bearing change, in degrees, that
	// counts as a turn rather than corridor drift.
	turnAngleThreshold = 45.0

	// landmarkRadius bounds the booth search around a turn vertex.
	landmarkRadius = 150.0

	// maxSummaryTurns caps how many turns the spoken summary mentions.
	maxSummaryTurns = 4

	// walkingSpeed is the nominal pace in distance units per second.
	walkingSpeed = 1.4
)

// DirectionStep is one entry of a turn-by-turn instruction list. Distance is
// cumulative from the start of the route.
type DirectionStep struct {
	Step     int     `json:"step"`
	Action   string  `json:"action"`
	Distance float64 `json:"distance"`
	Turn     string  `json:"turn,omitempty"`
	Landmark string  `json:"landmark,omitempty"`
}

// SmoothPath returns the path unmodified. Straight-line shortcutting is
// deliberately disabled: without an obstacle map a shortcut can cross walls,
// so the raw graph path is the only safe geometry to hand out.
func SmoothPath(path []Node) []Node {
	return path
}

// bearing returns the direction of travel from a to b in degrees.
func bearing(a, b orb.Point) float64 {
	return math.Atan2(b[1]-a[1], b[0]-a[0]) * 180 / math.Pi
}

// wrapAngle normalizes a bearing delta to [-180,180].
func wrapAngle(d float64) float64 {
	for d > 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return d
}

type turn struct {
	index    int // vertex index within the path
	dir      string
	landmark string
}

// detectTurns registers a turn wherever the bearing change between
// consecutive segments exceeds the threshold. Positive deltas are clockwise,
// read as right turns in image coordinates.
func detectTurns(path []Node, booths []Node) []turn {
	var turns []turn
	for i := 1; i < len(path)-1; i++ {
		in := bearing(path[i-1].Position, path[i].Position)
		out := bearing(path[i].Position, path[i+1].Position)
		delta := wrapAngle(out - in)
		if math.Abs(delta) <= turnAngleThreshold {
			continue
		}
		dir := "left"
		if delta > 0 {
			dir = "right"
		}
		turns = append(turns, turn{
			index:    i,
			dir:      dir,
			landmark: nearestLandmark(path[i].Position, booths),
		})
	}
	return turns
}

// nearestLandmark picks the closest booth within landmarkRadius of a turn
// vertex, deduplicated by display name.
func nearestLandmark(at orb.Point, booths []Node) string {
	type hit struct {
		name string
		dist float64
	}
	var hits []hit
	seen := make(map[string]bool)
	for _, b := range booths {
		if b.Name == "" || seen[b.Name] {
			continue
		}
		d := planar.Distance(at, b.Position)
		if d > landmarkRadius {
			continue
		}
		seen[b.Name] = true
		hits = append(hits, hit{name: b.Name, dist: d})
	}
	if len(hits) == 0 {
		return ""
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	return hits[0].name
}

// SynthesizeDirections converts a geometric path into structured steps and a
// natural-language summary. booths supplies landmark candidates and usually
// comes from the same graph the path was found on.
func SynthesizeDirections(path []Node, booths []Node) ([]DirectionStep, string) {
	if len(path) == 0 {
		return nil, ""
	}

	dest := path[len(path)-1].Name
	if dest == "" {
		dest = "your destination"
	}

	turns := detectTurns(path, booths)
	steps := buildSteps(path, turns, dest)
	summary := buildSummary(turns, dest)
	return steps, summary
}

func buildSteps(path []Node, turns []turn, dest string) []DirectionStep {
	startName := path[0].Name
	if startName == "" {
		startName = "start location"
	}

	steps := []DirectionStep{{Step: 1, Action: fmt.Sprintf("Start at %s", startName)}}

	cumulative := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		cumulative[i] = cumulative[i-1] + planar.Distance(path[i-1].Position, path[i].Position)
	}

	for _, t := range turns {
		action := fmt.Sprintf("Turn %s", t.dir)
		if t.landmark != "" {
			action = fmt.Sprintf("Turn %s near %s", t.dir, t.landmark)
		}
		steps = append(steps, DirectionStep{
			Step:     len(steps) + 1,
			Action:   action,
			Distance: cumulative[t.index],
			Turn:     t.dir,
			Landmark: t.landmark,
		})
	}

	steps = append(steps, DirectionStep{
		Step:     len(steps) + 1,
		Action:   fmt.Sprintf("Arrive at %s", dest),
		Distance: cumulative[len(path)-1],
	})
	return steps
}

func buildSummary(turns []turn, dest string) string {
	switch len(turns) {
	case 0:
		return fmt.Sprintf("walk straight to %s", dest)
	case 1:
		t := turns[0]
		if t.landmark != "" {
			return fmt.Sprintf("turn %s (near %s) and continue to %s", t.dir, t.landmark, dest)
		}
		return fmt.Sprintf("turn %s and continue to %s", t.dir, dest)
	case 2:
		return fmt.Sprintf("turn %s, then %s to %s", turns[0].dir, turns[1].dir, dest)
	}

	if len(turns) > maxSummaryTurns {
		turns = turns[:maxSummaryTurns]
	}

	// Merge consecutive same-direction turns: "left, left" reads better as
	// "take the 2nd left".
	var phrases []string
	for i := 0; i < len(turns); {
		j := i
		for j+1 < len(turns) && turns[j+1].dir == turns[i].dir {
			j++
		}
		run := j - i + 1
		last := turns[j]
		var phrase string
		if run == 1 {
			phrase = fmt.Sprintf("turn %s", last.dir)
		} else {
			phrase = fmt.Sprintf("take the %s %s", getOrdinal(run), last.dir)
		}
		if last.landmark != "" {
			phrase += fmt.Sprintf(" at %s", last.landmark)
		}
		phrases = append(phrases, phrase)
		i = j + 1
	}

	sentence := strings.Join(phrases, ", then ") + fmt.Sprintf(" to %s", dest)
	return strings.ToUpper(sentence[:1]) + sentence[1:]
}

// getOrdinal renders 1 as "1st", 2 as "2nd", 11 as "11th", 21 as "21st".
func getOrdinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
		// teens always take "th"
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// EstimateWalkSeconds converts a route distance into seconds at nominal
// walking pace. unitScale converts coordinate units to meters; pass 1 when
// coordinates are already metric.
func EstimateWalkSeconds(distance, unitScale float64) int {
	if distance <= 0 || unitScale <= 0 {
		return 0
	}
	return int(math.Round(distance * unitScale / walkingSpeed))
}
