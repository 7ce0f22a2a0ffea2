package layout

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// Accidental clustering and placement bounds.
const (
	// ClusterGap is the step gap at which a new cluster starts.
	ClusterGap = 6

	// MaxFanningPasses caps the iterative fanning scan.
	MaxFanningPasses = 5

	// BackfillColumns is the number of candidate accidental columns.
	BackfillColumns = 5

	// BackfillWindow is the step distance within which two accidentals
	// may not share a column.
	BackfillWindow = 7

	// fanClearance is the fraction of the offset that counts as already
	// separated during fanning.
	fanClearance = 0.9
)

// AccidentalPosition is the resolved accidental column for one input pitch.
// Column 0 is the base column; higher columns are further left.
type AccidentalPosition struct {
	Pitch    string
	Index    int
	Resolved bool
	Cluster  int // -1 when the pitch is not part of any cluster
	Column   int
	X        float64
}

// ClusterMember is one accidental inside a [Cluster].
type ClusterMember struct {
	Pitch      string
	Index      int
	Step       int
	Accidental pitch.Accidental
	FanX       float64 // position after fanning, before backfill
	Column     int     // final backfill column
	Overflow   bool    // every candidate column conflicted
}

// Cluster is a run of accidentals, sorted by step, whose consecutive
// members are close enough to collide.
type Cluster struct {
	ID        int
	Members   []ClusterMember
	Passes    int  // fanning passes performed
	Converged bool // false when MaxFanningPasses was reached with shifts still happening
}

// ResolveAccidentals assigns each non-natural accidental a column left of
// baseX, at baseX - k*offset. Naturals and unknown pitches stay at baseX
// (unknown pitches report Resolved=false and X=0).
//
// Results are in input order.
func ResolveAccidentals(t *pitch.Table, pitches []string, baseX, offset float64, logger *log.Logger) []AccidentalPosition {
	out, _ := resolveAccidentals(t, pitches, baseX, offset, orDiscard(logger))
	return out
}

// Clusters returns the accidental clusters for pitches together with
// their fanning and backfill results.
func Clusters(t *pitch.Table, pitches []string, baseX, offset float64, logger *log.Logger) []Cluster {
	_, clusters := resolveAccidentals(t, pitches, baseX, offset, orDiscard(logger))
	return clusters
}

func resolveAccidentals(t *pitch.Table, pitches []string, baseX, offset float64, logger *log.Logger) ([]AccidentalPosition, []Cluster) {
	sorted, found := resolveSorted(t, pitches, logger)

	out := make([]AccidentalPosition, len(pitches))
	for i, p := range pitches {
		out[i] = AccidentalPosition{Pitch: p, Index: i, Resolved: found[i], Cluster: -1}
		if found[i] {
			out[i].X = baseX
		}
	}

	groups := clusterIndices(sorted)
	clusters := make([]Cluster, 0, len(groups))
	for id, group := range groups {
		c := Cluster{ID: id, Members: make([]ClusterMember, len(group)), Converged: true}
		for k, i := range group {
			s := sorted[i]
			c.Members[k] = ClusterMember{
				Pitch:      s.pitch,
				Index:      s.index,
				Step:       s.step,
				Accidental: s.accidental,
				FanX:       baseX,
			}
		}

		if len(c.Members) < 2 {
			logger.Debug("single accidental cluster, no fanning", "cluster", id)
		} else {
			c.Passes, c.Converged = fan(c.Members, baseX, offset)
			logger.Debug("fanning stabilized", "cluster", id, "passes", c.Passes, "converged", c.Converged)
			backfill(c.Members)
		}

		for _, m := range c.Members {
			if m.Overflow {
				logger.Debug("no free accidental column, using base", "pitch", m.Pitch, "cluster", id)
			}
			out[m.Index].Cluster = id
			out[m.Index].Column = m.Column
			out[m.Index].X = baseX - float64(m.Column)*offset
		}
		clusters = append(clusters, c)
	}
	return out, clusters
}

// clusterIndices groups the non-natural entries of sorted into clusters,
// returned as indices into sorted.
func clusterIndices(sorted []stepped) [][]int {
	var groups [][]int
	var current []int
	for i, s := range sorted {
		if s.accidental.IsNatural() {
			continue
		}
		if len(current) == 0 {
			current = append(current, i)
			continue
		}
		prev := sorted[current[len(current)-1]]
		if abs(s.step-prev.step) < ClusterGap {
			current = append(current, i)
		} else {
			groups = append(groups, current)
			current = []int{i}
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// fan pushes later members left of earlier ones until no close pair
// shares a position or MaxFanningPasses is reached.
func fan(members []ClusterMember, baseX, offset float64) (passes int, converged bool) {
	for i := range members {
		members[i].FanX = baseX
	}

	changed := true
	for changed && passes < MaxFanningPasses {
		changed = false
		passes++
		for i := range members {
			a := members[i]
			for j := i + 1; j < len(members); j++ {
				b := &members[j]
				if b.FanX < a.FanX-offset*fanClearance {
					continue
				}
				if abs(b.Step-a.Step) < ClusterGap {
					b.FanX = a.FanX - offset
					changed = true
				}
			}
		}
	}
	return passes, !changed
}

// backfill gives each member, in step order, the rightmost column not
// already taken by an earlier member within BackfillWindow steps.
func backfill(members []ClusterMember) {
	type placed struct{ column, step int }
	done := make([]placed, 0, len(members))

	for i := range members {
		m := &members[i]
		m.Column = 0
		m.Overflow = true
		for col := 0; col < BackfillColumns; col++ {
			conflict := false
			for _, p := range done {
				if p.column == col && abs(p.step-m.Step) <= BackfillWindow {
					conflict = true
					break
				}
			}
			if !conflict {
				m.Column = col
				m.Overflow = false
				break
			}
		}
		done = append(done, placed{column: m.Column, step: m.Step})
	}
}
