package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/TablePlan/internal/model"
)

type point struct {
	X, Y float64
}

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start point
	end   point
}

// outline is a closed polygon in drawing units.
type outline []point

func (o outline) bounds() (min, max point) {
	min = point{math.Inf(1), math.Inf(1)}
	max = point{math.Inf(-1), math.Inf(-1)}
	for _, p := range o {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// contains reports whether o's bounding box strictly encloses other's.
func (o outline) contains(other outline) bool {
	omin, omax := o.bounds()
	imin, imax := other.bounds()
	if imin == omin && imax == omax {
		return false
	}
	return imin.X >= omin.X && imin.Y >= omin.Y && imax.X <= omax.X && imax.Y <= omax.Y
}

// ImportDXF imports rooms from a DXF floor plan. Each LWPOLYLINE and each
// closed chain of LINEs is one room, sized by its bounding box in cells of
// cellSize drawing units. Loops drawn inside another loop (pillars, fixed
// furniture) are skipped. DXF carries no table counts, so every room's
// target is its capacity.
func ImportDXF(path string, cellSize float64) ImportResult {
	result := ImportResult{}
	if cellSize <= 0 {
		cellSize = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := lwPolylineToOutline(e)
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	chained, open := chainSegments(segments, 0.01)
	outlines = append(outlines, chained...)
	if open > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d open LINE chain(s)", open))
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	// Largest first, so rooms are numbered the same way on every run.
	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})

	roomNum := 0
	for i, o := range outlines {
		if nestedIn(o, outlines[:i]) {
			result.Warnings = append(result.Warnings, "Skipped shape nested inside a room")
			continue
		}

		min, max := o.bounds()
		width := int(math.Round((max.X - min.X) / cellSize))
		height := int(math.Round((max.Y - min.Y) / cellSize))
		if width <= 0 || height <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped shape smaller than one cell (%.2f x %.2f)", max.X-min.X, max.Y-min.Y))
			continue
		}

		roomNum++
		room := model.NewRoom(fmt.Sprintf("DXF Room %d", roomNum), width, height, 0)
		room.Target = room.Capacity()
		result.Rooms = append(result.Rooms, room)
	}

	return result
}

func nestedIn(o outline, larger []outline) bool {
	for _, l := range larger {
		if l.contains(o) {
			return true
		}
	}
	return false
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an outline.
// Bulges are ignored; only the bounding box matters for a room.
func lwPolylineToOutline(lw *entity.LwPolyline) outline {
	o := make(outline, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		if len(v) < 2 {
			continue
		}
		o = append(o, point{X: v[0], Y: v[1]})
	}
	if len(o) > 3 && pointsClose(o[0], o[len(o)-1], 0.01) {
		o = o[:len(o)-1]
	}
	return o
}

// chainSegments connects individual segments into closed outlines and
// returns them with the number of chains that did not close.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) ([]outline, int) {
	if len(segs) == 0 {
		return nil, 0
	}

	used := make([]bool, len(segs))
	var outlines []outline
	open := 0

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, outline(chain[:len(chain)-1]))
		} else {
			open++
		}
	}

	return outlines, open
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o outline) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}
