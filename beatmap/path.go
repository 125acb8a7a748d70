package beatmap

import (
	"math"
	"sort"
)

// Point is a position in beatmap space (512x384 osu! pixels).
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// PathType is the curve family of a slider.
type PathType int

const (
	PathLinear PathType = iota
	PathPerfect
	PathBezier
	PathCatmull
)

func parsePathType(c byte) PathType {
	switch c {
	case 'L':
		return PathLinear
	case 'P':
		return PathPerfect
	case 'C':
		return PathCatmull
	}
	return PathBezier
}

const (
	bezierToleranceSq = 0.25 * 0.25
	arcTolerance      = 0.1
	catmullDetail     = 50
)

// Path is a slider curve approximated by a polyline and parametrised by
// arc length, so At(t) moves at constant speed.
type Path struct {
	Type   PathType
	points []Point
	cum    []float64
	length float64
}

// NewPath approximates the control points and clips or extends the result to
// the given pixel length. A non-positive length keeps the natural length.
func NewPath(kind PathType, control []Point, length float64) *Path {
	var poly []Point
	switch kind {
	case PathLinear:
		poly = append(poly, control...)
	case PathPerfect:
		if len(control) == 3 {
			poly = approximateArc(control[0], control[1], control[2])
		} else {
			poly = approximateSegmentedBezier(control)
		}
	case PathCatmull:
		poly = approximateCatmull(control)
	default:
		poly = approximateSegmentedBezier(control)
	}
	poly = dedupe(poly)
	if len(poly) == 0 {
		poly = []Point{{}}
	}
	p := &Path{Type: kind, points: poly}
	p.measure()
	if length > 0 {
		p.fit(length)
	}
	return p
}

// Length is the arc length of the path in beatmap pixels.
func (p *Path) Length() float64 { return p.length }

// Points returns the polyline, used to draw the slider body.
func (p *Path) Points() []Point { return p.points }

// At returns the point at fraction t of the arc length. t is clamped to [0,1].
func (p *Path) At(t float64) Point {
	if len(p.points) == 1 || p.length == 0 {
		return p.points[0]
	}
	t = math.Max(0, math.Min(1, t))
	d := t * p.length
	i := sort.SearchFloat64s(p.cum, d)
	if i <= 0 {
		return p.points[0]
	}
	if i >= len(p.points) {
		return p.points[len(p.points)-1]
	}
	seg := p.cum[i] - p.cum[i-1]
	if seg == 0 {
		return p.points[i]
	}
	return p.points[i-1].Lerp(p.points[i], (d-p.cum[i-1])/seg)
}

func (p *Path) measure() {
	p.cum = make([]float64, len(p.points))
	for i := 1; i < len(p.points); i++ {
		p.cum[i] = p.cum[i-1] + p.points[i].Dist(p.points[i-1])
	}
	p.length = p.cum[len(p.cum)-1]
}

// fit trims the polyline to length, or extends its last segment in a
// straight line when the declared length is longer than the curve.
func (p *Path) fit(length float64) {
	if len(p.points) < 2 {
		return
	}
	if length >= p.length {
		n := len(p.points)
		a, b := p.points[n-2], p.points[n-1]
		dir := b.Sub(a)
		if l := dir.Len(); l > 0 && length > p.length {
			p.points[n-1] = b.Add(dir.Scale((length - p.length) / l))
		}
		p.measure()
		return
	}
	i := sort.SearchFloat64s(p.cum, length)
	seg := p.cum[i] - p.cum[i-1]
	end := p.points[i]
	if seg > 0 {
		end = p.points[i-1].Lerp(p.points[i], (length-p.cum[i-1])/seg)
	}
	p.points = append(p.points[:i], end)
	p.measure()
}

// approximateSegmentedBezier splits the control points on repeated points
// (red anchors) and approximates each segment separately.
func approximateSegmentedBezier(control []Point) []Point {
	var out []Point
	start := 0
	for i := 1; i <= len(control); i++ {
		if i == len(control) || control[i] == control[i-1] {
			seg := control[start:i]
			if len(seg) >= 2 {
				out = append(out, approximateBezier(seg)...)
			} else if len(seg) == 1 {
				out = append(out, seg[0])
			}
			start = i
		}
	}
	return out
}

// approximateBezier subdivides with de Casteljau until each piece is flat.
func approximateBezier(cp []Point) []Point {
	var out []Point
	stack := [][]Point{cp}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if bezierFlat(cur) {
			out = append(out, cur[0])
			continue
		}
		l, r := bezierSubdivide(cur)
		stack = append(stack, r, l)
	}
	return append(out, cp[len(cp)-1])
}

func bezierFlat(cp []Point) bool {
	for i := 1; i < len(cp)-1; i++ {
		d := cp[i-1].Sub(cp[i].Scale(2)).Add(cp[i+1])
		if d.X*d.X+d.Y*d.Y > bezierToleranceSq {
			return false
		}
	}
	return true
}

func bezierSubdivide(cp []Point) (left, right []Point) {
	n := len(cp)
	mid := make([]Point, n)
	copy(mid, cp)
	left = make([]Point, n)
	right = make([]Point, n)
	for r := 0; r < n; r++ {
		left[r] = mid[0]
		right[n-1-r] = mid[n-1-r]
		for i := 0; i < n-1-r; i++ {
			mid[i] = mid[i].Lerp(mid[i+1], 0.5)
		}
	}
	return left, right
}

func approximateCatmull(pts []Point) []Point {
	n := len(pts)
	if n < 2 {
		return append([]Point(nil), pts...)
	}
	out := make([]Point, 0, (n-1)*catmullDetail+1)
	out = append(out, pts[0])
	for i := 0; i < n-1; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, n-1)]
		for s := 1; s <= catmullDetail; s++ {
			out = append(out, catmullPoint(p0, p1, p2, p3, float64(s)/catmullDetail))
		}
	}
	return out
}

func catmullPoint(p0, p1, p2, p3 Point, t float64) Point {
	t2 := t * t
	t3 := t2 * t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b + (-a+c)*t + (2*a-5*b+4*c-d)*t2 + (-a+3*b-3*c+d)*t3)
	}
	return Point{f(p0.X, p1.X, p2.X, p3.X), f(p0.Y, p1.Y, p2.Y, p3.Y)}
}

// approximateArc walks the circle through three points, falling back to a
// straight line when they are collinear.
func approximateArc(a, b, c Point) []Point {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-9 {
		return []Point{a, c}
	}
	aSq := a.X*a.X + a.Y*a.Y
	bSq := b.X*b.X + b.Y*b.Y
	cSq := c.X*c.X + c.Y*c.Y
	center := Point{
		X: (aSq*(b.Y-c.Y) + bSq*(c.Y-a.Y) + cSq*(a.Y-b.Y)) / d,
		Y: (aSq*(c.X-b.X) + bSq*(a.X-c.X) + cSq*(b.X-a.X)) / d,
	}
	r := center.Dist(a)
	start := math.Atan2(a.Y-center.Y, a.X-center.X)
	end := math.Atan2(c.Y-center.Y, c.X-center.X)

	// Counter-clockwise when b is on the left of a->c.
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	sweep := end - start
	if cross > 0 {
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
	} else {
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
	}

	step := 2 * math.Acos(math.Max(-1, math.Min(1, 1-arcTolerance/r)))
	if step <= 0 || math.IsNaN(step) {
		step = math.Pi / 8
	}
	steps := max(int(math.Ceil(math.Abs(sweep)/step)), 2)
	out := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		angle := start + sweep*float64(i)/float64(steps)
		out = append(out, Point{center.X + r*math.Cos(angle), center.Y + r*math.Sin(angle)})
	}
	return out
}

func dedupe(pts []Point) []Point {
	if len(pts) < 2 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
