package beatmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

const (
	earlyVersionOffset = 0.024
	defaultBeatLength  = 0.5
)

var ErrInvalidHeader = errors.New("not an osu! beatmap")

type section int

const (
	secNone section = iota
	secGeneral
	secMetadata
	secDifficulty
	secEvents
	secTimingPoints
	secHitObjects
)

type timingPoint struct {
	time       float64
	beatLength float64 // seconds, only meaningful when uninherited
	velocity   float64 // slider velocity multiplier
	inherited  bool
}

// DecodeFile opens and decodes a .osu file. The path is kept so that audio
// and background filenames can be resolved later.
func DecodeFile(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open beatmap %s: %w", path, err)
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode beatmap %s: %w", path, err)
	}
	b.Path = path
	return b, nil
}

// Decode parses an osu! standard beatmap. Spinners and mania holds are not
// playable objects here and are dropped.
func Decode(r io.Reader) (*Beatmap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var header string
	for sc.Scan() {
		header = strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if header != "" {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	const prefix = "osu file format v"
	if !strings.HasPrefix(strings.ToLower(header), prefix) {
		return nil, fmt.Errorf("%w: header %q", ErrInvalidHeader, header)
	}
	version, err := strconv.Atoi(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return nil, fmt.Errorf("%w: version in %q", ErrInvalidHeader, header)
	}

	b := &Beatmap{
		FormatVersion: version,
		SampleSet:     SampleNormal,
		SampleVolume:  1,
		Difficulty: Difficulty{
			OverallDifficulty: 5,
			CircleSize:        5,
			ApproachRate:      -1,
			SliderMultiplier:  1.4,
			SliderTickRate:    1,
		},
	}
	offset := 0.0
	if version < 5 {
		offset = earlyVersionOffset
	}

	var (
		timing []timingPoint
		lines  []string
		sec    = secNone
		lineNo = 1
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sec = parseSection(line)
			continue
		}
		switch sec {
		case secGeneral:
			decodeGeneral(b, line)
		case secMetadata:
			decodeMetadata(b, line)
		case secDifficulty:
			decodeDifficulty(b, line)
		case secEvents:
			decodeEvent(b, line)
		case secTimingPoints:
			tp, err := parseTimingPoint(line, offset)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			timing = append(timing, tp)
		case secHitObjects:
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(timing, func(i, j int) bool { return timing[i].time < timing[j].time })
	b.deriveDifficulty()

	hits := make([]Hit, 0, len(lines))
	for _, line := range lines {
		h, ok, err := parseHitObject(line, offset, b, timing)
		if err != nil {
			return nil, fmt.Errorf("hit object %q: %w", line, err)
		}
		if ok {
			hits = append(hits, h)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Time < hits[j].Time })
	b.SetHits(hits)
	return b, nil
}

func parseSection(line string) section {
	switch strings.ToLower(line) {
	case "[general]":
		return secGeneral
	case "[metadata]":
		return secMetadata
	case "[difficulty]":
		return secDifficulty
	case "[events]":
		return secEvents
	case "[timingpoints]":
		return secTimingPoints
	case "[hitobjects]":
		return secHitObjects
	}
	return secNone
}

func splitKeyValue(line string) (string, string) {
	k, v, _ := strings.Cut(line, ":")
	return strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v)
}

func decodeGeneral(b *Beatmap, line string) {
	k, v := splitKeyValue(line)
	switch k {
	case "audiofilename":
		b.AudioFilename = standardisePath(v)
	case "audioleadin":
		b.Difficulty.AudioLeadIn = parseFloat(v, 0) / 1000
	case "sampleset":
		if s := ParseSampleSet(v); s != SampleAuto {
			b.SampleSet = s
		}
	case "samplevolume":
		b.SampleVolume = clamp(parseFloat(v, 100)/100, 0, 1)
	}
}

func decodeMetadata(b *Beatmap, line string) {
	k, v := splitKeyValue(line)
	switch k {
	case "title":
		b.Metadata.Title = v
	case "titleunicode":
		b.Metadata.TitleUnicode = v
	case "artist":
		b.Metadata.Artist = v
	case "artistunicode":
		b.Metadata.ArtistUnicode = v
	case "creator":
		b.Metadata.Creator = v
	case "version":
		b.Metadata.Version = v
	case "source":
		b.Metadata.Source = v
	}
}

func decodeDifficulty(b *Beatmap, line string) {
	k, v := splitKeyValue(line)
	d := &b.Difficulty
	switch k {
	case "overalldifficulty":
		d.OverallDifficulty = parseFloat(v, 5)
	case "circlesize":
		d.CircleSize = parseFloat(v, 5)
	case "approachrate":
		d.ApproachRate = parseFloat(v, 5)
	case "slidermultiplier":
		d.SliderMultiplier = parseFloat(v, 1.4)
	case "slidertickrate":
		d.SliderTickRate = parseFloat(v, 1)
	}
}

// decodeEvent only cares about the background line: 0,0,"file",x,y
func decodeEvent(b *Beatmap, line string) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return
	}
	if kind := strings.TrimSpace(parts[0]); kind != "0" && kind != "Background" {
		return
	}
	b.BackgroundFilename = standardisePath(strings.Trim(strings.TrimSpace(parts[2]), `"`))
}

// deriveDifficulty computes the gameplay values from the raw .osu ones.
func (b *Beatmap) deriveDifficulty() {
	d := &b.Difficulty
	if d.ApproachRate < 0 {
		// Old beatmaps share one value for both.
		d.ApproachRate = d.OverallDifficulty
	}
	d.Leniency = math.Max(0.02, 0.14-0.008*d.OverallDifficulty)
	d.CircleRadius = math.Max(1, 54.4-4.48*d.CircleSize)
	if d.ApproachRate < 5 {
		d.ApproachTime = 1.8 - 0.12*d.ApproachRate
	} else {
		d.ApproachTime = 1.2 - 0.15*(d.ApproachRate-5)
	}
}

func parseTimingPoint(line string, offset float64) (timingPoint, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return timingPoint{}, fmt.Errorf("timing point needs at least 2 fields: %q", line)
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return timingPoint{}, fmt.Errorf("timing point time: %w", err)
	}
	beat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return timingPoint{}, fmt.Errorf("timing point beat length: %w", err)
	}
	tp := timingPoint{time: t/1000 + offset, velocity: 1}

	uninherited := beat > 0
	if len(parts) > 6 {
		uninherited = strings.TrimSpace(parts[6]) != "0"
	}
	if uninherited && beat > 0 {
		tp.beatLength = beat / 1000
	} else {
		tp.inherited = true
		if beat < 0 {
			tp.velocity = clamp(-100/beat, 0.1, 10)
		}
	}
	return tp, nil
}

// timingAt returns the beat length and slider velocity in effect at t.
func timingAt(timing []timingPoint, t float64) (beatLength, velocity float64) {
	beatLength, velocity = defaultBeatLength, 1
	// Objects before the first red line use its beat length.
	for _, tp := range timing {
		if !tp.inherited {
			beatLength = tp.beatLength
			break
		}
	}
	for _, tp := range timing {
		if tp.time > t {
			break
		}
		if tp.inherited {
			velocity = tp.velocity
		} else {
			beatLength = tp.beatLength
			velocity = 1
		}
	}
	return beatLength, velocity
}

// parseHitObject decodes x,y,time,type,hitSound,objectParams...,hitSample.
// The boolean is false for objects that are not circles or sliders.
func parseHitObject(line string, offset float64, b *Beatmap, timing []timingPoint) (Hit, bool, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 5 {
		return Hit{}, false, fmt.Errorf("expected at least 5 fields, got %d", len(parts))
	}
	x, errX := strconv.ParseFloat(parts[0], 64)
	y, errY := strconv.ParseFloat(parts[1], 64)
	ms, errT := strconv.ParseFloat(parts[2], 64)
	typ, errK := strconv.Atoi(parts[3])
	sound, errS := strconv.Atoi(parts[4])
	if err := errors.Join(errX, errY, errT, errK, errS); err != nil {
		return Hit{}, false, err
	}

	h := Hit{
		Time: ms/1000 + offset,
		Type: HitType(typ),
		P:    Point{x, y},
		Sound: Sound{
			Set:   b.SampleSet,
			Types: SoundType(sound) | SoundNormal,
		},
	}

	switch {
	case h.Type&TypeCircle != 0:
		if len(parts) > 5 {
			parseHitSample(&h.Sound, parts[5])
		}
	case h.Type&TypeSlider != 0:
		if len(parts) < 8 {
			return Hit{}, false, fmt.Errorf("slider expects at least 8 fields, got %d", len(parts))
		}
		if err := parseSlider(&h, parts[5:], b, timing); err != nil {
			return Hit{}, false, err
		}
		if len(parts) > 10 {
			parseHitSample(&h.Sound, parts[10])
		}
	default:
		return Hit{}, false, nil
	}
	if h.Sound.AdditionSet == SampleAuto {
		h.Sound.AdditionSet = h.Sound.Set
	}
	return h, true, nil
}

// parseSlider decodes curveType|curvePoints,slides,length.
func parseSlider(h *Hit, params []string, b *Beatmap, timing []timingPoint) error {
	curve := strings.Split(params[0], "|")
	if len(curve[0]) == 0 {
		return errors.New("empty slider curve")
	}
	control := []Point{h.P}
	for _, cp := range curve[1:] {
		xs, ys, ok := strings.Cut(cp, ":")
		if !ok {
			return fmt.Errorf("bad curve point %q", cp)
		}
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if err := errors.Join(errX, errY); err != nil {
			return fmt.Errorf("bad curve point %q: %w", cp, err)
		}
		control = append(control, Point{x, y})
	}
	repeat, err := strconv.Atoi(params[1])
	if err != nil {
		return fmt.Errorf("slider slides: %w", err)
	}
	length, err := strconv.ParseFloat(params[2], 64)
	if err != nil {
		return fmt.Errorf("slider length: %w", err)
	}

	beatLength, velocity := timingAt(timing, h.Time)
	pixelsPerBeat := 100 * b.Difficulty.SliderMultiplier * velocity
	h.Slider = Slider{
		Path:     NewPath(parsePathType(curve[0][0]), control, length),
		Duration: length / pixelsPerBeat * beatLength,
		Repeat:   max(repeat, 1),
	}
	return nil
}

// parseHitSample decodes normalSet:additionSet:index:volume:filename.
func parseHitSample(s *Sound, field string) {
	parts := strings.Split(field, ":")
	if len(parts) > 0 {
		if set := ParseSampleSet(parts[0]); set != SampleAuto {
			s.Set = set
		}
	}
	if len(parts) > 1 {
		s.AdditionSet = ParseSampleSet(parts[1])
	}
	if len(parts) > 2 {
		s.Index = int(parseFloat(parts[2], 0))
	}
	if len(parts) > 3 {
		s.Volume = clamp(parseFloat(parts[3], 0)/100, 0, 1)
	}
}

func standardisePath(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
