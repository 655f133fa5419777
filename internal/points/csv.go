package points

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/aharden/slink/internal/slinkerr"
)

// LoadCSV reads a point dataset: UTF-8 text, one point per line,
// coordinates separated by commas, no header. Empty trailing lines are
// ignored. Only CSV ingestion and synthetic generation live here — this
// is the external collaborator spec.md keeps out of the clustering core,
// so LoadCSV is never imported by internal/slink.
//
// Malformed numeric fields return an InvalidInput error naming the
// offending 1-based line number. Like the reference loader, a line must
// carry at least two comma-separated fields; any fields beyond the
// second are kept, so datasets with K > 2 round-trip.
func LoadCSV(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, slinkerr.Wrap(slinkerr.IoError, "opening point file "+path, err)
	}
	defer f.Close()
	return parseCSV(f, path)
}

func parseCSV(r io.Reader, name string) (Set, error) {
	var pts []Point
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			return Set{}, slinkerr.AtLine(slinkerr.InvalidInput, name, lineNo,
				"expected at least 2 comma-separated fields")
		}
		p := make(Point, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return Set{}, slinkerr.AtLine(slinkerr.InvalidInput, name, lineNo,
					"malformed numeric field "+strconv.Quote(f))
			}
			p[i] = v
		}
		pts = append(pts, p)
	}
	if err := scanner.Err(); err != nil {
		return Set{}, slinkerr.Wrap(slinkerr.IoError, "reading point file "+name, err)
	}

	set, ok := NewSet(pts)
	if !ok {
		if len(pts) == 0 {
			return Set{}, slinkerr.New(slinkerr.InvalidInput, "point file "+name+" is empty")
		}
		return Set{}, slinkerr.New(slinkerr.InvalidInput, "point file "+name+" mixes points of different dimensions")
	}
	return set, nil
}

// Synthetic generates n pseudo-random 2-D points for benchmark scenarios.
// It is a convenience generator outside the clustering core;
// internal/slink never calls it.
func Synthetic(n int, seed int64) Set {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{rng.Float64() * 100, rng.Float64() * 100}
	}
	set, _ := NewSet(pts)
	return set
}
