package ioadapter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteCoords persists per-vertex coordinates, one `lat lon` pair per
// line in vertex order.
func WriteCoords(w io.Writer, coords []Coord) error {
	bw := bufio.NewWriter(w)
	for _, c := range coords {
		if _, err := fmt.Fprintf(bw, "%.7f %.7f\n", c.Lat, c.Lon); err != nil {
			return fmt.Errorf("ioadapter: write coords: %w", err)
		}
	}
	return bw.Flush()
}

// ReadCoords reads n coordinate pairs written by WriteCoords.
func ReadCoords(r io.Reader, n uint32) ([]Coord, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	coords := make([]Coord, 0, n)
	for uint32(len(coords)) < n {
		var pair [2]float64
		for i := range pair {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, fmt.Errorf("ioadapter: read coords: %w", err)
				}
				return nil, fmt.Errorf("ioadapter: coords truncated at vertex %d", len(coords))
			}
			v, err := strconv.ParseFloat(sc.Text(), 64)
			if err != nil {
				return nil, fmt.Errorf("ioadapter: coords vertex %d: %w", len(coords), err)
			}
			pair[i] = v
		}
		coords = append(coords, Coord{Lat: pair[0], Lon: pair[1]})
	}
	return coords, nil
}
