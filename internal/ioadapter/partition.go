package ioadapter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// ReadPartition reads one cell id per vertex, whitespace-separated, n
// values total. Every cell id must lie in [0, k).
func ReadPartition(r io.Reader, n uint32, k int) ([]uint8, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	cell := make([]uint8, 0, n)
	for sc.Scan() {
		c, err := strconv.ParseUint(sc.Text(), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("ioadapter: partition entry %d: %w", len(cell), err)
		}
		if int(c) >= k {
			return nil, fmt.Errorf("ioadapter: partition entry %d: cell %d >= %d", len(cell), c, k)
		}
		cell = append(cell, uint8(c))
		if uint32(len(cell)) == n {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ioadapter: read partition: %w", err)
	}
	if uint32(len(cell)) != n {
		return nil, fmt.Errorf("ioadapter: partition has %d entries, want %d", len(cell), n)
	}
	return cell, nil
}
