package vcf

import "fmt"

// PositionFilter selects which records contribute a position.
type PositionFilter struct {
	// Chrom keeps only records on this chromosome ("chr" prefix ignored).
	// Empty keeps every record.
	Chrom string

	// SNVOnly keeps only single nucleotide variants.
	SNVOnly bool

	// PassOnly keeps only records whose FILTER is PASS or ".".
	PassOnly bool
}

// PositionStats describes what LoadPositions read and skipped.
type PositionStats struct {
	Records     int
	OtherChrom  int
	NotSNV      int
	NotPass     int
	Chromosomes map[string]int
}

// LoadPositions reads every record from p and returns the 0-based start
// position of each record passing the filter, in file order.
func LoadPositions(p VariantParser, f PositionFilter) ([]int64, PositionStats, error) {
	stats := PositionStats{Chromosomes: make(map[string]int)}
	want := NormalizeChrom(f.Chrom)

	var positions []int64
	for {
		v, err := p.Next()
		if err != nil {
			return nil, stats, fmt.Errorf("read variant: %w", err)
		}
		if v == nil {
			break
		}
		stats.Records++
		stats.Chromosomes[v.Chrom]++

		if want != "" && v.NormalizeChrom() != want {
			stats.OtherChrom++
			continue
		}
		if f.PassOnly && !v.IsPass() {
			stats.NotPass++
			continue
		}
		if f.SNVOnly && !v.IsSNV() {
			stats.NotSNV++
			continue
		}
		positions = append(positions, v.Start())
	}
	return positions, stats, nil
}

// LoadPositionsFromFile opens path and calls LoadPositions.
func LoadPositionsFromFile(path string, f PositionFilter) ([]int64, PositionStats, error) {
	p, err := NewParser(path)
	if err != nil {
		return nil, PositionStats{}, err
	}
	defer p.Close()

	positions, stats, err := LoadPositions(p, f)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	return positions, stats, nil
}
