package vcf

import "strings"

// Variant represents a single record from a VCF file.
type Variant struct {
	Chrom  string // Chromosome name (e.g., "MN908947.3", "chr12")
	Pos    int64  // 1-based genomic position
	Ref    string // Reference allele
	Alt    string // Alternate allele(s), comma separated
	Filter string // Filter status (PASS, "." or filter names)
}

// Start returns the 0-based start coordinate of the variant.
func (v *Variant) Start() int64 {
	return v.Pos - 1
}

// Alts returns the alternate alleles.
func (v *Variant) Alts() []string {
	return strings.Split(v.Alt, ",")
}

// IsSNV returns true if the reference and every alternate allele are a
// single base.
func (v *Variant) IsSNV() bool {
	if len(v.Ref) != 1 {
		return false
	}
	for _, alt := range v.Alts() {
		if len(alt) != 1 || alt == "*" || alt == "." {
			return false
		}
	}
	return true
}

// IsPass reports whether the record passed all filters. A missing FILTER
// value (".") counts as passing.
func (v *Variant) IsPass() bool {
	return v.Filter == "PASS" || v.Filter == "."
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	return NormalizeChrom(v.Chrom)
}

// NormalizeChrom strips a leading "chr" so that "chr1" and "1" compare equal.
func NormalizeChrom(chrom string) string {
	if len(chrom) > 3 && chrom[:3] == "chr" {
		return chrom[3:]
	}
	return chrom
}
