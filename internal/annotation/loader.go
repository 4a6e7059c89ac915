// Package annotation loads CDS features from GFF3 and GTF annotation files.
package annotation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// CDSFeature is one coding-sequence record. Coordinates are 1-based and
// inclusive, as written in the annotation file.
type CDSFeature struct {
	Chrom     string
	Start     int64
	End       int64
	Strand    string
	GeneName  string
	Highlight bool
}

// DerivedY returns the chart height of the feature: +1 for the forward strand
// and -1 for the reverse strand. ok is false for any other strand value.
func (f CDSFeature) DerivedY() (y int, ok bool) {
	return strandY(f.Strand)
}

func strandY(strand string) (int, bool) {
	switch strand {
	case "+":
		return 1, true
	case "-":
		return -1, true
	}
	return 0, false
}

// LoadStats describes what Load read and skipped.
type LoadStats struct {
	Lines      int
	Features   int
	OtherTypes int
	OtherChrom int
	Unstranded int
}

// Loader reads CDS features from a GFF3 or GTF file, plain or gzipped.
type Loader struct {
	path   string
	chrom  string
	logger *zap.Logger
}

// NewLoader creates a loader for path.
func NewLoader(path string) *Loader {
	return &Loader{path: path, logger: zap.NewNop()}
}

// SetChrom restricts loading to one sequence region. Empty loads all.
func (l *Loader) SetChrom(chrom string) {
	l.chrom = chrom
}

// SetLogger sets the logger for warnings about skipped records.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Load opens the file and returns its CDS features in file order.
func (l *Loader) Load() ([]CDSFeature, LoadStats, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open annotation file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var reader io.Reader = br
	if magic, _ := br.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	features, stats, err := l.parse(reader)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", l.path, err)
	}
	if stats.Unstranded > 0 {
		l.logger.Warn("skipped CDS features without +/- strand",
			zap.String("path", l.path),
			zap.Int("count", stats.Unstranded))
	}
	return features, stats, nil
}

// parse reads GFF3/GTF content and keeps CDS rows.
func (l *Loader) parse(r io.Reader) ([]CDSFeature, LoadStats, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var stats LoadStats
	var features []CDSFeature
	wantChrom := normalizeChrom(l.chrom)

	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimRight(scanner.Text(), "\r")

		// Sequences appended to a GFF3 file end the feature section.
		if line == "##FASTA" || strings.HasPrefix(line, ">") {
			break
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			return nil, stats, &ParseError{
				Line:    stats.Lines,
				Message: fmt.Sprintf("expected 9 columns, found %d", len(fields)),
			}
		}
		if fields[2] != "CDS" {
			stats.OtherTypes++
			continue
		}
		if wantChrom != "" && normalizeChrom(fields[0]) != wantChrom {
			stats.OtherChrom++
			continue
		}

		start, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return nil, stats, &ParseError{Line: stats.Lines, Message: fmt.Sprintf("invalid start: %s", fields[3])}
		}
		end, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, stats, &ParseError{Line: stats.Lines, Message: fmt.Sprintf("invalid end: %s", fields[4])}
		}
		if end < start {
			return nil, stats, &ParseError{Line: stats.Lines, Message: fmt.Sprintf("end %d before start %d", end, start)}
		}

		strand := fields[6]
		if _, ok := strandY(strand); !ok {
			stats.Unstranded++
			continue
		}

		features = append(features, CDSFeature{
			Chrom:    fields[0],
			Start:    start,
			End:      end,
			Strand:   strand,
			GeneName: geneName(parseAttributes(fields[8])),
		})
		stats.Features++
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scan annotation: %w", err)
	}
	return features, stats, nil
}

// parseAttributes parses the ninth column in either GFF3 (key=value;...) or
// GTF (key "value"; ...) form. For repeated keys the last value wins.
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var key, value string
		if eq := strings.Index(part, "="); eq != -1 && !strings.Contains(part[:eq], " ") {
			key, value = part[:eq], part[eq+1:]
		} else if sp := strings.Index(part, " "); sp != -1 {
			key, value = part[:sp], strings.TrimSpace(part[sp+1:])
		} else {
			continue
		}

		attrs[key] = strings.Trim(value, "\"")
	}

	return attrs
}

// geneName picks the gene name from the attribute keys used by NCBI GFF3,
// Ensembl GFF3 and GENCODE GTF.
func geneName(attrs map[string]string) string {
	for _, k := range []string{"gene", "gene_name", "Name", "gene_id", "ID"} {
		if v := attrs[k]; v != "" {
			return v
		}
	}
	return ""
}

// normalizeChrom normalizes chromosome names by removing "chr" prefix.
func normalizeChrom(chrom string) string {
	if strings.HasPrefix(chrom, "chr") && len(chrom) > 3 {
		return chrom[3:]
	}
	return chrom
}

// MarkHighlighted sets Highlight on every feature whose gene is in genes.
func MarkHighlighted(features []CDSFeature, genes map[string]bool) {
	for i := range features {
		features[i].Highlight = genes[features[i].GeneName]
	}
}

// ParseError reports a malformed annotation line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("annotation parse error at line %d: %s", e.Line, e.Message)
}
