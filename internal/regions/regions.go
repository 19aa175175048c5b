// Package regions loads the genomic regions the pipeline queries.
//
// By default every chromosome (1-22, X, Y) is scanned whole. A region
// file can restrict the scan, typically to exclude the pseudoautosomal
// regions where X and Y behave like autosomes.
package regions

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/inodb/sexcheck/internal/vcf"
)

func init() {
	// Region files are tab-separated with a CHROM/START/STOP header row.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		return r
	})
}

type regionRow struct {
	Chrom string `csv:"CHROM"`
	Start uint32 `csv:"START"`
	Stop  uint32 `csv:"STOP"`
}

// Load reads a tab-separated region file with CHROM, START and STOP
// columns (BED-style half-open coordinates) into query regions.
func Load(path string) ([]vcf.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region file: %w", err)
	}
	defer f.Close()

	var rows []regionRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, fmt.Errorf("parse region file %s: %w", path, err)
	}

	out := make([]vcf.Region, 0, len(rows))
	for i, row := range rows {
		if row.Chrom == "" {
			return nil, fmt.Errorf("parse region file %s: empty CHROM in row %d", path, i+1)
		}
		if row.Stop <= row.Start {
			return nil, fmt.Errorf("parse region file %s: STOP <= START in row %d", path, i+1)
		}
		out = append(out, vcf.NewRegion(row.Chrom, row.Start, row.Stop))
	}

	return out, nil
}

// Defaults returns whole-chromosome regions for chromosomes 1-22, X and Y.
func Defaults() []vcf.Region {
	out := make([]vcf.Region, 0, 24)
	for i := 1; i <= 22; i++ {
		out = append(out, vcf.WholeChrom(fmt.Sprintf("%d", i)))
	}
	out = append(out, vcf.WholeChrom("X"), vcf.WholeChrom("Y"))
	return out
}
