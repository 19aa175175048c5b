package vcf

import (
	"context"
	"fmt"
)

// MaxChromEnd is the largest end coordinate used for whole-chromosome
// queries. Tabix bins cover positions below 2^29, which comfortably
// exceeds the longest human chromosome.
const MaxChromEnd = 1<<29 - 1

// Region is a coordinate range on one chromosome. Start is 0-based,
// End exclusive, matching tabix query conventions.
type Region struct {
	chrom string
	start uint32
	end   uint32
}

// NewRegion creates a region covering [start, end) on chrom.
func NewRegion(chrom string, start, end uint32) Region {
	return Region{chrom: chrom, start: start, end: end}
}

// WholeChrom creates a region spanning an entire chromosome.
func WholeChrom(chrom string) Region {
	return Region{chrom: chrom, start: 0, end: MaxChromEnd}
}

func (r Region) Chrom() string { return r.chrom }
func (r Region) Start() uint32 { return r.start }
func (r Region) End() uint32   { return r.end }

func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.chrom, r.start, r.end)
}

// WithChrom returns a copy of the region on a different chromosome name.
// Used to reconcile "chr1" and "1" naming styles between region lists and
// the indexed file.
func (r Region) WithChrom(chrom string) Region {
	r.chrom = chrom
	return r
}

// Iterator yields records for one region query.
// Next returns (nil, nil) when there are no more records, and a
// *MalformedRecordError in place of a record that could not be decoded.
type Iterator interface {
	Next() (*Record, error)
	Close() error
}

// Source is a coordinate-indexed variant store. Queries are random access
// through the index, bounded by the size of the requested region.
// Implementations must support concurrent Query calls.
type Source interface {
	// Query returns an iterator over records in the region, in
	// coordinate order. It fails with *RegionNotFoundError when the
	// chromosome has no index entries.
	Query(ctx context.Context, region Region) (Iterator, error)

	// HasChrPrefix reports whether the store names chromosomes with a
	// "chr" prefix ("chr1") rather than bare ("1").
	HasChrPrefix() bool

	Close() error
}
