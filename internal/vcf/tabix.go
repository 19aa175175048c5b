package vcf

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/brentp/bix"
	"github.com/brentp/irelate/interfaces"
	"github.com/brentp/vcfgo"
)

// TabixSource reads a block-compressed VCF through its tabix index.
// The data file and the index are treated as a single logical input: a
// missing or unreadable index is a SourceUnavailableError, never a silent
// full-scan fallback.
//
// Each Query opens an independent bix handle, so queries for different
// chromosome groups may run concurrently.
type TabixSource struct {
	path         string
	hasChrPrefix bool
}

// NewTabixSource validates the VCF/index pairing at path and detects the
// chromosome naming style from the header. The index is expected at
// path+".tbi" (or path+".csi").
func NewTabixSource(path string) (*TabixSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	if err := statIndex(path); err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}

	bx, err := bix.New(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer bx.Close()

	src := &TabixSource{path: path}
	src.hasChrPrefix = detectChrPrefix(path, bx)

	return src, nil
}

func statIndex(path string) error {
	if _, err := os.Stat(path + ".tbi"); err == nil {
		return nil
	}
	if _, err := os.Stat(path + ".csi"); err == nil {
		return nil
	}
	return fmt.Errorf("no tabix index found at %s.tbi or %s.csi", path, path)
}

// detectChrPrefix reads the chromosome naming style from the ##contig
// header lines. Headers with no contig lines fall back to probing the
// index for records under the prefixed style; a store with neither
// contig lines nor records on chr1 or chrX defaults to the bare style.
func detectChrPrefix(path string, bx *bix.Bix) bool {
	if prefixed, found := contigPrefixFromHeader(path); found {
		return prefixed
	}
	for _, chrom := range []string{"chr1", "chrX"} {
		if regionHasRecords(bx, chrom) {
			return true
		}
	}
	return false
}

// contigPrefixFromHeader scans the file's header for the first ##contig
// line. bgzf is a multi-member gzip stream, so the stdlib reader can
// decode it; plain-text VCFs are read as is.
func contigPrefixFromHeader(path string) (prefixed, found bool) {
	f, err := os.Open(path)
	if err != nil {
		return false, false
	}
	defer f.Close()

	var r io.Reader = f
	if gz, err := gzip.NewReader(f); err == nil {
		defer gz.Close()
		r = gz
	} else if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, false
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "#") {
			break
		}
		if !strings.HasPrefix(line, "##contig=") {
			continue
		}
		if id := contigID(line); id != "" {
			return strings.HasPrefix(id, "chr"), true
		}
	}
	return false, false
}

// contigID extracts the ID value from a ##contig=<ID=...,length=...> line.
func contigID(line string) string {
	i := strings.Index(line, "ID=")
	if i < 0 {
		return ""
	}
	id := line[i+len("ID="):]
	if j := strings.IndexAny(id, ",>"); j >= 0 {
		id = id[:j]
	}
	return id
}

func regionHasRecords(bx *bix.Bix, chrom string) bool {
	it, err := bx.Query(WholeChrom(chrom))
	if err != nil {
		return false
	}
	defer it.Close()
	_, err = it.Next()
	return err == nil
}

// HasChrPrefix reports whether chromosome names carry a "chr" prefix.
func (s *TabixSource) HasChrPrefix() bool {
	return s.hasChrPrefix
}

// Query returns an iterator over records overlapping the region.
func (s *TabixSource) Query(ctx context.Context, region Region) (Iterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bx, err := bix.New(s.path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: s.path, Err: err}
	}

	it, err := bx.Query(region)
	if err != nil {
		bx.Close()
		return nil, &RegionNotFoundError{Chrom: region.Chrom(), Err: err}
	}

	return &tabixIterator{bx: bx, it: it}, nil
}

// Close releases the source. Per-query handles are closed by their
// iterators, so there is nothing to release here.
func (s *TabixSource) Close() error {
	return nil
}

type tabixIterator struct {
	bx *bix.Bix
	it interfaces.RelatableIterator
}

func (t *tabixIterator) Next() (*Record, error) {
	v, err := t.it.Next()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Unwrap the irelate layers down to the vcfgo variant.
	wrap, ok := v.(interfaces.VarWrap)
	if !ok {
		return nil, &MalformedRecordError{Chrom: v.Chrom(), Message: "not a VarWrap"}
	}
	variant, ok := wrap.IVariant.(*vcfgo.Variant)
	if !ok {
		return nil, &MalformedRecordError{Chrom: v.Chrom(), Message: "not a vcfgo variant"}
	}

	if err := t.bx.VReader.Header.ParseSamples(variant); err != nil {
		return nil, &MalformedRecordError{
			Chrom:   variant.Chrom(),
			Pos:     int64(variant.Pos),
			Message: fmt.Sprintf("parse samples: %v", err),
		}
	}

	return recordFromVariant(variant)
}

func (t *tabixIterator) Close() error {
	t.it.Close()
	return t.bx.Close()
}

// recordFromVariant extracts the first sample's call, following the
// single-sample convention of personal genome VCFs.
func recordFromVariant(v *vcfgo.Variant) (*Record, error) {
	rec := &Record{
		Chrom: v.Chrom(),
		Pos:   int64(v.Pos),
		Qual:  float64(v.Quality),
	}

	if len(v.Samples) == 0 || v.Samples[0] == nil {
		return rec, nil
	}
	sample := v.Samples[0]

	rec.GT = append([]int(nil), sample.GT...)

	if raw, ok := sample.Fields["DP"]; ok && raw != "" && raw != "." {
		depth, err := strconv.Atoi(raw)
		if err != nil || depth < 0 {
			return nil, &MalformedRecordError{
				Chrom:   rec.Chrom,
				Pos:     rec.Pos,
				Message: fmt.Sprintf("non-numeric DP field %q", raw),
			}
		}
		rec.Depth = depth
		rec.HasDepth = true
	}

	return rec, nil
}
