package vcf

import "fmt"

// SourceUnavailableError reports a variant file or its index that is
// missing, corrupt or unreadable. It is fatal: retrying without external
// intervention cannot succeed.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("variant source unavailable: %s: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// RegionNotFoundError reports a chromosome name with no entries in the
// index. It is distinct from an indexed-but-empty region, which yields an
// iterator with zero records and no error.
type RegionNotFoundError struct {
	Chrom string
	Err   error
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("region not found in index: %s: %v", e.Chrom, e.Err)
}

func (e *RegionNotFoundError) Unwrap() error {
	return e.Err
}

// MalformedRecordError reports a single record that violates the expected
// schema (e.g. a non-numeric depth field). Iterators return it in place of
// the record so callers can count and skip rather than abort.
type MalformedRecordError struct {
	Chrom   string
	Pos     int64
	Message string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at %s:%d: %s", e.Chrom, e.Pos, e.Message)
}
