// Package archive exports and imports order history as gzip-compressed JSONL
// files, one order object per line. Import tolerates duplicates: an order id
// already present in the repository, or repeated across archive files, is
// skipped rather than reported as an error.
package archive

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/ashraf-koshary/orderdesk/internal/domain/order"
	"github.com/ashraf-koshary/orderdesk/internal/storage/local"
)

const (
	// bloomCapacity sizes the duplicate pre-filter. Archives are expected to
	// stay far below this; the filter only has to keep the exact-set lookups
	// off the hot path.
	bloomCapacity = 1_000_000
	bloomFPR      = 0.001

	// maxLineBytes bounds a single archived order line.
	maxLineBytes = 1 << 20
)

// Export streams the given orders into w as pgzip-compressed JSONL.
func Export(w io.Writer, orders []order.Order) error {
	zw := pgzip.NewWriter(w)
	for _, o := range orders {
		if _, err := zw.Write(local.MarshalOrder(o)); err != nil {
			return errors.Wrap(err, "write order")
		}
		if _, err := zw.Write([]byte{'\n'}); err != nil {
			return errors.Wrap(err, "write order")
		}
	}
	return errors.Wrap(zw.Close(), "close archive")
}

// ExportFile writes the archive to path.
func ExportFile(path string, orders []order.Order) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create archive %s", path)
	}
	if err := Export(f, orders); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close archive %s", path)
}

// ImportResult reports what an import did.
type ImportResult struct {
	Added   int
	Skipped int
}

// Import reads one or more archive files concurrently and appends every
// order whose id is not already present. The bloom filter answers "definitely
// new" cheaply; only positive hits fall through to the exact id set.
func Import(ctx context.Context, repo order.Repository, paths []string) (*ImportResult, error) {
	existing, err := repo.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}

	filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
	seen := make(map[string]struct{}, len(existing))
	for _, o := range existing {
		filter.AddString(o.ID)
		seen[o.ID] = struct{}{}
	}

	// Decode files concurrently; dedupe and append serially afterwards so
	// the merged order preserves file order.
	decoded := make([][]order.Order, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(readArchive(gctx, p, &decoded[i]))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &ImportResult{}
	merged := existing
	for _, batch := range decoded {
		for _, o := range batch {
			if filter.TestString(o.ID) {
				if _, dup := seen[o.ID]; dup {
					res.Skipped++
					continue
				}
			}
			filter.AddString(o.ID)
			seen[o.ID] = struct{}{}
			merged = append(merged, o)
			res.Added++
		}
	}

	if res.Added > 0 {
		if err := repo.Save(ctx, merged); err != nil {
			return nil, errors.Wrap(err, "save orders")
		}
	}
	return res, nil
}

func readArchive(ctx context.Context, path string, out *[]order.Order) func() error {
	return func() error {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "open archive %s", path)
		}
		defer f.Close()

		zr, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, "read archive %s", path)
		}
		defer zr.Close()

		sc := bufio.NewScanner(zr)
		sc.Buffer(make([]byte, 64*1024), maxLineBytes)
		var orders []order.Order
		for sc.Scan() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			line := sc.Bytes()
			if len(line) == 0 {
				continue
			}
			o, err := local.UnmarshalOrder(line)
			if err != nil {
				return errors.Wrapf(err, "decode order in %s", path)
			}
			orders = append(orders, o)
		}
		if err := sc.Err(); err != nil {
			return errors.Wrapf(err, "scan archive %s", path)
		}
		*out = orders
		return nil
	}
}
