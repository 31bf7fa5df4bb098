// Command orders-archive exports the order history to a compressed archive
// file, or imports one or more archives back into the store.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/ashraf-koshary/orderdesk/internal/archive"
	"github.com/ashraf-koshary/orderdesk/internal/storage/local"
	"github.com/ashraf-koshary/orderdesk/pkg/blobstore"
)

func main() {
	var (
		dataDir    string
		exportPath string
		importGlob string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory holding the local store blobs")
	flag.StringVar(&exportPath, "export", "", "write all orders to this archive file")
	flag.StringVar(&importGlob, "import", "", "glob of archive files to import")
	flag.Parse()

	if (exportPath == "") == (importGlob == "") {
		slog.Error("exactly one of -export or -import is required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, exportPath, importGlob); err != nil {
		slog.Error("archive operation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, dataDir, exportPath, importGlob string) error {
	store, err := blobstore.NewFileStore(dataDir)
	if err != nil {
		return err
	}
	repo := local.NewOrderRepository(store)

	if exportPath != "" {
		orders, err := repo.Load(ctx)
		if err != nil {
			return errors.Wrap(err, "load orders")
		}
		if err := archive.ExportFile(exportPath, orders); err != nil {
			return err
		}
		slog.Info("orders exported",
			slog.String("path", exportPath),
			slog.Int("count", len(orders)),
		)
		return nil
	}

	paths, err := filepath.Glob(importGlob)
	if err != nil {
		return errors.Wrap(err, "expand import glob")
	}
	if len(paths) == 0 {
		return errors.Errorf("no archives match %q", importGlob)
	}

	res, err := archive.Import(ctx, repo, paths)
	if err != nil {
		return err
	}
	slog.Info("orders imported",
		slog.Int("files", len(paths)),
		slog.Int("added", res.Added),
		slog.Int("skipped", res.Skipped),
	)
	return nil
}
