package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
	"github.com/gggplot/s5get/pkg/hub"
	"github.com/gggplot/s5get/pkg/ledger"
	"github.com/gggplot/s5get/pkg/model"
	"github.com/gggplot/s5get/pkg/orchestrator"
	"github.com/gggplot/s5get/pkg/orchestrator/mocks"
	"github.com/gggplot/s5get/pkg/transfer"
)

type fixture struct {
	resolver  *mocks.MockResolver
	checksums *mocks.MockChecksumSource
	engine    *mocks.MockTransferer
	orch      *orchestrator.Orchestrator
	dir       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		resolver:  mocks.NewMockResolver(ctrl),
		checksums: mocks.NewMockChecksumSource(ctrl),
		engine:    mocks.NewMockTransferer(ctrl),
		dir:       t.TempDir(),
	}
	f.orch = &orchestrator.Orchestrator{
		Resolver:  f.resolver,
		Checksums: f.checksums,
		Engine:    f.engine,
		Filter:    hub.Filter{Product: "L2__NO2___", Platform: "Sentinel-5", Mode: "Offline"},
		Policy:    transfer.RetryPolicy{MaxAttempts: 3, OnMismatch: transfer.ActionRetry},
		OutputDir: f.dir,
	}
	return f
}

func (f *fixture) recordPath() string { return filepath.Join(f.dir, "failed_downloads.txt") }

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDownloadBatch_RecordsOnlyFailures(t *testing.T) {
	f := newFixture(t)
	d := day("2023-04-15")

	products := []model.Product{
		{ID: "p1", Filename: "a.nc"},
		{ID: "p2", Filename: "b.nc"},
		{ID: "p3", Filename: "c.nc"},
	}
	f.resolver.EXPECT().ProductsForDate(gomock.Any(), d, f.orch.Filter).Return(products, nil)

	for _, p := range products {
		f.checksums.EXPECT().Checksum(gomock.Any(), p.ID).Return("digest-"+p.ID, nil)
		f.checksums.EXPECT().ProductURL(p.ID).Return("http://hub/" + p.ID)
	}
	// p2 exhausts its digest retries; the others verify.
	f.engine.EXPECT().Transfer(gomock.Any(), gomock.Any(), f.orch.Policy).DoAndReturn(
		func(_ context.Context, task transfer.Task, _ transfer.RetryPolicy) (transfer.Outcome, error) {
			if task.ProductID == "p2" {
				return transfer.Outcome{Succeeded: false, Attempts: 3}, nil
			}
			return transfer.Outcome{Succeeded: true, Attempts: 1}, nil
		}).Times(3)

	require.NoError(t, f.orch.DownloadBatch(context.Background(), d, d, f.recordPath()))

	entries, err := ledger.Load(f.recordPath())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.nc", entries[0].Filename)
	assert.Equal(t, "p2", entries[0].ProductID)
	// The ledger carries the digest the file should have had.
	assert.Equal(t, "digest-p2", entries[0].Digest)
}

func TestDownloadBatch_TransferTaskIsComplete(t *testing.T) {
	f := newFixture(t)
	d := day("2023-04-15")

	f.resolver.EXPECT().ProductsForDate(gomock.Any(), d, f.orch.Filter).
		Return([]model.Product{{ID: "p1", Filename: "a.nc"}}, nil)
	f.checksums.EXPECT().Checksum(gomock.Any(), "p1").Return("abc123", nil)
	f.checksums.EXPECT().ProductURL("p1").Return("http://hub/odata/p1/$value")

	f.engine.EXPECT().Transfer(gomock.Any(), transfer.Task{
		ProductID:      "p1",
		SourceURL:      "http://hub/odata/p1/$value",
		DestPath:       filepath.Join(f.dir, "a.nc"),
		ExpectedDigest: "abc123",
	}, f.orch.Policy).Return(transfer.Outcome{Succeeded: true}, nil)

	require.NoError(t, f.orch.DownloadBatch(context.Background(), d, d, f.recordPath()))
}

func TestDownloadBatch_SkipsTransportFailures(t *testing.T) {
	f := newFixture(t)
	d := day("2023-04-15")

	products := []model.Product{
		{ID: "p1", Filename: "a.nc"},
		{ID: "p2", Filename: "b.nc"},
	}
	f.resolver.EXPECT().ProductsForDate(gomock.Any(), d, f.orch.Filter).Return(products, nil)

	// p1's checksum fetch exhausts the transport budget; p2 still runs.
	f.checksums.EXPECT().Checksum(gomock.Any(), "p1").
		Return("", pkgerrors.Wrap(pkgerrors.ErrTransport, "checksum fetch"))
	f.checksums.EXPECT().Checksum(gomock.Any(), "p2").Return("d2", nil)
	f.checksums.EXPECT().ProductURL("p2").Return("http://hub/p2")
	f.engine.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(transfer.Outcome{Succeeded: true}, nil)

	require.NoError(t, f.orch.DownloadBatch(context.Background(), d, d, f.recordPath()))

	entries, err := ledger.Load(f.recordPath())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p1", entries[0].ProductID)
	// No digest was obtainable, so the placeholder goes in.
	assert.Equal(t, "-", entries[0].Digest)
}

func TestDownloadBatch_CoversEveryDayInclusive(t *testing.T) {
	f := newFixture(t)
	start, end := day("2023-04-15"), day("2023-04-17")

	for _, d := range []time.Time{start, day("2023-04-16"), end} {
		f.resolver.EXPECT().ProductsForDate(gomock.Any(), d, f.orch.Filter).Return(nil, nil)
	}

	require.NoError(t, f.orch.DownloadBatch(context.Background(), start, end, f.recordPath()))
}

func TestDownloadBatch_TruncatesPreviousLedger(t *testing.T) {
	f := newFixture(t)
	d := day("2023-04-15")
	require.NoError(t, os.WriteFile(f.recordPath(), []byte("old.nc  old-id  ff\n"), 0o644))

	f.resolver.EXPECT().ProductsForDate(gomock.Any(), d, f.orch.Filter).Return(nil, nil)

	require.NoError(t, f.orch.DownloadBatch(context.Background(), d, d, f.recordPath()))

	entries, err := ledger.Load(f.recordPath())
	require.NoError(t, err)
	assert.Empty(t, entries, "the ledger must reflect only the current run")
}

func TestDownloadOne_SuccessLeavesNoLedger(t *testing.T) {
	f := newFixture(t)

	f.checksums.EXPECT().Checksum(gomock.Any(), "p1").Return("d1", nil)
	f.checksums.EXPECT().ProductURL("p1").Return("http://hub/p1")
	f.engine.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(transfer.Outcome{Succeeded: true}, nil)

	out := filepath.Join(f.dir, "single.nc")
	require.NoError(t, f.orch.DownloadOne(context.Background(), "p1", out, f.recordPath()))

	_, err := os.Stat(f.recordPath())
	assert.True(t, os.IsNotExist(err), "a clean single download must not create a ledger file")
}

func TestDownloadOne_FailureRecordsAndSurfacesTransportError(t *testing.T) {
	f := newFixture(t)

	f.checksums.EXPECT().Checksum(gomock.Any(), "p1").Return("d1", nil)
	f.checksums.EXPECT().ProductURL("p1").Return("http://hub/p1")
	f.engine.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(transfer.Outcome{}, pkgerrors.Wrap(pkgerrors.ErrTransport, "download"))

	out := filepath.Join(f.dir, "single.nc")
	err := f.orch.DownloadOne(context.Background(), "p1", out, f.recordPath())
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrTransport)

	entries, lerr := ledger.Load(f.recordPath())
	require.NoError(t, lerr)
	require.Len(t, entries, 1)
	assert.Equal(t, "single.nc", entries[0].Filename)
	assert.Equal(t, "d1", entries[0].Digest)
}

func TestDownloadOne_MismatchIsNotAnError(t *testing.T) {
	f := newFixture(t)

	f.checksums.EXPECT().Checksum(gomock.Any(), "p1").Return("d1", nil)
	f.checksums.EXPECT().ProductURL("p1").Return("http://hub/p1")
	f.engine.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(transfer.Outcome{Succeeded: false, Attempts: 3}, nil)

	out := filepath.Join(f.dir, "single.nc")
	require.NoError(t, f.orch.DownloadOne(context.Background(), "p1", out, f.recordPath()))

	entries, err := ledger.Load(f.recordPath())
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestCheckByDates_RecordsMissingAndMismatched(t *testing.T) {
	f := newFixture(t)
	d := day("2023-04-15")

	products := []model.Product{
		{ID: "p1", Filename: "present-good.nc"},
		{ID: "p2", Filename: "present-bad.nc"},
		{ID: "p3", Filename: "missing.nc"},
	}
	goodContent := []byte("good content")
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "present-good.nc"), goodContent, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "present-bad.nc"), []byte("tampered"), 0o644))

	f.resolver.EXPECT().ProductsForDate(gomock.Any(), d, f.orch.Filter).Return(products, nil)
	f.checksums.EXPECT().Checksum(gomock.Any(), "p1").Return(md5hex(goodContent), nil)
	f.checksums.EXPECT().Checksum(gomock.Any(), "p2").Return(md5hex(goodContent), nil)
	f.checksums.EXPECT().Checksum(gomock.Any(), "p3").Return("d3", nil)

	require.NoError(t, f.orch.CheckByDates(context.Background(), d, d, f.recordPath()))

	entries, err := ledger.Load(f.recordPath())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "present-bad.nc", entries[0].Filename)
	assert.Equal(t, "missing.nc", entries[1].Filename)
	assert.Equal(t, "d3", entries[1].Digest)
}

func TestRedownloadFailed_ReattemptsEntries(t *testing.T) {
	f := newFixture(t)

	listPath := filepath.Join(f.dir, "to_repair.txt")
	require.NoError(t, os.WriteFile(listPath, []byte("a.nc  p1  d1\nb.nc  p2  d2\n"), 0o644))

	for _, id := range []string{"p1", "p2"} {
		f.checksums.EXPECT().Checksum(gomock.Any(), id).Return("fresh-"+id, nil)
		f.checksums.EXPECT().ProductURL(id).Return("http://hub/" + id)
	}
	// p1 repairs cleanly, p2 fails again.
	f.engine.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task transfer.Task, _ transfer.RetryPolicy) (transfer.Outcome, error) {
			assert.Equal(t, f.dir, filepath.Dir(task.DestPath))
			return transfer.Outcome{Succeeded: task.ProductID == "p1"}, nil
		}).Times(2)

	require.NoError(t, f.orch.RedownloadFailed(context.Background(), listPath, f.recordPath()))

	entries, err := ledger.Load(f.recordPath())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p2", entries[0].ProductID)
	// The fresh hub digest replaces whatever the old ledger carried.
	assert.Equal(t, "fresh-p2", entries[0].Digest)
}

func TestRedownloadFailed_SamePathGetsBackedUp(t *testing.T) {
	f := newFixture(t)

	path := f.recordPath()
	original := []byte("a.nc  p1  d1\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	f.checksums.EXPECT().Checksum(gomock.Any(), "p1").Return("fresh", nil)
	f.checksums.EXPECT().ProductURL("p1").Return("http://hub/p1")
	f.engine.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(transfer.Outcome{Succeeded: true}, nil)

	require.NoError(t, f.orch.RedownloadFailed(context.Background(), path, path))

	matches, err := filepath.Glob(path + ".bak.*")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	backed, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, original, backed)

	// The repair succeeded, so the new ledger is empty.
	entries, err := ledger.Load(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedownloadFailed_DistinctPathNoBackup(t *testing.T) {
	f := newFixture(t)

	listPath := filepath.Join(f.dir, "to_repair.txt")
	require.NoError(t, os.WriteFile(listPath, []byte("a.nc  p1  d1\n"), 0o644))

	f.checksums.EXPECT().Checksum(gomock.Any(), "p1").Return("fresh", nil)
	f.checksums.EXPECT().ProductURL("p1").Return("http://hub/p1")
	f.engine.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(transfer.Outcome{Succeeded: true}, nil)

	require.NoError(t, f.orch.RedownloadFailed(context.Background(), listPath, f.recordPath()))

	matches, err := filepath.Glob(listPath + ".bak.*")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRedownloadFailed_MalformedList(t *testing.T) {
	f := newFixture(t)

	listPath := filepath.Join(f.dir, "to_repair.txt")
	require.NoError(t, os.WriteFile(listPath, []byte("just one field\nbroken\n"), 0o644))

	err := f.orch.RedownloadFailed(context.Background(), listPath, f.recordPath())
	assert.ErrorIs(t, err, pkgerrors.ErrLedgerFormat)
}
