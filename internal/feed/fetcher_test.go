package feed

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gitpress/internal/common"
	"github.com/dmitrijs2005/gitpress/internal/store"
)

// fakeStore serves a fixed directory of raw files.
type fakeStore struct {
	files        map[string]string // name -> raw content
	extraEntries []store.FileInfo  // appended to listings verbatim
	listErr      error
	readErrs     map[string]error
	listCalls    atomic.Int32
	readCalls    atomic.Int32
}

func (f *fakeStore) ListDir(ctx context.Context, dir string, page, perPage int) ([]store.FileInfo, error) {
	f.listCalls.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var infos []store.FileInfo
	for name := range f.files {
		infos = append(infos, store.FileInfo{Name: name, Path: dir + "/" + name, Type: "file"})
	}
	infos = append(infos, f.extraEntries...)
	return infos, nil
}

func (f *fakeStore) ReadFile(ctx context.Context, path string) (*store.RemoteFile, error) {
	f.readCalls.Add(1)
	for name, raw := range f.files {
		if path == "essays/"+name {
			if err := f.readErrs[name]; err != nil {
				return nil, err
			}
			return &store.RemoteFile{Path: path, Content: raw, SHA: "sha-" + name}, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) WriteFile(ctx context.Context, path, content, sha, message string) (*store.WriteResult, error) {
	return nil, fmt.Errorf("unexpected write")
}

func essayRaw(date string) string {
	return "---\npubDate: \"" + date + "\"\n---\n正文"
}

func TestFetch_ParsesAndSortsNewestFirst(t *testing.T) {
	fs := &fakeStore{files: map[string]string{
		"2023-10-01-120000.md": essayRaw("2023-10-01 12:00:00"),
		"2023-10-03-090000.md": essayRaw("2023-10-03 09:00:00"),
		"2023-10-02-150000.md": essayRaw("2023-10-02 15:00:00"),
	}}
	f := NewFetcher(fs, "essays", 20, nil)

	posts, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "2023-10-03-090000.md", posts[0].FileName)
	assert.Equal(t, "2023-10-01-120000.md", posts[2].FileName)
}

func TestFetch_SkipsUnparseableFiles(t *testing.T) {
	fs := &fakeStore{files: map[string]string{
		"2023-10-01-120000.md": essayRaw("2023-10-01 12:00:00"),
		"broken.md":            "no front matter, no filename date",
		"2023-10-02-150000.md": essayRaw("2023-10-02 15:00:00"),
		"2023-10-03-150000.md": essayRaw("2023-10-03 15:00:00"),
		"2023-10-04-150000.md": essayRaw("2023-10-04 15:00:00"),
	}}
	f := NewFetcher(fs, "essays", 20, nil)

	posts, err := f.Fetch(context.Background())
	require.NoError(t, err, "one bad file must not abort the listing")
	assert.Len(t, posts, 4)
}

func TestFetch_AllFilesFailingIsAnError(t *testing.T) {
	fs := &fakeStore{files: map[string]string{
		"a.md": "junk",
		"b.md": "junk",
	}}
	f := NewFetcher(fs, "essays", 20, nil)

	_, err := f.Fetch(context.Background())
	require.ErrorIs(t, err, common.ErrParse)
}

func TestFetch_RespectsPageSize(t *testing.T) {
	files := map[string]string{}
	for i := 1; i <= 5; i++ {
		files[fmt.Sprintf("2023-10-0%d-120000.md", i)] = essayRaw(fmt.Sprintf("2023-10-0%d 12:00:00", i))
	}
	fs := &fakeStore{files: files}
	f := NewFetcher(fs, "essays", 3, nil)

	posts, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	// Newest three survive the cut.
	assert.Equal(t, "2023-10-05-120000.md", posts[0].FileName)
	assert.Equal(t, "2023-10-03-120000.md", posts[2].FileName)
}

func TestFetch_IgnoresNonMarkdownEntries(t *testing.T) {
	fs := &fakeStore{
		files: map[string]string{
			"2023-10-01-120000.md": essayRaw("2023-10-01 12:00:00"),
		},
		extraEntries: []store.FileInfo{
			{Name: "2024", Path: "essays/2024", Type: "dir"},
			{Name: "cover.jpg", Path: "essays/cover.jpg", Type: "file"},
		},
	}
	f := NewFetcher(fs, "essays", 20, nil)

	posts, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestFetchOne_ReturnsFullPost(t *testing.T) {
	fs := &fakeStore{files: map[string]string{
		"2023-10-01-120000.md": essayRaw("2023-10-01 12:00:00"),
	}}
	f := NewFetcher(fs, "essays", 20, nil)

	post, err := f.FetchOne(context.Background(), "2023-10-01-120000.md")
	require.NoError(t, err)
	assert.Equal(t, "正文", post.Body)
}

// flakyStore fails reads with a network error a fixed number of times.
type flakyStore struct {
	fakeStore
	failures int32
}

func (f *flakyStore) ReadFile(ctx context.Context, path string) (*store.RemoteFile, error) {
	if atomic.AddInt32(&f.failures, -1) >= 0 {
		return nil, fmt.Errorf("%w: connection reset", common.ErrNetwork)
	}
	return f.fakeStore.ReadFile(ctx, path)
}

func TestFetch_RetriesTransientReadFailures(t *testing.T) {
	fs := &flakyStore{
		fakeStore: fakeStore{files: map[string]string{
			"2023-10-01-120000.md": essayRaw("2023-10-01 12:00:00"),
		}},
		failures: 2,
	}
	f := NewFetcher(fs, "essays", 20, nil)

	posts, err := f.Fetch(context.Background())
	require.NoError(t, err, "two transient failures should be retried away")
	assert.Len(t, posts, 1)
}

func TestFetch_ListFailurePropagates(t *testing.T) {
	fs := &fakeStore{listErr: fmt.Errorf("%w: boom", common.ErrRemote)}
	f := NewFetcher(fs, "essays", 20, nil)

	_, err := f.Fetch(context.Background())
	require.ErrorIs(t, err, common.ErrRemote)
	assert.Equal(t, int32(1), fs.listCalls.Load(), "non-transient errors are not retried")
}
