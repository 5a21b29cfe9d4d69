package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gitpress/internal/common"
	"github.com/dmitrijs2005/gitpress/internal/config"
	"github.com/dmitrijs2005/gitpress/internal/content"
	"github.com/dmitrijs2005/gitpress/internal/creds"
	"github.com/dmitrijs2005/gitpress/internal/feed"
	"github.com/dmitrijs2005/gitpress/internal/images"
	"github.com/dmitrijs2005/gitpress/internal/publish"
)

// ------------ fakes ------------

type fakePublisher struct {
	kind  content.Kind
	meta  content.Metadata
	body  string
	calls int
	err   error
}

func (f *fakePublisher) Publish(ctx context.Context, kind content.Kind, meta content.Metadata, body string) (*publish.Result, error) {
	f.calls++
	f.kind, f.meta, f.body = kind, meta, body
	if f.err != nil {
		return nil, f.err
	}
	return &publish.Result{FilePath: "src/content/posts/x.md", Action: "created"}, nil
}

type fakeUploader struct {
	items [][]byte
	calls int
}

func (f *fakeUploader) UploadMany(ctx context.Context, items [][]byte) images.BatchResult {
	f.calls++
	f.items = items
	urls := make([]string, len(items))
	return images.BatchResult{URLs: urls, Requested: len(items), Succeeded: len(items)}
}

type fakeFeed struct {
	posts     []feed.Post
	loadForce bool
	loadCalls int
	err       error
}

func (f *fakeFeed) Load(ctx context.Context, force bool) ([]feed.Post, error) {
	f.loadCalls++
	f.loadForce = force
	return f.posts, f.err
}

func (f *fakeFeed) Posts() []feed.Post       { return f.posts }
func (f *fakeFeed) LastFetchedAt() time.Time { return time.Time{} }

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func newTestApp(p publisher, u uploader, fs feedSource, r *bufio.Reader) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:    cfg,
		creds:     creds.NewMemoryStore(""),
		feed:      fs,
		publisher: p,
		uploader:  u,
		reader:    r,
	}
}

// ------------ post commands ------------

func TestPostBlog_CollectsTitleCategoriesAndBody(t *testing.T) {
	p := &fakePublisher{}
	a := newTestApp(p, nil, nil, readerFromLines("My Day", "Travel, Food", "line one", "line two", ""))

	a.postBlog(context.Background())

	require.Equal(t, 1, p.calls)
	assert.Equal(t, content.KindBlog, p.kind)
	assert.Equal(t, "My Day", p.meta.Title)
	assert.Equal(t, "Travel, Food", p.meta.Categories)
	assert.Equal(t, "line one\nline two", p.body)
}

func TestPostBlog_KeepsDefaultCategoryOnEmptyInput(t *testing.T) {
	p := &fakePublisher{}
	a := newTestApp(p, nil, nil, readerFromLines("My Day", "", "body", ""))

	a.postBlog(context.Background())

	require.Equal(t, 1, p.calls)
	assert.Equal(t, "Daily", p.meta.Categories)
}

func TestPostEssay_SendsBodyWithGeneratedDate(t *testing.T) {
	p := &fakePublisher{}
	a := newTestApp(p, nil, nil, readerFromLines("a quick thought", ""))

	a.postEssay(context.Background())

	require.Equal(t, 1, p.calls)
	assert.Equal(t, content.KindEssay, p.kind)
	assert.Equal(t, "a quick thought", p.body)
	assert.NotEmpty(t, p.meta.PubDate)
}

func TestPostGallery_PassesJSONThrough(t *testing.T) {
	p := &fakePublisher{}
	a := newTestApp(p, nil, nil, readerFromLines(`{"photos": []}`, ""))

	a.postGallery(context.Background())

	require.Equal(t, 1, p.calls)
	assert.Equal(t, content.KindGallery, p.kind)
	assert.Equal(t, `{"photos": []}`, p.body)
}

func TestDoPublish_ReportsErrorWithoutPanicking(t *testing.T) {
	p := &fakePublisher{err: common.ErrNotConfigured}
	a := newTestApp(p, nil, nil, readerFromLines("t", "", "b", ""))

	a.postBlog(context.Background())

	assert.Equal(t, 1, p.calls)
}

// ------------ feed commands ------------

func TestList_PassesForceFlag(t *testing.T) {
	fs := &fakeFeed{posts: []feed.Post{{FileName: "a.md", Title: "A"}}}
	a := newTestApp(nil, nil, fs, nil)

	a.list(context.Background(), true)

	assert.Equal(t, 1, fs.loadCalls)
	assert.True(t, fs.loadForce)
}

func TestShow_RejectsOutOfRangeIndex(t *testing.T) {
	fs := &fakeFeed{posts: []feed.Post{{FileName: "a.md", Body: "hi"}}}
	a := newTestApp(nil, nil, fs, nil)

	a.show([]string{"5"})
	a.show([]string{"0"})
	a.show([]string{"nope"})
	a.show(nil)
	a.show([]string{"1"})
}

// ------------ upload ------------

func TestUpload_ReadsFilesAndForwardsBytes(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.jpg")
	p2 := filepath.Join(dir, "two.jpg")
	require.NoError(t, os.WriteFile(p1, []byte("aaa"), 0o600))
	require.NoError(t, os.WriteFile(p2, []byte("bbb"), 0o600))

	u := &fakeUploader{}
	a := newTestApp(nil, u, nil, nil)

	a.upload(context.Background(), []string{p1, p2})

	require.Equal(t, 1, u.calls)
	require.Len(t, u.items, 2)
	assert.Equal(t, []byte("aaa"), u.items[0])
	assert.Equal(t, []byte("bbb"), u.items[1])
}

func TestUpload_MissingFileSkipsUpload(t *testing.T) {
	u := &fakeUploader{}
	a := newTestApp(nil, u, nil, nil)

	a.upload(context.Background(), []string{"/no/such/file.jpg"})

	assert.Zero(t, u.calls)
}

// ------------ token ------------

func TestSetToken_SavesTrimmedToken(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("ghp_token\n"), nil }
	defer func() { readPassword = orig }()

	a := newTestApp(nil, nil, nil, nil)
	a.setToken()

	got, err := a.creds.Get()
	require.NoError(t, err)
	assert.Equal(t, "ghp_token", got)
}

func TestSetToken_EmptyInputLeavesStoreUntouched(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("   \n"), nil }
	defer func() { readPassword = orig }()

	a := newTestApp(nil, nil, nil, nil)
	require.NoError(t, a.creds.Set("existing"))
	a.setToken()

	got, err := a.creds.Get()
	require.NoError(t, err)
	assert.Equal(t, "existing", got)
}

func TestClearToken_DeletesStoredToken(t *testing.T) {
	a := newTestApp(nil, nil, nil, nil)
	require.NoError(t, a.creds.Set("existing"))

	a.clearToken()

	got, err := a.creds.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}
