package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gitpress/internal/common"
	"github.com/dmitrijs2005/gitpress/internal/creds"
)

// GitHub talks to the GitHub contents API for one (owner, repo, branch)
// triple. The content repository and the image repository get separate
// instances sharing the same *http.Client.
type GitHub struct {
	baseURL string
	owner   string
	repo    string
	branch  string
	creds   creds.Store
	http    *http.Client
}

func NewGitHub(baseURL, owner, repo, branch string, credStore creds.Store, httpClient *http.Client) *GitHub {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GitHub{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		owner:   owner,
		repo:    repo,
		branch:  branch,
		creds:   credStore,
		http:    httpClient,
	}
}

type fileResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type listEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	SHA  string `json:"sha"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type writeRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type writeResponse struct {
	Content struct {
		Name    string `json:"name"`
		Path    string `json:"path"`
		SHA     string `json:"sha"`
		HTMLURL string `json:"html_url"`
	} `json:"content"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (g *GitHub) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.baseURL, g.owner, g.repo, path)
}

func (g *GitHub) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	token, err := g.creds.Get()
	if err != nil {
		return nil, fmt.Errorf("credential lookup: %w", err)
	}
	if token == "" || token == common.TokenPlaceholder {
		return nil, fmt.Errorf("%w: missing access token", common.ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes the request and maps transport and status failures onto the
// shared error taxonomy. On success the body is decoded into out.
func (g *GitHub) do(req *http.Request, out any) error {
	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", common.ErrRemote, err)
		}
		return nil
	}

	var er errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&er)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, er.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", common.ErrVersionConflict, er.Message)
	case http.StatusUnprocessableEntity:
		// The API reports a stale sha on update as 422 with a
		// "does not match" message; everything else stays generic.
		if strings.Contains(er.Message, "does not match") {
			return fmt.Errorf("%w: %s", common.ErrVersionConflict, er.Message)
		}
		return fmt.Errorf("%w: %s (status %d)", common.ErrRemote, er.Message, resp.StatusCode)
	default:
		return fmt.Errorf("%w: %s (status %d)", common.ErrRemote, er.Message, resp.StatusCode)
	}
}

// ReadFile fetches one file and decodes it from the store's base64 transport
// encoding. The returned SHA is the token a later WriteFile must present.
func (g *GitHub) ReadFile(ctx context.Context, path string) (*RemoteFile, error) {
	u := g.contentsURL(path) + "?ref=" + url.QueryEscape(g.branch)
	req, err := g.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var fr fileResponse
	if err := g.do(req, &fr); err != nil {
		return nil, err
	}

	content := fr.Content
	if fr.Encoding == "base64" {
		decoded, err := decodeBase64(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
		}
		content = decoded
	}

	return &RemoteFile{Path: fr.Path, Content: content, SHA: fr.SHA}, nil
}

// WriteFile creates the file when sha is empty, updates it otherwise.
func (g *GitHub) WriteFile(ctx context.Context, path, content, sha, message string) (*WriteResult, error) {
	body := writeRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		Branch:  g.branch,
		SHA:     sha,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := g.newRequest(ctx, http.MethodPut, g.contentsURL(path), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var wr writeResponse
	if err := g.do(req, &wr); err != nil {
		return nil, err
	}

	return &WriteResult{Path: wr.Content.Path, SHA: wr.Content.SHA, HTMLURL: wr.Content.HTMLURL}, nil
}

// ListDir returns one page of a directory listing. Pages are 1-based;
// perPage <= 0 lets the server choose.
func (g *GitHub) ListDir(ctx context.Context, dir string, page, perPage int) ([]FileInfo, error) {
	q := url.Values{}
	q.Set("ref", g.branch)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}

	req, err := g.newRequest(ctx, http.MethodGet, g.contentsURL(dir)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var entries []listEntry
	if err := g.do(req, &entries); err != nil {
		return nil, err
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, FileInfo{Name: e.Name, Path: e.Path, SHA: e.SHA, Size: e.Size, Type: e.Type})
	}
	return infos, nil
}

// decodeBase64 tolerates the newlines GitHub embeds in long content blobs.
func decodeBase64(s string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)

	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}
	return string(data), nil
}
