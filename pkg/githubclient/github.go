// Package githubclient implements the delegated VCS client capability
// against the GitHub REST API.
package githubclient

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	imrocreq "github.com/imroc/req/v3"

	"github.com/nookplot/gateway/pkg/hostedcode"
)

const defaultAPIBaseURL = "https://api.github.com"

// Client pushes file sets via the git data API. It embeds the default
// pattern scanner so one value satisfies the full VCS client capability.
type Client struct {
	*hostedcode.PatternScanner
	req     *imrocreq.Client
	baseURL string
}

func NewClient(apiBaseURL string) *Client {
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}
	return &Client{
		PatternScanner: hostedcode.NewPatternScanner(),
		req: imrocreq.C().
			SetTimeout(30 * time.Second).
			SetCommonHeader("Accept", "application/vnd.github+json"),
		baseURL: strings.TrimSuffix(apiBaseURL, "/"),
	}
}

type refResponse struct {
	Object struct {
		SHA string `json:"sha"`
	} `json:"object"`
}

type commitResponse struct {
	SHA  string `json:"sha"`
	Tree struct {
		SHA string `json:"sha"`
	} `json:"tree"`
}

type treeEntry struct {
	Path    string `json:"path"`
	Mode    string `json:"mode"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type treeResponse struct {
	SHA string `json:"sha"`
}

// CommitAndPush creates a tree holding the full file set on top of the
// branch head, commits it and advances the ref. One external round trip
// per API step; any failure aborts without moving the ref.
func (c *Client) CommitAndPush(ctx context.Context, creds hostedcode.Credentials, owner, repo string,
	files []hostedcode.PushFile, message, branch string) (*hostedcode.PushResult, error) {
	r := func() *imrocreq.Request {
		return c.req.R().SetContext(ctx).SetBearerAuthToken(creds.Token)
	}

	var head refResponse
	resp, err := r().SetSuccessResult(&head).
		Get(fmt.Sprintf("%s/repos/%s/%s/git/ref/heads/%s", c.baseURL, owner, repo, branch))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("resolve branch %s: %s", branch, resp.Status)
	}

	var baseCommit commitResponse
	resp, err = r().SetSuccessResult(&baseCommit).
		Get(fmt.Sprintf("%s/repos/%s/%s/git/commits/%s", c.baseURL, owner, repo, head.Object.SHA))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("read base commit: %s", resp.Status)
	}

	entries := make([]treeEntry, len(files))
	for i, f := range files {
		entries[i] = treeEntry{Path: f.Path, Mode: "100644", Type: "blob", Content: f.Content}
	}
	var tree treeResponse
	resp, err = r().
		SetBodyJsonMarshal(map[string]any{
			"base_tree": baseCommit.Tree.SHA,
			"tree":      entries,
		}).
		SetSuccessResult(&tree).
		Post(fmt.Sprintf("%s/repos/%s/%s/git/trees", c.baseURL, owner, repo))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("create tree: %s", resp.Status)
	}

	var commit commitResponse
	resp, err = r().
		SetBodyJsonMarshal(map[string]any{
			"message": message,
			"tree":    tree.SHA,
			"parents": []string{head.Object.SHA},
		}).
		SetSuccessResult(&commit).
		Post(fmt.Sprintf("%s/repos/%s/%s/git/commits", c.baseURL, owner, repo))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("create commit: %s", resp.Status)
	}

	resp, err = r().
		SetBodyJsonMarshal(map[string]any{"sha": commit.SHA}).
		Patch(fmt.Sprintf("%s/repos/%s/%s/git/refs/heads/%s", c.baseURL, owner, repo, branch))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("advance ref: %s", resp.Status)
	}

	return &hostedcode.PushResult{
		SHA:     commit.SHA,
		URL:     fmt.Sprintf("https://github.com/%s/%s/commit/%s", owner, repo, commit.SHA),
		Message: message,
	}, nil
}

var repoURLRE = regexp.MustCompile(
	`^(?:https://github\.com/|git@github\.com:|ssh://git@github\.com/)([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+?)(?:\.git)?/?$`)

// ParseRepoURL extracts owner and repo from the common GitHub URL forms.
func ParseRepoURL(url string) (owner, repo string, ok bool) {
	m := repoURLRE.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
