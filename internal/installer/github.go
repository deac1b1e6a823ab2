package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// latestRelease resolves the most recent release tag for a GitHub repo,
// with any leading "v" stripped.
func latestRelease(ctx context.Context, client *http.Client, repo string) (string, error) {
	if repo == "" {
		return "", fmt.Errorf("release repo not configured")
	}

	endpoint := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "provision/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query %s release: %w", repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("query %s release: unexpected status %s", repo, resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode %s release: %w", repo, err)
	}

	version := strings.TrimPrefix(release.TagName, "v")
	if version == "" {
		return "", fmt.Errorf("release for %s has no tag", repo)
	}
	return version, nil
}
