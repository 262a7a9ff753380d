package version

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	CacheFileName        = ".iiifview_version_cache"
	DefaultCheckInterval = 24 * time.Hour
)

// Checker compares the running version against the latest GitHub
// release, with an on-disk cache so the API is hit at most once per
// check interval.
type Checker struct {
	CurrentVersion string
	RepoOwner      string
	RepoName       string
	CachePath      string
	LastChecked    time.Time
}

type cache struct {
	Version     string    `json:"version"`
	LastChecked time.Time `json:"last_checked"`
}

type githubRelease struct {
	TagName string `json:"tag_name"`
}

func NewChecker(currentVersion, repoOwner, repoName string) *Checker {
	cachePath, _ := getCachePath()
	return &Checker{
		CurrentVersion: currentVersion,
		RepoOwner:      repoOwner,
		RepoName:       repoName,
		CachePath:      cachePath,
	}
}

// CheckForUpdate returns the latest version and whether it differs
// from the running one.
func (c *Checker) CheckForUpdate() (string, bool, error) {
	if time.Since(c.LastChecked) < DefaultCheckInterval {
		return "", false, nil
	}

	latestVersion, err := c.getLatestVersion()
	if err != nil {
		return "", false, fmt.Errorf("get latest version: %w", err)
	}
	c.LastChecked = time.Now()

	if c.CurrentVersion != latestVersion {
		return latestVersion, true, nil
	}
	return latestVersion, false, nil
}

func (c *Checker) getLatestVersion() (string, error) {
	if cached, err := c.readCache(); err == nil && cached != nil {
		return cached.Version, nil
	}

	version, err := c.fetchFromGitHub()
	if err != nil {
		// Stale cache beats no answer at all.
		if cached, cerr := c.readCache(); cerr == nil && cached != nil {
			return cached.Version, nil
		}
		return "", err
	}

	if err := c.writeCache(version); err != nil {
		return "", fmt.Errorf("update cache: %w", err)
	}
	return version, nil
}

func (c *Checker) fetchFromGitHub() (string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", c.RepoOwner, c.RepoName)
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("GitHub API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	var release githubRelease
	if err := json.Unmarshal(body, &release); err != nil {
		return "", fmt.Errorf("parse JSON: %w", err)
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

func (c *Checker) readCache() (*cache, error) {
	if c.CachePath == "" {
		return nil, nil
	}
	file, err := os.ReadFile(c.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var data cache
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Checker) writeCache(version string) error {
	if c.CachePath == "" {
		return nil
	}
	data := cache{
		Version:     version,
		LastChecked: time.Now(),
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(c.CachePath, jsonData, 0644)
}

func getCachePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, CacheFileName), nil
}
