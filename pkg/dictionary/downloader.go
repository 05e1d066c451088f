package dictionary

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultFileName = "jmdict-eng-common.json"
	repoOwner       = "scriptin"
	repoName        = "jmdict-simplified"
)

// releaseAPI is the GitHub endpoint describing the latest release.
var releaseAPI = fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", repoOwner, repoName)

// EnsureDictionary checks if the dictionary exists at path.
// If not, it discovers the latest release from GitHub, downloads it, and decompresses it.
func EnsureDictionary(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	slog.Info("dictionary not found, downloading", "path", path)

	downloadURL, err := getLatestReleaseAssetURL(ctx)
	if err != nil {
		return fmt.Errorf("failed to find latest dictionary release: %w", err)
	}

	slog.Info("downloading dictionary", "url", downloadURL)
	return downloadAndExtract(ctx, downloadURL, path)
}

func getLatestReleaseAssetURL(ctx context.Context) (string, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseAPI, nil)
	if err != nil {
		return "", err
	}
	// Add User-Agent as required by GitHub API
	req.Header.Set("User-Agent", "vocabprep")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var release struct {
		Assets []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	// Pattern: jmdict-eng-common-*.json.tgz
	for _, asset := range release.Assets {
		if strings.Contains(asset.Name, "jmdict-eng-common") && (strings.HasSuffix(asset.Name, ".json.tgz") || strings.HasSuffix(asset.Name, ".json.gz")) {
			return asset.BrowserDownloadURL, nil
		}
	}

	return "", fmt.Errorf("no suitable dictionary asset found in latest release")
}

func downloadAndExtract(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	// Write next to the destination and rename, so an interrupted download
	// never leaves a truncated dictionary behind.
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".jmdict-*.json")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if strings.HasSuffix(url, ".json.gz") {
		if _, err := io.Copy(tmp, gzReader); err != nil {
			return fmt.Errorf("failed to write to file: %w", err)
		}
		return finish(tmp, destPath)
	}

	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading tar archive: %w", err)
		}
		if header.Typeflag == tar.TypeReg && strings.HasSuffix(header.Name, ".json") {
			if _, err := io.Copy(tmp, tarReader); err != nil {
				return fmt.Errorf("failed to write to file: %w", err)
			}
			return finish(tmp, destPath)
		}
	}
	return fmt.Errorf("no json file found in downloaded archive")
}

func finish(tmp *os.File, destPath string) error {
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), destPath)
}
