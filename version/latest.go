package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/filesystem"
	"github.com/wemanga/wemanga/network"
	"github.com/wemanga/wemanga/util"
	"github.com/wemanga/wemanga/where"
)

// ReleasesURL lists the published releases.
const ReleasesURL = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

var versionCacher = sync.OnceValue(func() *gache.Cache[string] {
	return filesystem.NewCache[string](filepath.Join(where.Cache(), "version.json"), 48*time.Hour)
})

// Latest returns the most recent release version, without the "v" prefix. Results are cached for two days.
func Latest(ctx context.Context) (string, error) {
	cache := versionCacher()
	if ver, expired, err := cache.Get(); err == nil && !expired && ver != "" {
		return ver, nil
	}

	ver, err := fetchLatest(ctx, ReleasesURL)
	if err != nil {
		return "", err
	}

	_ = cache.Set(ver)
	return ver, nil
}

func fetchLatest(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
