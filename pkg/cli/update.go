package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Version is the running build, set with -ldflags "-X ...cli.Version=x.y.z".
var Version = "0.1.0"

const githubAPI = "https://api.github.com"

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

type githubRelease struct {
	TagName    string        `json:"tag_name"`
	Name       string        `json:"name"`
	Draft      bool          `json:"draft"`
	Prerelease bool          `json:"prerelease"`
	Assets     []githubAsset `json:"assets"`
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Updater checks GitHub releases of Repo and replaces the running binary.
type Updater struct {
	Repo    string
	APIBase string // defaults to the public GitHub API
	Client  *http.Client
	Log     zerolog.Logger
	// apply swaps the executable, selfupdate.UpdateTo outside tests.
	apply func(assetURL, exe string) error
}

// NewUpdater returns an updater for repo ("owner/name").
func NewUpdater(repo string, log zerolog.Logger) *Updater {
	return &Updater{
		Repo:    repo,
		APIBase: githubAPI,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Log:     log.With().Str("component", "update").Logger(),
		apply:   selfupdate.UpdateTo,
	}
}

// LatestRelease returns the highest published, non-prerelease version whose
// tag or name carries a semantic version. found is false when there is none.
func (u *Updater) LatestRelease(ctx context.Context) (*selfupdate.Release, bool, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", strings.TrimSuffix(u.APIBase, "/"), u.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}

	var best *selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		v, ok := releaseVersion(r)
		if !ok {
			u.Log.Debug().Str("tag", r.TagName).Msg("skipping release without semantic version")
			continue
		}
		if best != nil && !v.GT(best.Version) {
			continue
		}
		best = &selfupdate.Release{Version: v, AssetURL: pickAsset(r), Name: r.Name}
	}
	return best, best != nil, nil
}

func releaseVersion(r githubRelease) (semver.Version, bool) {
	match := semverRe.FindString(r.TagName)
	if match == "" {
		match = semverRe.FindString(r.Name)
	}
	if match == "" {
		return semver.Version{}, false
	}
	v, err := semver.Parse(strings.TrimPrefix(match, "v"))
	return v, err == nil
}

// pickAsset prefers an asset built for this platform, then any asset.
func pickAsset(r githubRelease) string {
	names := func(want ...string) func(githubAsset) bool {
		return func(a githubAsset) bool {
			n := strings.ToLower(a.Name)
			return lo.EveryBy(want, func(w string) bool { return strings.Contains(n, w) })
		}
	}
	if a, ok := lo.Find(r.Assets, names(runtime.GOOS, runtime.GOARCH)); ok {
		return a.BrowserDownloadURL
	}
	if a, ok := lo.Find(r.Assets, names(runtime.GOOS)); ok {
		return a.BrowserDownloadURL
	}
	if len(r.Assets) > 0 {
		return r.Assets[0].BrowserDownloadURL
	}
	return ""
}

// CheckForUpdates reports the running and latest versions to out and, when a
// newer release has a downloadable asset and confirm agrees, installs it.
func (u *Updater) CheckForUpdates(ctx context.Context, out io.Writer, confirm func(prompt string) (bool, error)) error {
	fmt.Fprintf(out, "Current version: %s\n", Version)
	latest, found, err := u.LatestRelease(ctx)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found {
		fmt.Fprintf(out, "No releases found for %s.\n", u.Repo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	current, perr := semver.Parse(strings.TrimPrefix(Version, "v"))
	if perr != nil {
		u.Log.Warn().Err(perr).Str("version", Version).Msg("could not parse current version")
	} else if latest.Version.LTE(current) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", current)
		return nil
	}

	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		return nil
	}
	ok, err := confirm(fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	u.Log.Info().Str("asset", latest.AssetURL).Str("exe", exe).Msg("updating")
	if err := u.apply(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s. Restart rasterlab to use it.\n", latest.Version)
	return nil
}
