package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releasesServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/tool/releases", r.URL.Path)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testUpdater(srv *httptest.Server) *Updater {
	u := NewUpdater("owner/tool", zerolog.Nop())
	u.APIBase = srv.URL
	u.Client = srv.Client()
	return u
}

func withVersion(t *testing.T, v string) {
	t.Helper()
	old := Version
	Version = v
	t.Cleanup(func() { Version = old })
}

var releasesJSON = fmt.Sprintf(`[
  {"tag_name": "v2.0.0-rc1", "prerelease": true, "assets": [{"name": "x", "browser_download_url": "https://example.test/rc"}]},
  {"tag_name": "nightly", "name": "nightly build"},
  {"tag_name": "release-1.4.0", "assets": [
    {"name": "rasterlab_plan9_386", "browser_download_url": "https://example.test/other"},
    {"name": "rasterlab_%s_%s", "browser_download_url": "https://example.test/mine"}
  ]},
  {"tag_name": "v1.2.0", "assets": [{"name": "any", "browser_download_url": "https://example.test/old"}]},
  {"tag_name": "v3.0.0", "draft": true}
]`, runtime.GOOS, runtime.GOARCH)

func TestLatestReleasePicksHighestPublished(t *testing.T) {
	u := testUpdater(releasesServer(t, http.StatusOK, releasesJSON))
	rel, found, err := u.LatestRelease(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "1.4.0", rel.Version.String())
	assert.Equal(t, "https://example.test/mine", rel.AssetURL)
}

func TestLatestReleaseNone(t *testing.T) {
	u := testUpdater(releasesServer(t, http.StatusOK, `[]`))
	_, found, err := u.LatestRelease(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLatestReleaseHTTPError(t *testing.T) {
	u := testUpdater(releasesServer(t, http.StatusForbidden, `rate limited`))
	_, _, err := u.LatestRelease(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestCheckForUpdatesUpToDate(t *testing.T) {
	withVersion(t, "1.4.0")
	u := testUpdater(releasesServer(t, http.StatusOK, releasesJSON))
	var out bytes.Buffer
	err := u.CheckForUpdates(context.Background(), &out, func(string) (bool, error) {
		t.Fatal("must not prompt")
		return false, nil
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "already running the latest version")
}

func TestCheckForUpdatesInstalls(t *testing.T) {
	withVersion(t, "1.0.0")
	u := testUpdater(releasesServer(t, http.StatusOK, releasesJSON))
	var applied string
	u.apply = func(url, _ string) error {
		applied = url
		return nil
	}

	var out bytes.Buffer
	require.NoError(t, u.CheckForUpdates(context.Background(), &out, func(string) (bool, error) { return false, nil }))
	assert.Contains(t, out.String(), "Update cancelled.")
	assert.Empty(t, applied)

	out.Reset()
	require.NoError(t, u.CheckForUpdates(context.Background(), &out, func(string) (bool, error) { return true, nil }))
	assert.Equal(t, "https://example.test/mine", applied)
	assert.Contains(t, out.String(), "Updated to version 1.4.0")
}

func TestConfirmLine(t *testing.T) {
	var out bytes.Buffer
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false, "yes": true} {
		got, err := confirmLine(bytes.NewBufferString(in), &out, "? ")
		require.NoError(t, err, "%q", in)
		assert.Equal(t, want, got, "%q", in)
	}
}
