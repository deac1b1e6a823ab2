package installer

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"provision/internal/platform"
)

func tarGzWithFile(t *testing.T, name, contents string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0o755,
		Size:     int64(len(contents)),
		Typeflag: tar.TypeReg,
	}); err != nil {
		t.Fatalf("write tar header: %v", err)
	}
	if _, err := tw.Write([]byte(contents)); err != nil {
		t.Fatalf("write tar body: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

func releaseEnv(t *testing.T, client *http.Client) Env {
	t.Helper()
	return Env{
		Platform:     platform.Platform{OS: platform.OSLinux, PackageManager: platform.ManagerApt},
		Runner:       &recordingRunner{},
		Client:       client,
		BinDir:       t.TempDir(),
		DownloadsDir: t.TempDir(),
	}
}

func TestReleaseInstallTarGz(t *testing.T) {
	archive := tarGzWithFile(t, "lazygit_1.0.0/lazygit", "#!/bin/sh\necho lazygit\n")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	env := releaseEnv(t, srv.Client())
	strategy := ReleaseInstall{
		Version:     "1.0.0",
		URLTemplate: srv.URL + "/lazygit_{version}.tar.gz",
		Archive:     ArchiveTarGz,
	}

	if err := strategy.Install(context.Background(), "lazygit", env); err != nil {
		t.Fatalf("Install: %v", err)
	}

	dest := filepath.Join(env.BinDir, "lazygit")
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("installed binary missing: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("installed binary not executable: %v", info.Mode())
	}
}

func TestReleaseInstallBareBinary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("binary contents"))
	}))
	defer srv.Close()

	env := releaseEnv(t, srv.Client())
	strategy := ReleaseInstall{
		Version:     "2.1.0",
		URLTemplate: srv.URL + "/tool-{version}-{os}-{arch}",
		Archive:     ArchiveNone,
		Binary:      "tool",
	}

	if err := strategy.Install(context.Background(), "tool", env); err != nil {
		t.Fatalf("Install: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(env.BinDir, "tool"))
	if err != nil {
		t.Fatalf("read installed binary: %v", err)
	}
	if string(data) != "binary contents" {
		t.Errorf("installed binary contents = %q", data)
	}
}

func TestReleaseInstallChecksumMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tampered"))
	}))
	defer srv.Close()

	env := releaseEnv(t, srv.Client())
	strategy := ReleaseInstall{
		Version:     "1.0.0",
		URLTemplate: srv.URL + "/tool-{version}",
		Archive:     ArchiveNone,
		Checksums: map[string]string{
			PlatformKey(): "0000000000000000000000000000000000000000000000000000000000000000",
		},
	}

	err := strategy.Install(context.Background(), "tool", env)
	if err == nil {
		t.Fatal("expected checksum mismatch error")
	}
	if Kind(err) != ErrKindChecksum {
		t.Errorf("error kind = %q, want %q", Kind(err), ErrKindChecksum)
	}
	if _, statErr := os.Stat(filepath.Join(env.BinDir, "tool")); !os.IsNotExist(statErr) {
		t.Error("binary was installed despite checksum mismatch")
	}
}

func TestReleaseInstallLeavesNoPartialBinary(t *testing.T) {
	// Archive extracts fine but contains no matching binary, so the install
	// fails after extraction. The final path must be untouched.
	archive := tarGzWithFile(t, "README.md", "not a binary")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	env := releaseEnv(t, srv.Client())
	strategy := ReleaseInstall{
		Version:     "1.0.0",
		URLTemplate: srv.URL + "/tool_{version}.tar.gz",
		Archive:     ArchiveTarGz,
	}

	err := strategy.Install(context.Background(), "tool", env)
	if err == nil {
		t.Fatal("expected error for archive without binary")
	}
	if _, statErr := os.Stat(filepath.Join(env.BinDir, "tool")); !os.IsNotExist(statErr) {
		t.Error("partial binary left at final install path")
	}

	entries, readErr := os.ReadDir(env.BinDir)
	if readErr != nil {
		t.Fatalf("read bin dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("bin dir not clean after failed install: %v", entries)
	}
}

func TestReleaseInstallNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	env := releaseEnv(t, srv.Client())
	strategy := ReleaseInstall{
		Version:     "9.9.9",
		URLTemplate: srv.URL + "/missing-{version}",
		Archive:     ArchiveNone,
	}

	err := strategy.Install(context.Background(), "tool", env)
	if err == nil {
		t.Fatal("expected error for 404 download")
	}
	if Kind(err) != ErrKindNetwork {
		t.Errorf("error kind = %q, want %q", Kind(err), ErrKindNetwork)
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestLatestRelease(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/repos/jesseduffield/lazygit/releases/latest" {
			t.Errorf("unexpected path %s", req.URL.Path)
		}
		rec := httptest.NewRecorder()
		rec.WriteString(`{"tag_name": "v0.44.1"}`)
		return rec.Result(), nil
	})}

	version, err := latestRelease(context.Background(), client, "jesseduffield/lazygit")
	if err != nil {
		t.Fatalf("latestRelease: %v", err)
	}
	if version != "0.44.1" {
		t.Errorf("version = %q, want 0.44.1", version)
	}
}

func TestExpandURL(t *testing.T) {
	got := expandURL("https://example.com/{version}/t-{version}", "1.2.3")
	want := "https://example.com/1.2.3/t-1.2.3"
	if got != want {
		t.Errorf("expandURL = %q, want %q", got, want)
	}
}
