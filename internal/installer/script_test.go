package installer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"provision/internal/platform"
)

func TestScriptInstallRunsDownloadedScript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("#!/bin/sh\nexit 0\n"))
	}))
	defer srv.Close()

	runner := &recordingRunner{}
	env := Env{
		Platform:     platform.Platform{OS: platform.OSLinux},
		Runner:       runner,
		Client:       srv.Client(),
		DownloadsDir: t.TempDir(),
	}

	strategy := ScriptInstall{URL: srv.URL + "/install.sh", Args: []string{"--yes"}}
	if err := strategy.Install(context.Background(), "starship", env); err != nil {
		t.Fatalf("Install: %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 runner call, got %d", len(runner.calls))
	}
	call := runner.calls[0]
	if call.Command != "sh" {
		t.Errorf("interpreter = %q, want sh", call.Command)
	}
	if len(call.Args) != 2 || !strings.HasSuffix(call.Args[0], "install.sh") || call.Args[1] != "--yes" {
		t.Errorf("args = %v, want [<script path> --yes]", call.Args)
	}
}

func TestScriptInstallPropagatesExitFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("#!/bin/sh\nexit 1\n"))
	}))
	defer srv.Close()

	runner := &recordingRunner{err: errors.New("exit status 1"), stderr: "install failed\n"}
	env := Env{
		Runner:       runner,
		Client:       srv.Client(),
		DownloadsDir: t.TempDir(),
	}

	err := ScriptInstall{URL: srv.URL + "/install.sh"}.Install(context.Background(), "starship", env)
	if err == nil {
		t.Fatal("expected error for failing script")
	}
	if Kind(err) != ErrKindExit {
		t.Errorf("error kind = %q, want %q", Kind(err), ErrKindExit)
	}
}

func TestScriptInstallDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	runner := &recordingRunner{}
	env := Env{
		Runner:       runner,
		Client:       srv.Client(),
		DownloadsDir: t.TempDir(),
	}

	err := ScriptInstall{URL: srv.URL + "/install.sh"}.Install(context.Background(), "starship", env)
	if err == nil {
		t.Fatal("expected error for failed download")
	}
	if Kind(err) != ErrKindNetwork {
		t.Errorf("error kind = %q, want %q", Kind(err), ErrKindNetwork)
	}
	if len(runner.calls) != 0 {
		t.Error("script executed despite failed download")
	}
}
