package paths

import (
	"path/filepath"
	"testing"
)

func TestResolveOverrides(t *testing.T) {
	data := t.TempDir()
	bin := t.TempDir()
	t.Setenv("PROVISION_DATA_DIR", data)
	t.Setenv("PROVISION_BIN_DIR", bin)

	p, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if p.DataDir != data {
		t.Errorf("DataDir = %q, want %q", p.DataDir, data)
	}
	if p.BinDir != bin {
		t.Errorf("BinDir = %q, want %q", p.BinDir, bin)
	}
	if p.DownloadsDir != filepath.Join(data, "downloads") {
		t.Errorf("DownloadsDir = %q, want under data dir", p.DownloadsDir)
	}
	if p.LogsDir != filepath.Join(data, "logs") {
		t.Errorf("LogsDir = %q, want under data dir", p.LogsDir)
	}
}

func TestEnsureDirs(t *testing.T) {
	t.Setenv("PROVISION_DATA_DIR", filepath.Join(t.TempDir(), "data"))
	t.Setenv("PROVISION_BIN_DIR", filepath.Join(t.TempDir(), "bin"))

	p, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	for _, dir := range []string{p.DataDir, p.BinDir, p.DownloadsDir, p.LogsDir} {
		ok, err := DirExists(dir)
		if err != nil {
			t.Fatalf("DirExists(%s): %v", dir, err)
		}
		if !ok {
			t.Errorf("directory %s not created", dir)
		}
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	ok, err := FileExists(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("FileExists: %v", err)
	}
	if ok {
		t.Error("missing file reported as existing")
	}

	ok, err = FileExists(dir)
	if err != nil {
		t.Fatalf("FileExists: %v", err)
	}
	if ok {
		t.Error("directory reported as regular file")
	}
}

func TestDirWritable(t *testing.T) {
	if !DirWritable(t.TempDir()) {
		t.Error("temp dir reported unwritable")
	}
}
