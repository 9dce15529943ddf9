package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesFile(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	name, err := l.Save("cover.png", bytes.NewBufferString("image bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(name, "-cover.png") {
		t.Fatalf("unexpected stored name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(l.Dir(), name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "image bytes" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestSaveStripsPathElements(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	name, err := l.Save("../../etc/pass wd.png", bytes.NewBufferString("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		t.Fatalf("stored name leaks path elements: %q", name)
	}
	if !strings.HasSuffix(name, "-pass_wd.png") {
		t.Fatalf("unexpected stored name %q", name)
	}
}
