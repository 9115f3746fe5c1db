package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.txt")
	l := New(path)
	l.Log("hello")
	l.Logf("step %d", 3)
	l.Warnf("speed %.1f", 2.5)
	l.Errorf("boom")

	lines := l.Lines()
	want := []string{"] hello", "] INFO step 3", "] WARN speed 2.5", "] ERROR boom"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if !strings.HasPrefix(lines[i], "[") || !strings.HasSuffix(lines[i], w) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], w)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != len(want) {
		t.Errorf("file has %d lines, want %d", got, len(want))
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	l := New("")
	if l.Path() != DefaultPath {
		t.Errorf("Path = %q", l.Path())
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("logs dir not created: %v", err)
	}
}

func TestConcurrentLog(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "c.txt"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Logf("worker %d", i)
		}(i)
	}
	wg.Wait()
	if n := len(l.Lines()); n != 8 {
		t.Errorf("got %d lines, want 8", n)
	}
}
