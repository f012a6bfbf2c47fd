package files

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestListClassifiesAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.MKV", "A.mp4", "notes.txt", "cover.png", ".hidden.mp4", "clip.ts"} {
		touch(t, filepath.Join(dir, name))
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	entries, err := List(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, e := range entries {
		got = append(got, e.Name+":"+string(e.Kind))
	}
	want := []string{"sub:dir", "A.mp4:video", "b.MKV:video", "clip.ts:video", "cover.png:image"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected listing (-want +got):\n%s", diff)
	}

	if n := len(Videos(entries)); n != 3 {
		t.Fatalf("expected 3 videos, got %d", n)
	}
}

func TestListRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.mp4")
	touch(t, path)
	if _, err := List(path); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
}

func TestImageSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 64, 36))); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	f.Close()

	w, h, err := ImageSize(path)
	if err != nil || w != 64 || h != 36 {
		t.Fatalf("unexpected size: %dx%d (%v)", w, h, err)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.mp4")
	touch(t, path)

	if err := Delete(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed")
	}
	if err := Delete(path); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if err := Delete(dir); err == nil {
		t.Fatalf("expected error for directory")
	}
}

func TestMoveToTrashFreedesktop(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("freedesktop trash only on linux")
	}
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		path := filepath.Join(dir, "my movie.mp4")
		touch(t, path)

		dest, err := MoveToTrash(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected source to be moved")
		}

		wantName := "my movie.mp4"
		if i == 1 {
			wantName = "my movie (1).mp4"
		}
		if dest != filepath.Join(data, "Trash", "files", wantName) {
			t.Fatalf("unexpected trash path: %s", dest)
		}

		info, err := os.ReadFile(filepath.Join(data, "Trash", "info", wantName+".trashinfo"))
		if err != nil {
			t.Fatalf("trashinfo missing: %v", err)
		}
		if !strings.HasPrefix(string(info), "[Trash Info]\nPath=") || !strings.Contains(string(info), "my%20movie.mp4") {
			t.Fatalf("unexpected trashinfo:\n%s", info)
		}
	}
}

func TestNextIndex(t *testing.T) {
	cases := []struct{ removed, remaining, want int }{
		{0, 3, 0},
		{2, 3, 2},
		{3, 3, 2},
		{0, 0, -1},
	}
	for _, c := range cases {
		if got := NextIndex(c.removed, c.remaining); got != c.want {
			t.Fatalf("NextIndex(%d, %d) = %d, want %d", c.removed, c.remaining, got, c.want)
		}
	}
}
