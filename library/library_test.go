package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/automoto/oshu/beatmap"
)

func writeBeatmap(t *testing.T, root, song, name, artist, title, version string) {
	t.Helper()
	dir := filepath.Join(root, song)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	src := "osu file format v14\n\n[Metadata]\nTitle:" + title + "\nArtist:" + artist +
		"\nVersion:" + version + "\n\n[HitObjects]\n256,192,1000,1,0\n256,192,2000,1,0\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanSortsAndSkipsBroken(t *testing.T) {
	root := t.TempDir()
	writeBeatmap(t, root, "b", "hard.osu", "xi", "Blue Zenith", "Hard")
	writeBeatmap(t, root, "b", "easy.osu", "xi", "Blue Zenith", "Easy")
	writeBeatmap(t, root, "a", "normal.osu", "Camellia", "Exit This Earth", "Normal")
	if err := os.WriteFile(filepath.Join(root, "b", "broken.osu"), []byte("not a beatmap"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "stray.osu"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := Scan(context.Background(), root, beatmap.FileLoader)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Camellia/Normal", "xi/Easy", "xi/Hard"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i, e := range entries {
		if got := e.Artist + "/" + e.Version; got != want[i] {
			t.Errorf("entry %d = %s, want %s", i, got, want[i])
		}
		if e.Hits != 2 {
			t.Errorf("%s: %d hits, want 2", e.Path, e.Hits)
		}
		if e.Duration != 2 {
			t.Errorf("%s: duration %v, want 2", e.Path, e.Duration)
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), beatmap.FileLoader)
	if err == nil {
		t.Error("expected an error for a missing library")
	}
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeBeatmap(t, root, "a", "x.osu", "a", "b", "c")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, root, beatmap.FileLoader); err == nil {
		t.Error("expected the cancellation error")
	}
}
