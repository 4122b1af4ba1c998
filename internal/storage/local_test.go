package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")
	ctx := context.Background()

	res, err := l.Put(ctx, strings.NewReader("png-bytes"), PutInput{Filename: "Shot.PNG", ContentType: "image/png"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasSuffix(res.Key, ".png") {
		t.Errorf("key = %q, want .png suffix", res.Key)
	}
	if res.URL != "/uploads/"+res.Key {
		t.Errorf("url = %q, want /uploads/%s", res.URL, res.Key)
	}

	data, err := os.ReadFile(filepath.Join(dir, res.Key))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored bytes = %q", data)
	}

	if err := l.Delete(ctx, res.Key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, res.Key)); !os.IsNotExist(err) {
		t.Errorf("file still present after delete: %v", err)
	}

	// a second delete of the same key is a no-op, not an error
	if err := l.Delete(ctx, res.Key); err != nil {
		t.Errorf("repeat delete: %v", err)
	}
}

func TestImageExt(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":   ".jpg",
		"photo.jpeg":  ".jpeg",
		"logo.png":    ".png",
		"anim.gif":    ".gif",
		"pic.webp":    ".webp",
		"payload.php": "",
		"noext":       "",
	}
	for in, want := range cases {
		if got := imageExt(in); got != want {
			t.Errorf("imageExt(%q) = %q, want %q", in, got, want)
		}
	}
}
