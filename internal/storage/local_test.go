package storage

import (
	"os"
	"strings"
	"testing"
)

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{filename: "receipt.png", want: true},
		{filename: "receipt.JPG", want: true},
		{filename: "statement.pdf", want: true},
		{filename: "photo.jpeg", want: true},
		{filename: "animation.gif", want: true},
		{filename: "script.sh", want: false},
		{filename: "archive.zip", want: false},
		{filename: "noextension", want: false},
		{filename: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := AllowedFile(tt.filename); got != tt.want {
				t.Errorf("AllowedFile(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestReceiptStore_SavePathDelete(t *testing.T) {
	store, err := NewReceiptStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewReceiptStore() error = %v", err)
	}

	name, err := store.Save("u-1", "receipt.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasPrefix(name, "u-1/") || !strings.HasSuffix(name, ".png") {
		t.Errorf("Save() name = %q, want u-1/<generated>.png", name)
	}

	path, err := store.Path(name)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q, want %q", data, "png-bytes")
	}

	if err := store.Delete(name); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Path(name); err == nil {
		t.Error("Path() after Delete() should fail")
	}
}

func TestReceiptStore_SaveRejectsDisallowedType(t *testing.T) {
	store, err := NewReceiptStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewReceiptStore() error = %v", err)
	}
	if _, err := store.Save("u-1", "payload.exe", strings.NewReader("x")); err == nil {
		t.Error("Save() with .exe should fail")
	}
}

func TestReceiptStore_PathRejectsTraversal(t *testing.T) {
	store, err := NewReceiptStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewReceiptStore() error = %v", err)
	}

	for _, name := range []string{"../secret.png", "u-1/../../etc/passwd", ".."} {
		if _, err := store.Path(name); err == nil {
			t.Errorf("Path(%q) should fail", name)
		}
	}
}

func TestReceiptStore_CleanupUser(t *testing.T) {
	store, err := NewReceiptStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewReceiptStore() error = %v", err)
	}

	name, err := store.Save("u-2", "a.pdf", strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.CleanupUser("u-2"); err != nil {
		t.Fatalf("CleanupUser() error = %v", err)
	}
	if _, err := store.Path(name); err == nil {
		t.Error("Path() after CleanupUser() should fail")
	}
}
