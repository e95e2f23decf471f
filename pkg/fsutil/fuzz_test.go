package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdmath/pkg/fsutil"
)

func FuzzWriteAtomicRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("<p><span class=\"math inline\"><eq>x</eq></span></p>\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "out", "page.html")

		written, err := fsutil.WriteAtomicIfChanged(ctx, path, content, 0)
		if err != nil {
			t.Fatalf("WriteAtomicIfChanged failed: %v", err)
		}
		if !written {
			t.Fatal("first write must create the file")
		}

		got, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("content mismatch: got %q, want %q", got, content)
		}

		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			t.Fatalf("CheckModified failed: %v", err)
		}
		if modified {
			t.Error("file should not be reported as modified")
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("stat: %v", err)
		}
	})
}
