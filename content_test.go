package hgmanifest

import (
	"strings"
	"testing"

	"github.com/kezhuw/hgmanifest/internal/blob"
)

type copySourceTest struct {
	blob Blob
	path string
	ok   bool
}

var copyRev = strings.Repeat("c", 40)

var copySourceTests = []copySourceTest{
	{NewDirtyBlob([]byte("\x01\ncopy: a/b\ncopyrev: " + copyRev + "\n\x01\ndata")), "a/b", true},
	{NewDirtyBlob([]byte("\x01\ncopy: a/b\n\x01\ndata")), "", false},
	{NewDirtyBlob([]byte("\x01\ncopyrev: " + copyRev + "\n\x01\ndata")), "", false},
	{NewDirtyBlob([]byte("\x01\ncopy: a/b\ncopyrev: xyz\n\x01\ndata")), "", false},
	{NewDirtyBlob([]byte("\x01\ncopy: a/b\ncopyrev: " + copyRev + "\n")), "", false},
	{NewDirtyBlob([]byte("plain data")), "", false},
	{NewCleanBlob(blob.EncodeMeta([]string{"copy", "copyrev"}, map[string]string{"copy": "a/b", "copyrev": copyRev}, nil), NullHash), "", false},
	{NewExternBlob(NullHash), "", false},
}

func TestCopySource(t *testing.T) {
	for i, test := range copySourceTests {
		path, rev, ok := copySource(test.blob)
		if ok != test.ok {
			t.Fatalf("test=%d got=%v want=%v", i, ok, test.ok)
		}
		if !ok {
			continue
		}
		if got := path.String(); got != test.path {
			t.Fatalf("test=%d got=%v want=%v", i, got, test.path)
		}
		if got := rev.String(); got != copyRev {
			t.Fatalf("test=%d got=%v want=%v", i, got, copyRev)
		}
	}
}
