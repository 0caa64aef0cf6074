package manifest_test

import (
	"bytes"
	_ "embed"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/manifest"
	"github.com/kezhuw/hgmanifest/internal/mpath"
)

//go:embed testdata/flatmanifest.bin
var flatManifest []byte

func item(path string, typ manifest.EntryType) manifest.Item {
	return manifest.Item{Path: mpath.MustNew(path), Details: manifest.NewDetails(emptyID, typ)}
}

type BodyTestSuite struct {
	suite.Suite
}

func (suite *BodyTestSuite) TestEmpty() {
	require := suite.Require()
	body, err := manifest.Parse(nil, mpath.Path{})
	require.NoError(err)
	require.Equal(0, body.Len())
	require.True(body.Equal(manifest.Empty()))
	require.False(body.Equal(nil))
	require.True((*manifest.Body)(nil).Equal(nil))
	require.Empty(body.AppendTo(nil))
	require.False(body.Iterator().Next())
}

func (suite *BodyTestSuite) TestBoundaryErrors() {
	require := suite.Require()
	tests := []struct {
		data string
		err  error
	}{
		{data: "hello123", err: errors.ErrMissingSeparator},
		{data: "hello123\x00", err: errors.ErrHashTooShort},
		{data: "hello123\x00abc123", err: errors.ErrHashTooShort},
		{data: "hello123\x00" + sha1Empty + "x" + "ltZZZ\n", err: errors.ErrTooManyFlags},
		{data: "\x00" + sha1Empty + "\n", err: errors.ErrInvalidPath},
		{data: "ok\x00" + sha1Empty + "\nbad\x00" + sha1Empty + "q\n", err: errors.ErrUnknownFlag},
	}
	for i, tt := range tests {
		body, err := manifest.Parse([]byte(tt.data), mpath.Path{})
		require.Nil(body, "test=%d", i)
		require.ErrorIs(err, tt.err, "test=%d data=%q", i, tt.data)
		var perr *errors.ParseError
		require.ErrorAs(err, &perr, "test=%d", i)
		require.True(errors.IsCorrupt(err), "test=%d", i)
	}
}

func (suite *BodyTestSuite) TestParseErrorLine() {
	require := suite.Require()
	data := "a\x00" + sha1Empty + "\nb\x00" + sha1Empty + "\nbroken\n"
	_, err := manifest.Parse([]byte(data), mpath.Path{})
	var perr *errors.ParseError
	require.ErrorAs(err, &perr)
	require.Equal(3, perr.Line)
}

func (suite *BodyTestSuite) TestSingleFile() {
	require := suite.Require()
	body, err := manifest.Parse([]byte("hello123\x00"+sha1Empty+"\n"), mpath.Path{})
	require.NoError(err)
	require.Equal([]manifest.Item{item("hello123", manifest.File)}, body.Items())
}

func (suite *BodyTestSuite) TestStopsAtEmptyLine() {
	require := suite.Require()
	data := "a\x00" + sha1Empty + "\n\nb\x00" + sha1Empty + "\n"
	body, err := manifest.Parse([]byte(data), mpath.Path{})
	require.NoError(err)
	require.Equal(1, body.Len())
	_, ok := body.Lookup(mpath.MustNew("b"))
	require.False(ok)
}

func (suite *BodyTestSuite) TestOneRoundtrip() {
	require := suite.Require()
	raw := []byte("hello123\x00" + sha1Empty + "x\n")
	body, err := manifest.Parse(raw, mpath.Path{})
	require.NoError(err)
	var buf bytes.Buffer
	require.NoError(body.Generate(&buf))
	require.Equal(string(raw), buf.String())
}

func (suite *BodyTestSuite) TestFixtureRoundtrip() {
	require := suite.Require()
	body, err := manifest.Parse(flatManifest, mpath.Path{})
	require.NoError(err)
	require.Equal(bytes.Count(flatManifest, []byte{'\n'}), body.Len())

	var buf bytes.Buffer
	require.NoError(body.Generate(&buf))
	require.Equal(flatManifest, buf.Bytes())
	require.Equal(flatManifest, body.AppendTo(nil))

	again, err := manifest.Parse(buf.Bytes(), mpath.Path{})
	require.NoError(err)
	require.True(body.Equal(again))
	if diff := cmp.Diff(body.Items(), again.Items()); diff != "" {
		suite.T().Errorf("reparse mismatch (-want +got):\n%s", diff)
	}
}

func (suite *BodyTestSuite) TestFixtureOrdering() {
	require := suite.Require()
	body, err := manifest.Parse(flatManifest, mpath.Path{})
	require.NoError(err)
	items := body.Items()
	for i := 1; i < len(items); i++ {
		require.Less(items[i-1].Path.Compare(items[i].Path), 0, "%q !< %q", items[i-1].Path, items[i].Path)
	}

	details, ok := body.Lookup(mpath.MustNew("bin/run.sh"))
	require.True(ok)
	require.True(details.IsExecutable())
	details, ok = body.Lookup(mpath.MustNew("docs/link"))
	require.True(ok)
	require.True(details.IsSymlink())
	details, ok = body.Lookup(mpath.MustNew("tests/data"))
	require.True(ok)
	require.True(details.IsTree())
	_, ok = body.Lookup(mpath.MustNew("lib"))
	require.False(ok)
}

func (suite *BodyTestSuite) TestUnorderedInputIsSorted() {
	require := suite.Require()
	data := "b\x00" + sha1Empty + "\na\x00" + sha1Empty + "x\n"
	body, err := manifest.Parse([]byte(data), mpath.Path{})
	require.NoError(err)
	require.Equal([]manifest.Item{item("a", manifest.Executable), item("b", manifest.File)}, body.Items())

	_, err = manifest.ParseStrict([]byte(data), mpath.Path{})
	require.ErrorIs(err, errors.ErrUnsortedEntries)
}

func (suite *BodyTestSuite) TestDuplicateLastWins() {
	require := suite.Require()
	data := "a\x00" + sha1Empty + "\na\x00" + sha1Empty + "l\n"
	body, err := manifest.Parse([]byte(data), mpath.Path{})
	require.NoError(err)
	require.Equal([]manifest.Item{item("a", manifest.Symlink)}, body.Items())

	_, err = manifest.ParseStrict([]byte(data), mpath.Path{})
	require.ErrorIs(err, errors.ErrUnsortedEntries)

	_, err = manifest.ParseStrict(flatManifest, mpath.Path{})
	require.NoError(err)
}

func (suite *BodyTestSuite) TestPrefix() {
	require := suite.Require()
	prefix := mpath.MustNew("tests/data")
	data := "x/y\x00" + sha1Empty + "\nz\x00" + sha1Empty + "t\n"
	body, err := manifest.Parse([]byte(data), prefix)
	require.NoError(err)
	for _, it := range body.Items() {
		require.True(it.Path.HasPrefix(prefix), "%q lacks prefix %q", it.Path, prefix)
	}
	_, ok := body.Lookup(mpath.MustNew("tests/data/x/y"))
	require.True(ok)
}

func (suite *BodyTestSuite) TestNewBody() {
	require := suite.Require()
	body, err := manifest.NewBody(item("a", manifest.File), item("a-b", manifest.File), item("a/b", manifest.Tree))
	require.NoError(err)
	require.Equal(3, body.Len())

	_, err = manifest.NewBody(item("a/b", manifest.File), item("a-b", manifest.File))
	require.ErrorIs(err, errors.ErrUnsortedEntries)
	_, err = manifest.NewBody(item("a", manifest.File), item("a", manifest.File))
	require.ErrorIs(err, errors.ErrUnsortedEntries)
	_, err = manifest.NewBody(manifest.Item{})
	require.ErrorIs(err, errors.ErrInvalidPath)
}

func (suite *BodyTestSuite) TestIteratorsAreIndependent() {
	require := suite.Require()
	body, err := manifest.Parse(flatManifest, mpath.Path{})
	require.NoError(err)
	want := body.Items()

	var wg sync.WaitGroup
	results := make([][]manifest.Item, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			it := body.Iterator()
			for it.Next() {
				results[i] = append(results[i], it.Item())
			}
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		require.Equal(want, got, "iterator=%d", i)
	}

	it := body.Iterator()
	for it.Next() {
	}
	require.False(it.Valid())
	require.False(it.Next())
}

func TestBody(t *testing.T) {
	suite.Run(t, new(BodyTestSuite))
}
