package iterator_test

import (
	"testing"

	"github.com/kezhuw/hgmanifest/internal/iterator"
	"github.com/stretchr/testify/suite"
)

type EmptyIteratorTestSuite struct {
	perTest bool

	it         iterator.Iterator[string]
	panicValue string

	suite.Suite
}

var _ suite.SetupAllSuite = (*EmptyIteratorTestSuite)(nil)
var _ suite.SetupTestSuite = (*EmptyIteratorTestSuite)(nil)

func (suite *EmptyIteratorTestSuite) SetupSuite() {
	if !suite.perTest {
		suite.it = iterator.Empty[string]()
	}
	suite.panicValue = "hgmanifest: empty iterator"
}

func (suite *EmptyIteratorTestSuite) SetupTest() {
	if suite.perTest {
		suite.it = iterator.Empty[string]()
	}
}

func (suite *EmptyIteratorTestSuite) TestNext() {
	require := suite.Require()
	require.False(suite.it.Next())
	require.False(suite.it.Next())
}

func (suite *EmptyIteratorTestSuite) TestItem() {
	require := suite.Require()
	it := suite.it
	require.PanicsWithValue(suite.panicValue, func() {
		it.Item()
	})
}

func (suite *EmptyIteratorTestSuite) TestErr() {
	require := suite.Require()
	require.NoError(suite.it.Err())
}

func (suite *EmptyIteratorTestSuite) TestClose() {
	require := suite.Require()
	require.NoError(suite.it.Close())
}

func TestEmptyIterator(t *testing.T) {
	suite.Run(t, &EmptyIteratorTestSuite{})
}

func TestEmptyIteratorPerMethod(t *testing.T) {
	suite.Run(t, &EmptyIteratorTestSuite{perTest: true})
}
