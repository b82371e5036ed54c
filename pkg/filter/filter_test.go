package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New("text", OpContains, TypeText, String("bug"))
	b := New("text", OpContains, TypeText, String("bug"))

	assert.True(t, strings.HasPrefix(a.ID, "filter-"))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUTMField(t *testing.T) {
	assert.True(t, IsUTMField("utm.source"))
	assert.False(t, IsUTMField("source"))
	assert.Equal(t, "campaign", UTMKey("utm.campaign"))
}

func TestCloneIsIndependent(t *testing.T) {
	fs := []Filter{New("priority", OpIsAnyOf, TypeMultiSelect, Strings("high"))}
	c := Clone(fs)
	c[0].Value = Strings("low")

	assert.Equal(t, Strings("high"), fs[0].Value)
	assert.Nil(t, Clone(nil))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "No filters", Summary(0))
	assert.Equal(t, "1 filter", Summary(1))
	assert.Equal(t, "3 filters", Summary(3))
}
