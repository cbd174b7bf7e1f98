package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

func records(websites ...string) []account.DisplayRecord {
	result := make([]account.DisplayRecord, len(websites))
	for i, w := range websites {
		result[i] = account.DisplayRecord{RID: int64(i + 1), Website: w, Account: "user", Password: "pw"}
	}
	return result
}

func websites(records []account.DisplayRecord) []string {
	result := make([]string, len(records))
	for i, r := range records {
		result[i] = r.Website
	}
	return result
}

func TestEmptyKeywordReturnsAllSorted(t *testing.T) {
	e := NewEngine()
	input := records("zeta.org", "alpha.com", "mid.io")

	result := e.Filter(input, "")
	assert.Equal(t, []string{"alpha.com", "mid.io", "zeta.org"}, websites(result))

	result = e.Filter(input, "   ")
	assert.Equal(t, []string{"alpha.com", "mid.io", "zeta.org"}, websites(result))
}

func TestSubstringMatch(t *testing.T) {
	e := NewEngine()
	input := records("github.com", "gitlab.com", "example.com")

	result := e.Filter(input, "git")
	assert.Equal(t, []string{"github.com", "gitlab.com"}, websites(result))

	// Case-insensitive both ways.
	result = e.Filter(records("GitHub.com"), "github")
	assert.Len(t, result, 1)
	result = e.Filter(records("github.com"), "GITHUB")
	assert.Len(t, result, 1)
}

func TestPinyinInitialsMatch(t *testing.T) {
	e := NewEngine()
	input := records("银行", "github.com")

	// "银行" transliterates to "yin hang"; its initials are "yh" even
	// though no substring of the original matches.
	result := e.Filter(input, "yh")
	require.Len(t, result, 1)
	assert.Equal(t, "银行", result[0].Website)
}

func TestPinyinFullMatch(t *testing.T) {
	e := NewEngine()
	input := records("银行", "github.com")

	result := e.Filter(input, "yinhang")
	require.Len(t, result, 1)
	assert.Equal(t, "银行", result[0].Website)

	result = e.Filter(input, "yin hang")
	require.Len(t, result, 1)
	assert.Equal(t, "银行", result[0].Website)

	result = e.Filter(input, "yin")
	require.Len(t, result, 1)
}

func TestMixedScriptWebsite(t *testing.T) {
	e := NewEngine()
	input := records("银行bank.cn")

	// Latin part survives transliteration and still matches.
	assert.Len(t, e.Filter(input, "bank"), 1)
	assert.Len(t, e.Filter(input, "yinhangbank"), 1)
}

func TestNoMatch(t *testing.T) {
	e := NewEngine()
	input := records("银行", "github.com")

	assert.Empty(t, e.Filter(input, "zzz"))
}

func TestFilterIsIdempotent(t *testing.T) {
	e := NewEngine()
	input := records("github.com", "银行", "gitlab.com", "example.com")

	once := e.Filter(input, "git")
	twice := e.Filter(once, "git")
	assert.Equal(t, once, twice)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	e := NewEngine()
	input := records("zeta.org", "alpha.com")

	_ = e.Filter(input, "")
	assert.Equal(t, "zeta.org", input[0].Website)
}

func TestResultSortedAfterFiltering(t *testing.T) {
	e := NewEngine()
	input := records("gitlab.com", "github.com")

	result := e.Filter(input, "git")
	assert.Equal(t, []string{"github.com", "gitlab.com"}, websites(result))
}
