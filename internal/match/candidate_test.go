package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCandidates(t *testing.T) {
	known := []string{
		"org.example.CommandLineTool",
		"org.example.CommandInputParameter",
		"org.example.Workflow",
		"org.example.ExpressionTool",
	}

	candidates := RankCandidates("org.example.CommandLineTol", known)
	require.Len(t, candidates, 4)

	best := candidates.Best()
	require.NotNil(t, best)
	assert.Equal(t, "org.example.CommandLineTool", best.Name)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}
}

func TestRankCandidates_SkipsExactName(t *testing.T) {
	candidates := RankCandidates("a.Foo", []string{"a.Foo", "a.Bar"})

	require.Len(t, candidates, 1)
	assert.Equal(t, "a.Bar", candidates[0].Name)
}

func TestSuggest(t *testing.T) {
	known := []string{"pkg.Status", "pkg.Stats", "pkg.Workflow", "pkg.Record"}

	assert.Equal(t, []string{"pkg.Status"}, Suggest("pkg.Statuss", known, 1))
	assert.Empty(t, Suggest("pkg.Zzzzzzzz", known, 3))
	assert.Empty(t, Suggest("pkg.Status", nil, 3))
}

func TestCandidateList_Top(t *testing.T) {
	list := CandidateList{{Name: "a", Score: 0.9}, {Name: "b", Score: 0.8}, {Name: "c", Score: 0.7}}

	assert.Len(t, list.Top(2), 2)
	assert.Len(t, list.Top(10), 3)
	assert.Len(t, list.Top(-1), 3)
	assert.Nil(t, CandidateList{}.Best())
}

func TestCandidateList_AboveThreshold(t *testing.T) {
	list := CandidateList{{Name: "a", Score: 0.9}, {Name: "b", Score: 0.5}}

	above := list.AboveThreshold(0.7)
	require.Len(t, above, 1)
	assert.Equal(t, "a", above[0].Name)
}
