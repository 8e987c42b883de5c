package matcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsouza/manifest-match/internal/logging"
	"rsouza/manifest-match/internal/manifest"
)

func parse(t *testing.T, raw string) *manifest.Table {
	t.Helper()
	return manifest.NewParser(&logging.MockLogger{}, nil).ParseBytes([]byte(raw))
}

func TestMatchAcrossFormattingNoise(t *testing.T) {
	base := parse(t, "Remetente\tEndereço Origem\tCEP Origem\n"+
		"ACME LTDA\tRua A, 10\t01001-000\n")
	daily := parse(t, "Remetente\tEndereço Origem\tCEP Origem\n"+
		"acme ltda\tRUA A 10\t01001000\n")

	repeats := Match(base, daily)

	require.Len(t, repeats, 1)
	assert.Equal(t, "acme ltda", repeats[0].Sender)
	assert.True(t, daily.Records[0].IsRepeat)
}

func TestMatchPreservesDailyOrder(t *testing.T) {
	base := parse(t, "Remetente\tEndereço Origem\tCEP Origem\n"+
		"A\tRua 1\t00000001\n"+
		"C\tRua 3\t00000003\n"+
		"E\tRua 5\t00000005\n")
	daily := parse(t, "Remetente\tEndereço Origem\tCEP Origem\n"+
		"E\tRua 5\t00000005\n"+
		"B\tRua 2\t00000002\n"+
		"A\tRua 1\t00000001\n"+
		"C\tRua 3\t00000003\n")

	repeats := Match(base, daily)

	require.Len(t, repeats, 3)
	assert.Equal(t, "E", repeats[0].Sender)
	assert.Equal(t, "A", repeats[1].Sender)
	assert.Equal(t, "C", repeats[2].Sender)
}

func TestMatchEmptyBase(t *testing.T) {
	base := &manifest.Table{}
	daily := parse(t, "Remetente\tEndereço Origem\tCEP Origem\n"+
		"Acme\tRua A\t01001000\n")

	assert.Empty(t, Match(base, daily))
	assert.False(t, daily.Records[0].IsRepeat)
}

func TestMatchNilTables(t *testing.T) {
	assert.Empty(t, Match(nil, nil))
}

func TestKeySetDeduplicates(t *testing.T) {
	base := parse(t, "Remetente\tEndereço Origem\tCEP Origem\n"+
		"Acme\tRua A\t01001000\n"+
		"ACME\tRUA A\t01001-000\n")

	keys := KeySet(base)
	assert.Len(t, keys, 1)
}

func TestResultHolder(t *testing.T) {
	var holder ResultHolder
	assert.Nil(t, holder.Load())
	assert.Equal(t, 0, holder.Load().Count())

	first := &Result{Repeats: []manifest.Record{{Sender: "A"}}, DailyTotal: 3}
	holder.Store(first)
	assert.Same(t, first, holder.Load())
	assert.Equal(t, 1, holder.Load().Count())

	second := &Result{DailyTotal: 1}
	holder.Store(second)
	assert.Same(t, second, holder.Load())
}

func TestResultHolderConcurrentSwap(t *testing.T) {
	var holder ResultHolder
	results := []*Result{
		{DailyTotal: 1},
		{DailyTotal: 2},
		{DailyTotal: 3},
	}

	var wg sync.WaitGroup
	for _, r := range results {
		wg.Add(1)
		go func(r *Result) {
			defer wg.Done()
			holder.Store(r)
		}(r)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			// Readers must always observe a complete result or nil.
			if r := holder.Load(); r != nil {
				assert.Contains(t, []int{1, 2, 3}, r.DailyTotal)
			}
		}
	}()

	wg.Wait()
	<-done
}
