package dynarray

import (
	"os"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type producerCase struct {
	Name     string `yaml:"name"`
	Reported int    `yaml:"reported"`
	Yields   int    `yaml:"yields"`
	Fails    bool   `yaml:"fails"`
}

func loadProducerCases(t *testing.T) []producerCase {
	t.Helper()
	raw, err := os.ReadFile("testdata/producers.yaml")
	require.NoError(t, err)
	var cases []producerCase
	require.NoError(t, yaml.Unmarshal(raw, &cases))
	require.NotEmpty(t, cases)
	return cases
}

// lyingProducer reports one count and yields another.
type lyingProducer struct {
	reported int
	yields   int
	given    int
	log      *[]int
}

func (p *lyingProducer) Len() int { return p.reported }

func (p *lyingProducer) Next() (tracked, bool) {
	if p.given >= p.yields {
		return tracked{}, false
	}
	p.given++
	return tracked{id: p.given - 1, log: p.log}, true
}

func TestFromProducer(t *testing.T) {
	for _, c := range loadProducerCases(t) {
		t.Run(c.Name, func(t *testing.T) {
			var log []int
			p := &lyingProducer{reported: c.Reported, yields: c.Yields, log: &log}
			if c.Fails {
				requireContract(t, ErrProducerLength, func() { FromProducer[tracked](p) })
				// everything yielded before the failure was dropped
				require.Equal(t, seq(c.Yields), append([]int{}, log...))
				return
			}
			a := FromProducer[tracked](p)
			require.Equal(t, c.Reported, a.Len())
			require.Empty(t, log)
			for i, v := range a.Slice() {
				require.Equal(t, i, v.id)
			}
			a.Release()
			require.Equal(t, seq(c.Yields), append([]int{}, log...))
		})
	}
}

func TestFromProducerNegativeLen(t *testing.T) {
	p := &lyingProducer{reported: -1}
	requireContract(t, ErrLayout, func() { FromProducer[tracked](p) })
}

func TestFromSeq(t *testing.T) {
	a := FromSeq(3, slices.Values([]string{"a", "b", "c"}))
	require.Equal(t, []string{"a", "b", "c"}, a.Slice())

	requireContract(t, ErrProducerLength, func() {
		FromSeq(4, slices.Values([]string{"a", "b", "c"}))
	})
	requireContract(t, ErrProducerLength, func() {
		FromSeq(2, slices.Values([]string{"a", "b", "c"}))
	})
}
