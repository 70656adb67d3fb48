package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

const clinicalTrialsRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>ClinicalTrials.gov: asthma</title>
    <link>https://clinicaltrials.gov/</link>
    <description>Recently updated studies</description>
    <item>
      <title>Biologic therapy for severe asthma</title>
      <link>https://clinicaltrials.gov/study/NCT00000001</link>
      <description>A phase 3 trial of an anti-IL5 antibody.</description>
      <pubDate>Mon, 06 May 2024 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Inhaler adherence study</title>
      <link>https://clinicaltrials.gov/study/NCT00000002</link>
      <pubDate>Tue, 07 May 2024 12:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

const arxivAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>arXiv Query</title>
  <id>http://arxiv.org/api/query</id>
  <updated>2024-05-08T00:00:00Z</updated>
  <entry>
    <id>http://arxiv.org/abs/2405.00001v1</id>
    <title>Deep learning for
      retinal imaging</title>
    <summary>We train a model on fundus photographs.</summary>
    <published>2024-05-01T00:00:00Z</published>
    <updated>2024-05-02T00:00:00Z</updated>
    <link href="http://arxiv.org/abs/2405.00001v1" rel="alternate" type="text/html"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2405.00002v1</id>
    <title>Survival models with missing covariates</title>
    <summary>Multiple imputation for Cox models.</summary>
    <updated>2024-05-03T00:00:00Z</updated>
    <link href="http://arxiv.org/abs/2405.00002v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`

func TestFeed_Extract_RSS(t *testing.T) {
	records, err := NewFeed(paper.SourceClinicalTrials).Extract([]byte(clinicalTrialsRSS), "https://clinicaltrials.gov/rss?cond=asthma")
	require.NoError(t, err)
	require.Len(t, records, 1, "item without description should be skipped")

	assert.Equal(t, "Biologic therapy for severe asthma", records[0].Title)
	assert.Equal(t, "ClinicalTrials.gov", records[0].Source)
	assert.Equal(t, "https://clinicaltrials.gov/study/NCT00000001", records[0].URL)
	assert.Equal(t, "Mon, 06 May 2024 12:00:00 GMT", records[0].Date)
}

func TestFeed_Extract_Atom(t *testing.T) {
	records, err := NewFeed(paper.SourceArXiv).Extract([]byte(arxivAtom), "http://export.arxiv.org/api/query?search_query=all:medicine")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Deep learning for retinal imaging", records[0].Title)
	assert.Equal(t, "We train a model on fundus photographs.", records[0].Abstract)
	assert.Equal(t, "2024-05-01T00:00:00Z", records[0].Date)
	assert.Equal(t, "arXiv", records[0].Source)

	// Falls back to updated when published is absent.
	assert.Equal(t, "2024-05-03T00:00:00Z", records[1].Date)
}

func TestFeed_Extract_NotAFeed(t *testing.T) {
	_, err := NewFeed(paper.SourceArXiv).Extract([]byte("this is not xml"), "http://export.arxiv.org/api/query")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	for _, st := range paper.SourceTypes() {
		ex, err := reg.For(st)
		require.NoError(t, err, "source type %s", st)
		assert.NotNil(t, ex)
	}

	_, err := reg.For(paper.SourceType("unknown"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	st, err := Resolve(paper.SourceNature, "https://pubmed.ncbi.nlm.nih.gov/")
	require.NoError(t, err)
	assert.Equal(t, paper.SourceNature, st, "explicit type wins over detection")

	st, err = Resolve("", "https://www.medrxiv.org/search/covid")
	require.NoError(t, err)
	assert.Equal(t, paper.SourceMedRxiv, st)

	_, err = Resolve("", "https://example.org/")
	assert.Error(t, err)
}
