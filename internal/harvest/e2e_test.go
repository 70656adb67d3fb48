package harvest_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshitcodes/DocuMed/internal/chunker"
	"github.com/lakshitcodes/DocuMed/internal/config"
	"github.com/lakshitcodes/DocuMed/internal/extractor"
	"github.com/lakshitcodes/DocuMed/internal/fetcher"
	"github.com/lakshitcodes/DocuMed/internal/harvest"
	"github.com/lakshitcodes/DocuMed/internal/indexer"
	"github.com/lakshitcodes/DocuMed/internal/paper"
	"github.com/lakshitcodes/DocuMed/internal/snapshot"
	"github.com/lakshitcodes/DocuMed/internal/storage"
	"github.com/lakshitcodes/DocuMed/internal/vectorindex"
	"github.com/lakshitcodes/DocuMed/internal/vectorindex/vectorindextest"
	"github.com/lakshitcodes/DocuMed/internal/vectorstore"
)

const item2Abstract = "Nightly melatonin shortened sleep onset latency in shift workers by eighteen minutes."

const threeValidOneMalformed = `<html><body>
  <article class="full-docsum">
    <a class="docsum-title" href="/3001/">SGLT2 inhibitors in heart failure</a>
    <div class="full-view-snippet">Dapagliflozin reduced hospitalization for heart failure.</div>
    <span class="docsum-journal-citation">Circulation. 2024;149:1.</span>
  </article>
  <article class="full-docsum">
    <a class="docsum-title" href="/3002/">Melatonin for shift work sleep disorder</a>
    <div class="full-view-snippet">` + item2Abstract + `</div>
    <span class="docsum-journal-citation">Sleep. 2024;47:2.</span>
  </article>
  <article class="full-docsum">
    <div class="full-view-snippet">Malformed item with no title element.</div>
    <span class="docsum-journal-citation">Unknown. 2024.</span>
  </article>
  <article class="full-docsum">
    <a class="docsum-title" href="/3004/">Exercise and depressive symptoms</a>
    <div class="full-view-snippet">Aerobic exercise reduced depressive symptoms in adolescents.</div>
    <span class="docsum-journal-citation">JAMA Psychiatry. 2024;81:3.</span>
  </article>
</body></html>`

func TestEndToEnd_HarvestIndexSearch(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, threeValidOneMalformed)
	}))
	t.Cleanup(srv.Close)

	c := harvest.New(
		fetcher.New(fetcher.Config{Timeout: 5 * time.Second}),
		extractor.NewRegistry(),
		snapshot.NewStore(t.TempDir()),
	)
	res, err := c.Harvest(ctx, []config.Source{{Name: "PubMed", URL: srv.URL + "/?term=latest", Type: paper.SourcePubMed}})
	require.NoError(t, err)
	require.Len(t, res.Records, 3, "malformed item is skipped")
	item2 := res.Records[1]
	require.Equal(t, "Melatonin for shift work sleep disorder", item2.Title)

	db, err := storage.New(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.Migrate(db))

	index := vectorindex.New(vectorstore.NewSQLiteStore(storage.NewEntryRepo(db)), vectorindextest.NewHashEmbedder(256))
	ch, err := chunker.New(chunker.DefaultChunkSize, chunker.DefaultChunkOverlap)
	require.NoError(t, err)

	stats, err := indexer.NewPipeline(ch, index, "hash-256").IndexRecords(ctx, res.Records)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.ChunksIndexed)

	hits, err := index.Search(ctx, "melatonin shortened sleep onset latency in shift workers", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	var found bool
	for _, hit := range hits {
		if hit.Meta == item2.Ref() {
			found = true
		}
	}
	assert.True(t, found, "item 2 should be among the top 5 hits")
	assert.Equal(t, item2.Title, hits[0].Meta.Title)
}
