package index

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
)

func docCorpus() *corpus.Corpus {
	c := corpus.New()
	c.Add("Hazard ID", corpus.Table{
		Columns: []string{"incident_id", "title", "location"},
		Rows: []corpus.Row{
			{"incident_id": "INC-001", "title": "missing PPE at compressor", "location": "HTDC"},
			{"title": "no id on this row"},
		},
	})
	return c
}

func TestBuildDocuments_IDSelection(t *testing.T) {
	docs := BuildDocuments(docCorpus())
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].RecordID != "INC-001" {
		t.Errorf("expected hinted id INC-001, got %q", docs[0].RecordID)
	}
	// Rows without an id column value get a synthetic sheet-rowidx id
	if docs[1].RecordID != "Hazard ID-1" {
		t.Errorf("expected synthetic id, got %q", docs[1].RecordID)
	}
}

func TestBuildDocuments_Serialization(t *testing.T) {
	docs := BuildDocuments(docCorpus())
	if !strings.Contains(docs[0].Text, "title: missing PPE at compressor") {
		t.Errorf("serialized text missing column pair: %q", docs[0].Text)
	}
	if !strings.Contains(docs[0].Text, " | ") {
		t.Errorf("expected pipe-joined pairs: %q", docs[0].Text)
	}
	if docs[0].Location != "HTDC" {
		t.Errorf("location metadata = %q", docs[0].Location)
	}
}

func TestBuildDocuments_SkipsEmptyRows(t *testing.T) {
	c := corpus.New()
	c.Add("Empty", corpus.Table{
		Columns: []string{"title"},
		Rows:    []corpus.Row{{}},
	})
	if docs := BuildDocuments(c); len(docs) != 0 {
		t.Errorf("rows with no content must be skipped, got %d docs", len(docs))
	}
}

func TestStore_SearchOrdering(t *testing.T) {
	s := &Store{}
	s.Add(Document{RecordID: "far"}, []float32{0, 1})
	s.Add(Document{RecordID: "near"}, []float32{1, 0.01})
	s.Add(Document{RecordID: "mid"}, []float32{1, 1})

	hits := s.Search([]float32{1, 0}, 2)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Doc.RecordID != "near" || hits[1].Doc.RecordID != "mid" {
		t.Errorf("ordering wrong: %s, %s", hits[0].Doc.RecordID, hits[1].Doc.RecordID)
	}
	if hits[0].Score <= hits[1].Score {
		t.Errorf("scores not descending: %v, %v", hits[0].Score, hits[1].Score)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "idx")
	s := &Store{}
	s.Add(Document{Sheet: "Hazard ID", RecordID: "INC-001", Text: "x"}, []float32{0.5, 0.5})

	if err := s.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 1 || loaded.Docs[0].RecordID != "INC-001" {
		t.Errorf("round trip lost data: %+v", loaded.Docs)
	}
}

type fakeEmbedder struct {
	calls int32
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	atomic.AddInt32(&f.calls, 1)
	out := make([][]float32, len(texts))
	for i, text := range texts {
		// Deterministic toy vector from the text length
		out[i] = []float32{float32(len(text)), 1}
	}
	return out, nil
}

func TestBuilder_BatchesInOrder(t *testing.T) {
	c := corpus.New()
	tbl := corpus.Table{Columns: []string{"incident_id", "title"}}
	for i := 0; i < 5; i++ {
		tbl.Rows = append(tbl.Rows, corpus.Row{
			"incident_id": string(rune('A' + i)),
			"title":       strings.Repeat("x", i+1),
		})
	}
	c.Add("Hazard ID", tbl)

	fe := &fakeEmbedder{}
	b := NewBuilder(fe, 2, 2, nil, false)
	store, err := b.Build(context.Background(), c)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if store.Len() != 5 {
		t.Fatalf("expected 5 docs, got %d", store.Len())
	}
	if n := atomic.LoadInt32(&fe.calls); n != 3 {
		t.Errorf("expected 3 batches of size <=2, got %d calls", n)
	}
	// Vectors line up with their documents regardless of completion order
	for i, doc := range store.Docs {
		if store.Vectors[i][0] != float32(len(doc.Text)) {
			t.Errorf("vector %d does not match doc text length", i)
		}
	}
}

func TestBuilder_ManyBatchesPerWorker(t *testing.T) {
	// Batch count far beyond the pool's channel buffers: the build must
	// complete instead of wedging with all batches queued up front.
	c := corpus.New()
	tbl := corpus.Table{Columns: []string{"incident_id", "title"}}
	for i := 0; i < 40; i++ {
		tbl.Rows = append(tbl.Rows, corpus.Row{
			"incident_id": fmt.Sprintf("INC-%03d", i),
			"title":       strings.Repeat("x", i%7+1),
		})
	}
	c.Add("Hazard ID", tbl)

	type built struct {
		store *Store
		err   error
	}
	done := make(chan built)
	go func() {
		fe := &fakeEmbedder{}
		b := NewBuilder(fe, 1, 1, nil, false)
		store, err := b.Build(context.Background(), c)
		done <- built{store, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			t.Fatalf("build: %v", res.err)
		}
		if res.store.Len() != 40 {
			t.Fatalf("expected 40 docs, got %d", res.store.Len())
		}
		for i, doc := range res.store.Docs {
			if res.store.Vectors[i][0] != float32(len(doc.Text)) {
				t.Errorf("vector %d does not match doc text length", i)
			}
		}
	case <-time.After(10 * time.Second):
		t.Fatal("index build deadlocked with more batches than pool buffers")
	}
}

func TestRetriever_NilStoreDegrades(t *testing.T) {
	r := NewRetriever(nil, nil, 6)
	snippets, err := r.Retrieve(context.Background(), "anything")
	if err != nil || snippets != nil {
		t.Errorf("nil store must degrade to no snippets, got %v, %v", snippets, err)
	}
}
