package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVIngestor_OneDocumentPerDataRow(t *testing.T) {
	csv := "name,age\nAlice,30\nBob,25\n"

	docs, err := NewCSVIngestor().Ingest(context.Background(), "people.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "name: Alice\nage: 30", docs[0].Text)
	assert.Equal(t, "name: Bob\nage: 25", docs[1].Text)
	assert.Equal(t, "people.csv", docs[0].Metadata["source"])
	assert.Equal(t, "1", docs[0].Metadata["row"])
	assert.Equal(t, "2", docs[1].Metadata["row"])
}

func TestCSVIngestor_AnyColumnLayoutAccepted(t *testing.T) {
	csv := "id,description,price,stock,category\n1,Widget,9.99,12,tools\n"

	docs, err := NewCSVIngestor().Ingest(context.Background(), "inv.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Text, "description: Widget")
	assert.Contains(t, docs[0].Text, "category: tools")
}

func TestCSVIngestor_HeaderOnlyYieldsNoDocuments(t *testing.T) {
	docs, err := NewCSVIngestor().Ingest(context.Background(), "empty.csv", strings.NewReader("name,age\n"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCSVIngestor_EmptyFileFails(t *testing.T) {
	_, err := NewCSVIngestor().Ingest(context.Background(), "nothing.csv", strings.NewReader(""))
	assert.Error(t, err)
}

func TestCSVIngestor_RaggedRowsFail(t *testing.T) {
	csv := "name,age\nAlice,30\nBob,25,extra\n"

	_, err := NewCSVIngestor().Ingest(context.Background(), "ragged.csv", strings.NewReader(csv))
	assert.Error(t, err)
}

func TestCSVIngestor_InvalidUTF8Fails(t *testing.T) {
	csv := "name,age\n\xff\xfe\xfd,30\n"

	_, err := NewCSVIngestor().Ingest(context.Background(), "binary.csv", strings.NewReader(csv))
	assert.Error(t, err)
}

func TestCSVIngestor_QuotedFieldsWithCommas(t *testing.T) {
	csv := "name,notes\nAlice,\"likes cats, dogs\"\n"

	docs, err := NewCSVIngestor().Ingest(context.Background(), "q.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "name: Alice\nnotes: likes cats, dogs", docs[0].Text)
}

func TestCSVIngestor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVIngestor().Ingest(ctx, "t.csv", strings.NewReader("name\nAlice\n"))
	assert.Error(t, err)
}
