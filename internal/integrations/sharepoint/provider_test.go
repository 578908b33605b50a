package sharepoint

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plantillas-system/internal/entities"
)

type recordingParser struct {
	got []byte
}

func (p *recordingParser) Parse(r io.Reader) ([]entities.Ticket, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p.got = b
	return []entities.Ticket{{Numero: 5932}}, nil
}

func TestProvider_DownloadsAndParses(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("workbook"))
	}))
	defer srv.Close()

	parser := &recordingParser{}
	p := New(srv.URL, "secret", parser, zap.NewNop())

	tickets, err := p.FetchTickets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "workbook", string(parser.got))
	require.Len(t, tickets, 1)
	assert.Equal(t, 5932, tickets[0].Numero)
	assert.Equal(t, ProviderName, p.Name())
}

func TestProvider_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	parser := &recordingParser{}
	_, err := New(srv.URL, "", parser, zap.NewNop()).FetchTickets(context.Background())

	require.Error(t, err)
	assert.Nil(t, parser.got)
}

func TestProvider_MissingURL(t *testing.T) {
	_, err := New("", "", &recordingParser{}, zap.NewNop()).FetchTickets(context.Background())
	assert.Error(t, err)
}
