package probe

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDocument builds a payload large enough to pass the size check.
func fakeDocument(marker string) []byte {
	return append([]byte("%PDF-1.4 "+marker+" "), bytes.Repeat([]byte{0x20}, 2048)...)
}

func newDocServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/docs/pcap_clausulas.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(fakeDocument("pcap"))
	})
	mux.HandleFunc("/docs/memoria_tecnica.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(fakeDocument("ppt"))
	})
	mux.HandleFunc("/docs/otros.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(fakeDocument("otros"))
	})
	mux.HandleFunc("/docs/landing.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<!DOCTYPE html><html><body>redirigido</body></html>"))
	})
	mux.HandleFunc("/docs/tiny.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("err"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProbeLinksFillsBothSlots(t *testing.T) {
	srv := newDocServer(t)
	p := NewProber(srv.Client(), "", "")

	res := p.ProbeLinks(context.Background(), []string{
		srv.URL + "/docs/pcap_clausulas.pdf",
		srv.URL + "/docs/memoria_tecnica.pdf",
	})

	require.NotNil(t, res.Admin)
	require.NotNil(t, res.Tech)
	assert.Equal(t, "pcap_clausulas.pdf", res.Admin.FileName)
	assert.Equal(t, "memoria_tecnica.pdf", res.Tech.FileName)
}

func TestProbeLinksOneFilePerSlot(t *testing.T) {
	srv := newDocServer(t)
	p := NewProber(srv.Client(), "", "")

	// Two reachable ADMIN documents: only the first fills the slot.
	res := p.ProbeLinks(context.Background(), []string{
		srv.URL + "/docs/pcap_clausulas.pdf",
		srv.URL + "/docs/pcap_clausulas.pdf?v=2",
	})

	require.NotNil(t, res.Admin)
	assert.Nil(t, res.Tech)
	assert.Equal(t, srv.URL+"/docs/pcap_clausulas.pdf", res.Admin.SourceUrl)
}

func TestProbeLinksUnknownFillsAdminFirst(t *testing.T) {
	srv := newDocServer(t)
	p := NewProber(srv.Client(), "", "")

	res := p.ProbeLinks(context.Background(), []string{srv.URL + "/docs/otros.pdf"})

	require.NotNil(t, res.Admin)
	assert.Nil(t, res.Tech)
}

func TestProbeLinksRejectsHtmlAndTinyResponses(t *testing.T) {
	srv := newDocServer(t)
	p := NewProber(srv.Client(), "", "")

	res := p.ProbeLinks(context.Background(), []string{
		srv.URL + "/docs/landing.pdf",
		srv.URL + "/docs/tiny.pdf",
	})

	assert.Nil(t, res.Admin)
	assert.Nil(t, res.Tech)
}

func TestProbeLinksSkipsNonDocumentHosts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	p := NewProber(srv.Client(), "", "")
	res := p.ProbeLinks(context.Background(), []string{
		"https://www.facebook.com/ayuntamiento",
		"https://twitter.com/perfil",
		"mailto:contratacion@example.es",
	})

	assert.Nil(t, res.Admin)
	assert.Nil(t, res.Tech)
	assert.Equal(t, int32(0), calls.Load())
}

func TestProbeLinksEmptyInput(t *testing.T) {
	p := NewProber(nil, "", "")
	res := p.ProbeLinks(context.Background(), nil)
	assert.Nil(t, res.Admin)
	assert.Nil(t, res.Tech)
}

func TestProbeLinksUnreachableAbsorbed(t *testing.T) {
	p := NewProber(&http.Client{}, "", "")
	res := p.ProbeLinks(context.Background(), []string{"http://127.0.0.1:1/nope.pdf"})
	assert.Nil(t, res.Admin)
	assert.Nil(t, res.Tech)
	assert.NotEmpty(t, res.Log)
}

func TestProbeLinksStopsEarly(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(fakeDocument(r.URL.Path))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// First batch of 4 resolves both slots; the fifth link must not be hit.
	p := NewProber(srv.Client(), "", "")
	res := p.ProbeLinks(context.Background(), []string{
		srv.URL + "/pcap.pdf",
		srv.URL + "/ppt.pdf",
		srv.URL + "/otros1.pdf",
		srv.URL + "/otros2.pdf",
		srv.URL + "/never.pdf",
	})

	require.NotNil(t, res.Admin)
	require.NotNil(t, res.Tech)
	assert.Equal(t, int32(4), calls.Load())
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"a", "b", "a", "", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
