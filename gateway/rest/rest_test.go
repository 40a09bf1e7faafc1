package rest_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/windfab/towerdesk/gateway"
	"github.com/windfab/towerdesk/gateway/memory"
	"github.com/windfab/towerdesk/gateway/rest"
	"github.com/windfab/towerdesk/httpapi"
	"github.com/windfab/towerdesk/record"
)

func newClient(t *testing.T) (*rest.Gateway, *memory.Gateway) {
	t.Helper()
	backend := memory.New()
	ts := httptest.NewServer(httpapi.NewServer(backend, nil).Handler())
	t.Cleanup(ts.Close)
	return rest.New(ts.URL, nil), backend
}

func TestGateway_RoundTrip(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	created, err := client.Create(ctx, "projects", record.Record{
		"customer_name": "Acme",
		"tower_model":   "TM-100",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID() == "" {
		t.Fatal("expected assigned identifier")
	}

	updated, err := client.Update(ctx, "projects", created.ID(), record.Record{"status": "active"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated["status"] != "active" {
		t.Errorf("expected updated record, got %v", updated)
	}

	page, err := client.List(ctx, "projects", gateway.ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || page.Records[0]["customer_name"] != "Acme" {
		t.Errorf("unexpected page: %+v", page)
	}

	if err := client.Delete(ctx, "projects", created.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	page, err = client.List(ctx, "projects", gateway.ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("expected empty table, got %+v", page)
	}
}

func TestGateway_ListParamsForwarded(t *testing.T) {
	client, backend := newClient(t)
	backend.Seed("suppliers",
		record.Record{"id": "1", "supplier_name": "PosCo", "specialization": []string{"철판"}},
		record.Record{"id": "2", "supplier_name": "KCC", "specialization": []string{"도료"}},
	)

	page, err := client.List(context.Background(), "suppliers", gateway.ListParams{
		Filters: map[string]string{"specialization": "도료"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Records) != 1 || page.Records[0].ID() != "2" {
		t.Errorf("expected filtered record 2, got %+v", page.Records)
	}
}

func TestGateway_NotFoundMapping(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	_, err := client.Update(ctx, "projects", "ghost", record.Record{"x": 1})
	if !errors.Is(err, gateway.ErrNotFound) {
		t.Errorf("expected ErrNotFound from update, got %v", err)
	}
	if err := client.Delete(ctx, "projects", "ghost"); !errors.Is(err, gateway.ErrNotFound) {
		t.Errorf("expected ErrNotFound from delete, got %v", err)
	}
}

func TestGateway_ConflictMapping(t *testing.T) {
	client, backend := newClient(t)
	backend.Seed("projects", record.Record{"id": "p1"})

	_, err := client.Create(context.Background(), "projects", record.Record{"id": "p1"})
	if !errors.Is(err, gateway.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

type eofTrackingBody struct {
	io.ReadCloser
	sawEOF *bool
}

func (b eofTrackingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if err == io.EOF {
		*b.sawEOF = true
	}
	return n, err
}

type eofTrackingTransport struct {
	base   http.RoundTripper
	sawEOF *bool
}

func (t eofTrackingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		resp.Body = eofTrackingBody{resp.Body, t.sawEOF}
	}
	return resp, err
}

// Response bodies must be read to EOF even when nothing is decoded, or the
// transport cannot reuse the connection.
func TestGateway_DrainsBodyOnDelete(t *testing.T) {
	backend := memory.New()
	backend.Seed("projects", record.Record{"id": "p1"})
	ts := httptest.NewServer(httpapi.NewServer(backend, nil).Handler())
	t.Cleanup(ts.Close)

	var sawEOF bool
	client := rest.New(ts.URL, &http.Client{
		Transport: eofTrackingTransport{base: http.DefaultTransport, sawEOF: &sawEOF},
	})

	if err := client.Delete(context.Background(), "projects", "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !sawEOF {
		t.Error("expected response body read to EOF")
	}
}

func TestGateway_ServerUnreachable(t *testing.T) {
	client := rest.New("http://127.0.0.1:1", nil)
	_, err := client.List(context.Background(), "projects", gateway.ListParams{})
	if err == nil {
		t.Fatal("expected transport error")
	}
}
