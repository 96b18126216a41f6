package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/internal/metrics"
	"github.com/pharmatrack/stock-service/internal/model"
	movdto "github.com/pharmatrack/stock-service/internal/movement/dto"
	"github.com/pharmatrack/stock-service/internal/scan/session"
)

type fakeResolver struct {
	product model.Product
	batch   model.Batch
	err     error
}

func (r *fakeResolver) Resolve(_ context.Context, tagID string, _ model.Direction) (*model.Product, *model.Batch, error) {
	if r.err != nil {
		return nil, nil, r.err
	}
	if tagID != r.batch.TagID {
		return nil, nil, fmt.Errorf("%w: tag %q", model.ErrTagNotFound, tagID)
	}
	p, b := r.product, r.batch
	return &p, &b, nil
}

type fakeCommitter struct {
	result *model.MovementResult
	err    error
}

func (c *fakeCommitter) Commit(_ context.Context, input *movdto.CommitInput) (*model.MovementResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	res := *c.result
	res.Movement.Quantity = input.Quantity
	return &res, nil
}

func (c *fakeCommitter) ListMovements(_ context.Context, _ *movdto.MovementFilters) ([]model.Movement, int, error) {
	return []model.Movement{c.result.Movement}, 1, nil
}

func newTestServer(t *testing.T, resolver *fakeResolver, committer *fakeCommitter) *httptest.Server {
	t.Helper()
	log := zap.NewNop()
	sessions := session.NewManager(resolver, committer, metrics.NewRegistry(), log)
	srv := httptest.NewServer(NewScanHandler(sessions, committer, log).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func defaultFixtures() (*fakeResolver, *fakeCommitter) {
	product := model.Product{BaseModel: model.BaseModel{ID: "p1"}, Name: "Saline", UnitsPerPackage: 1}
	batch := model.Batch{BaseModel: model.BaseModel{ID: "b1"}, ProductID: "p1", TagID: "tag-1", Quantity: 5}
	resolver := &fakeResolver{product: product, batch: batch}
	committer := &fakeCommitter{result: &model.MovementResult{
		Movement: model.Movement{ID: "m1", BatchID: "b1", ProductID: "p1", Direction: model.DirectionExit},
		Batch:    batch,
		Product:  product,
	}}
	return resolver, committer
}

func TestActivateAndScan(t *testing.T) {
	resolver, committer := defaultFixtures()
	srv := newTestServer(t, resolver, committer)

	resp := postJSON(t, srv.URL+"/stations/st1/session/activate", map[string]string{"direction": "exit"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("activate status: %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/stations/st1/scans", map[string]string{"tag_id": "tag-1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scan status: %d", resp.StatusCode)
	}
	var outcome struct {
		Committed *model.MovementResult `json:"committed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if outcome.Committed == nil || outcome.Committed.Movement.Quantity != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestActivateRejectsUnknownDirection(t *testing.T) {
	resolver, committer := defaultFixtures()
	srv := newTestServer(t, resolver, committer)

	resp := postJSON(t, srv.URL+"/stations/st1/session/activate", map[string]string{"direction": "sideways"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestScanWithoutSessionConflicts(t *testing.T) {
	resolver, committer := defaultFixtures()
	srv := newTestServer(t, resolver, committer)

	resp := postJSON(t, srv.URL+"/stations/st1/scans", map[string]string{"tag_id": "tag-1"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestScanUnknownTagNotFound(t *testing.T) {
	resolver, committer := defaultFixtures()
	srv := newTestServer(t, resolver, committer)

	postJSON(t, srv.URL+"/stations/st1/session/activate", map[string]string{"direction": "exit"})
	resp := postJSON(t, srv.URL+"/stations/st1/scans", map[string]string{"tag_id": "ghost"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestScanMissingTagRejected(t *testing.T) {
	resolver, committer := defaultFixtures()
	srv := newTestServer(t, resolver, committer)

	resp := postJSON(t, srv.URL+"/stations/st1/scans", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestConfirmWithoutPending(t *testing.T) {
	resolver, committer := defaultFixtures()
	srv := newTestServer(t, resolver, committer)

	postJSON(t, srv.URL+"/stations/st1/session/activate", map[string]string{"direction": "exit"})
	resp := postJSON(t, srv.URL+"/stations/st1/confirm", map[string]any{"tag_id": "tag-1", "quantity": 3})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSessionSnapshot(t *testing.T) {
	resolver, committer := defaultFixtures()
	srv := newTestServer(t, resolver, committer)

	resp, err := http.Get(srv.URL + "/stations/st1/session")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	defer resp.Body.Close()
	var snap struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.State != "idle" {
		t.Fatalf("expected idle, got %s", snap.State)
	}
}

func TestListMovements(t *testing.T) {
	resolver, committer := defaultFixtures()
	srv := newTestServer(t, resolver, committer)

	resp, err := http.Get(srv.URL + "/movements")
	if err != nil {
		t.Fatalf("get movements: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 {
		t.Fatalf("expected total 1, got %d", body.Total)
	}
}
