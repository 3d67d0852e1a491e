package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/normalizer"
)

func TestMapSeverity(t *testing.T) {
	tests := []struct {
		input    string
		expected entities.Severity
	}{
		{"Major", entities.SeveritySevere},
		{"severe", entities.SeveritySevere},
		{"Contraindicated", entities.SeveritySevere},
		{"moderate", entities.SeverityModerate},
		{"Clinically significant", entities.SeverityModerate},
		{"minor", entities.SeverityMild},
		{"N/A", entities.SeverityMild},
		{"", entities.SeverityMild},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MapSeverity(tt.input); got != tt.expected {
				t.Errorf("MapSeverity(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRecommendation(t *testing.T) {
	if !strings.HasPrefix(Recommendation(entities.SeveritySevere), "AVOID") {
		t.Error("severe recommendation should start with AVOID")
	}
	if !strings.HasPrefix(Recommendation(entities.SeverityModerate), "Use with caution") {
		t.Error("unexpected moderate recommendation")
	}
	if !strings.HasPrefix(Recommendation(""), "Generally safe") {
		t.Error("unknown severity should fall back to the mild text")
	}
}

func TestCleanText(t *testing.T) {
	t.Run("collapses whitespace and symbols", func(t *testing.T) {
		got := CleanText("  Warfarin:\n\n  increased   INR ★ (see 7.1)  ")
		if got != "Warfarin: increased INR (see 7.1)" {
			t.Errorf("CleanText = %q", got)
		}
	})

	t.Run("truncates long text", func(t *testing.T) {
		got := CleanText(strings.Repeat("a", MaxTextLength+50))
		if len(got) != MaxTextLength+3 || !strings.HasSuffix(got, "...") {
			t.Errorf("unexpected truncation, length %d", len(got))
		}
	})

	t.Run("short text untouched", func(t *testing.T) {
		if got := CleanText("short"); got != "short" {
			t.Errorf("CleanText = %q", got)
		}
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func rxcuiBody(ids ...string) map[string]any {
	return map[string]any{"idGroup": map[string]any{"rxnormId": ids}}
}

func TestResolveID(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		switch r.URL.Path {
		case "/rxcui.json":
			switch {
			case q.Get("name") == "Aspirin" && q.Get("search") == "1":
				writeJSON(w, rxcuiBody("1191"))
			case q.Get("name") == "warfarin" && q.Get("search") == "0":
				writeJSON(w, rxcuiBody("11289"))
			default:
				writeJSON(w, rxcuiBody())
			}
		case "/spellingsuggestions.json":
			if q.Get("name") == "warfarn" {
				writeJSON(w, map[string]any{"suggestionGroup": map[string]any{
					"suggestionList": map[string]any{"suggestion": []string{"warfarin"}},
				}})
				return
			}
			writeJSON(w, map[string]any{"suggestionGroup": map[string]any{}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewRxNavClient(srv.URL, time.Second, 1000)
	ctx := context.Background()

	t.Run("approximate search", func(t *testing.T) {
		calls.Store(0)
		id, ok := c.ResolveID(ctx, "Aspirin")
		if !ok || id != "1191" {
			t.Errorf("ResolveID = %q, %v", id, ok)
		}
		if calls.Load() != 2 {
			t.Errorf("expected exact then approximate call, got %d calls", calls.Load())
		}
	})

	t.Run("spelling suggestion recursion", func(t *testing.T) {
		id, ok := c.ResolveID(ctx, "warfarn")
		if !ok || id != "11289" {
			t.Errorf("ResolveID = %q, %v", id, ok)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		calls.Store(0)
		if _, ok := c.ResolveID(ctx, "xyzzy"); ok {
			t.Error("expected unknown name")
		}
		// three search modes and one spelling lookup, no recursion
		if calls.Load() != 4 {
			t.Errorf("expected 4 calls, got %d", calls.Load())
		}
	})
}

const interactionPayload = `{
  "interactionTypeGroup": [{
    "interactionType": [{
      "comment": "type comment",
      "interactionPair": [
        {
          "interactionConcept": [
            {"minConceptItem": {"name": "warfarin", "rxcui": "11289"}},
            {"minConceptItem": {"name": "aspirin", "rxcui": "1191"}}
          ],
          "severity": "high",
          "description": "Aspirin may increase the anticoagulant effect of warfarin."
        },
        {
          "interactionConcept": [
            {"minConceptItem": {"name": "warfarin"}},
            {"sourceConceptItem": {"name": "Fluconazole"}}
          ]
        },
        {"interactionConcept": []}
      ]
    }, {}]
  }, {}]
}`

func TestInteractionsForID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("rxcui") != "11289" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(interactionPayload))
	}))
	defer srv.Close()

	c := NewRxNavClient(srv.URL, time.Second, 1000)

	findings, ok := c.InteractionsForID(context.Background(), "11289")
	if !ok {
		t.Fatal("expected success")
	}
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d: %+v", len(findings), findings)
	}
	if findings[0].PartnerName != "aspirin" || findings[0].Severity != "high" {
		t.Errorf("unexpected first finding: %+v", findings[0])
	}
	if findings[1].PartnerName != "Fluconazole" {
		t.Errorf("source concept fallback not used: %+v", findings[1])
	}
	if findings[1].Description != "type comment" || findings[1].Severity != "moderate" {
		t.Errorf("defaults not applied: %+v", findings[1])
	}

	if _, ok := c.InteractionsForID(context.Background(), "1"); ok {
		t.Error("expected failure on server error")
	}
}

func TestLabelInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		if search != `openfda.generic_name:"ibuprofen"` {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"error": map[string]string{"code": "NOT_FOUND"}})
			return
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("unexpected limit %q", r.URL.Query().Get("limit"))
		}
		writeJSON(w, map[string]any{"results": []map[string]any{
			{
				"warnings":          []string{"Stomach bleeding warning"},
				"drug_interactions": []string{"Warfarin: increased bleeding risk."},
				"openfda":           map[string]any{"generic_name": []string{"IBUPROFEN"}},
			},
			{"drug_interactions": []string{"ACE inhibitors: reduced effect."}},
		}})
	}))
	defer srv.Close()

	c := NewLabelClient(srv.URL, time.Second, 1000)

	label, ok := c.LabelInfo(context.Background(), "ibuprofen")
	if !ok {
		t.Fatal("expected a label")
	}
	if label.GenericName != "IBUPROFEN" || len(label.DrugInteractions) != 2 {
		t.Errorf("unexpected label: %+v", label)
	}
	if got := label.Mentions("Warfarin"); len(got) != 1 {
		t.Errorf("Mentions(Warfarin) = %v", got)
	}
	if got := label.Mentions("digoxin"); len(got) != 0 {
		t.Errorf("Mentions(digoxin) = %v", got)
	}

	if _, ok := c.LabelInfo(context.Background(), "unknowndrug"); ok {
		t.Error("404 should mean no label")
	}
}

// fakeServices serves both APIs from one test server.
func fakeServices(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/rxcui.json":
			if strings.EqualFold(q.Get("name"), "warfarin") {
				writeJSON(w, rxcuiBody("11289"))
				return
			}
			writeJSON(w, rxcuiBody())
		case "/spellingsuggestions.json":
			writeJSON(w, map[string]any{})
		case "/interaction/interaction.json":
			w.Write([]byte(interactionPayload))
		case "/drug/label.json":
			switch q.Get("search") {
			case `openfda.generic_name:"Warfarin"`:
				writeJSON(w, map[string]any{"results": []map[string]any{{
					"drug_interactions": []string{"Aspirin and other NSAIDs increase bleeding."},
					"warnings":          []string{"Bleeding risk"},
				}}})
			case `openfda.generic_name:"Aspirin"`:
				writeJSON(w, map[string]any{"results": []map[string]any{{
					"drug_interactions": []string{"Anticoagulants such as warfarin: bleeding."},
					"contraindications": []string{"Bleeding disorders"},
				}}})
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		case "/version.json":
			writeJSON(w, map[string]string{"version": "test"})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestClientInteractions(t *testing.T) {
	srv := fakeServices(t)
	defer srv.Close()

	c := New(Config{RxNavBaseURL: srv.URL, OpenFDABaseURL: srv.URL, Timeout: time.Second, RatePerSecond: 1000}, normalizer.Default())

	t.Run("both sources contribute", func(t *testing.T) {
		got := c.NewSession().Interactions(context.Background(), "Warfarin", "Aspirin")

		var terminology, label *entities.Interaction
		for i := range got {
			switch got[i].Source {
			case entities.SourceRemoteTerminology:
				terminology = &got[i]
			case entities.SourceRemoteLabel:
				label = &got[i]
			}
		}

		if terminology == nil {
			t.Fatal("missing terminology finding")
		}
		if terminology.Drug1 != "Warfarin" || terminology.Drug2 != "Aspirin" {
			t.Errorf("unexpected drugs %s/%s", terminology.Drug1, terminology.Drug2)
		}
		if terminology.Recommendation != Recommendation(terminology.Severity) {
			t.Errorf("recommendation does not follow severity")
		}

		if label == nil {
			t.Fatal("missing label finding")
		}
		if label.Severity != entities.SeverityModerate || label.Recommendation != LabelRecommendation {
			t.Errorf("unexpected label finding: %+v", label)
		}
		if len(label.Warnings) != 1 || len(label.Contraindications) != 1 {
			t.Errorf("label sections not attached: %+v", label)
		}
	})

	t.Run("second drug resolved when first is unknown", func(t *testing.T) {
		got := c.NewSession().Interactions(context.Background(), "Aspirin", "Warfarin")
		found := false
		for _, in := range got {
			if in.Source == entities.SourceRemoteTerminology {
				found = true
				if in.Drug1 != "Aspirin" || in.Drug2 != "Warfarin" {
					t.Errorf("drug order not kept: %s/%s", in.Drug1, in.Drug2)
				}
			}
		}
		if !found {
			t.Error("expected terminology finding via the second drug")
		}
	})

	t.Run("no partner match", func(t *testing.T) {
		got := c.NewSession().Interactions(context.Background(), "Warfarin", "Loratadine")
		for _, in := range got {
			if in.Source == entities.SourceRemoteTerminology {
				t.Errorf("unexpected finding %+v", in)
			}
		}
	})

	t.Run("probe", func(t *testing.T) {
		if err := c.Probe(context.Background()); err != nil {
			t.Errorf("Probe returned error: %v", err)
		}
	})
}

func TestClientFailOpen(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"idGroup": [`))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := New(Config{
				RxNavBaseURL:   srv.URL,
				OpenFDABaseURL: srv.URL,
				Timeout:        50 * time.Millisecond,
				RatePerSecond:  1000,
			}, normalizer.Default())

			if got := c.NewSession().Interactions(context.Background(), "warfarin", "aspirin"); len(got) != 0 {
				t.Errorf("expected no findings, got %+v", got)
			}
			if err := c.Probe(context.Background()); err == nil {
				t.Error("Probe should report the failure")
			}
		})
	}
}

func TestClientCancelled(t *testing.T) {
	srv := fakeServices(t)
	defer srv.Close()

	c := New(Config{RxNavBaseURL: srv.URL, OpenFDABaseURL: srv.URL, RatePerSecond: 1000}, normalizer.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := c.NewSession().Interactions(ctx, "Warfarin", "Aspirin"); len(got) != 0 {
		t.Errorf("cancelled context should contribute nothing, got %+v", got)
	}
}

func TestSessionReusesLookups(t *testing.T) {
	var (
		mu    sync.Mutex
		calls = map[string]int{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls[r.URL.Path]++
		mu.Unlock()

		switch r.URL.Path {
		case "/rxcui.json":
			writeJSON(w, rxcuiBody("id-"+strings.ToLower(r.URL.Query().Get("name"))))
		default:
			writeJSON(w, map[string]any{})
		}
	}))
	defer srv.Close()

	c := New(Config{RxNavBaseURL: srv.URL, OpenFDABaseURL: srv.URL, Timeout: time.Second, RatePerSecond: 1000}, normalizer.Default())

	names := []string{"Warfarin", "Aspirin", "Ibuprofen", "Sertraline", "Tramadol", "Alprazolam"}
	session := c.NewSession()

	var wg sync.WaitGroup
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			wg.Add(1)
			go func(a, b string) {
				defer wg.Done()
				session.Interactions(context.Background(), a, b)
			}(names[i], names[j])
		}
	}
	wg.Wait()

	// same drugs with other casing hit the session memo
	session.Interactions(context.Background(), "WARFARIN", "aspirin")

	mu.Lock()
	defer mu.Unlock()
	for _, path := range []string{"/rxcui.json", "/interaction/interaction.json", "/drug/label.json"} {
		if calls[path] > len(names) {
			t.Errorf("%s called %d times for %d drugs", path, calls[path], len(names))
		}
	}
	if calls["/drug/label.json"] != len(names) {
		t.Errorf("expected one label lookup per drug, got %d", calls["/drug/label.json"])
	}

	// a new session starts with an empty memo
	c.NewSession().Interactions(context.Background(), "Warfarin", "Aspirin")
	if calls["/drug/label.json"] != len(names)+2 {
		t.Errorf("expected a fresh session to look labels up again, got %d", calls["/drug/label.json"])
	}
}

func TestSessionStageTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		writeJSON(w, map[string]any{})
	}))
	defer srv.Close()

	c := New(Config{
		RxNavBaseURL:   srv.URL,
		OpenFDABaseURL: srv.URL,
		Timeout:        5 * time.Second,
		StageTimeout:   100 * time.Millisecond,
		RatePerSecond:  1000,
	}, normalizer.Default())

	session := c.NewSession()
	start := time.Now()
	pairs := [][2]string{{"Warfarin", "Aspirin"}, {"Ibuprofen", "Sertraline"}, {"Tramadol", "Alprazolam"}}
	for _, p := range pairs {
		if got := session.Interactions(context.Background(), p[0], p[1]); len(got) != 0 {
			t.Errorf("expected no findings past the deadline, got %+v", got)
		}
	}

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("slow remote held the session for %s", elapsed)
	}
}
