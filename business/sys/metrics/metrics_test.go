package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/business/sys/metrics"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestScrape(t *testing.T) {
	t.Log("Given the need to expose ledger metrics.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen scraping the registry.", testID)
		{
			m := metrics.New()
			m.Requests.Inc()

			stats := func() state.Stats {
				return state.Stats{Height: 7, Pending: 2, Difficulty: 3, BlocksMined: 7, Attempts: 4096}
			}
			if err := m.Register(metrics.NewLedgerCollector(stats)); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to register the collector: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to register the collector.", success, testID)

			r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			w := httptest.NewRecorder()
			m.Handler().ServeHTTP(w, r)

			body, _ := io.ReadAll(w.Result().Body)
			for _, exp := range []string{
				"powledger_chain_height 7",
				"powledger_mempool_pending 2",
				"powledger_chain_difficulty 3",
				"powledger_mining_attempts_total 4096",
				"powledger_http_requests_total 1",
			} {
				if !strings.Contains(string(body), exp) {
					t.Fatalf("\t%s\tTest %d:\tShould expose %q.", failed, testID, exp)
				}
				t.Logf("\t%s\tTest %d:\tShould expose %q.", success, testID, exp)
			}
		}
	}
}
