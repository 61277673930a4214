package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/app/services/node/handlers"
	"github.com/ardanlabs/powledger/business/sys/metrics"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/events"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestDemo(t *testing.T) {
	t.Log("Given the need to run the ledger in process.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the configured difficulty does not fit a genesis.", testID)
		{
			t.Setenv("LEDGER_DIFFICULTY", "65537")

			if _, err := execute(t, "demo"); err == nil || !strings.Contains(err.Error(), "65537") {
				t.Fatalf("\t%s\tTest %d:\tShould refuse the difficulty instead of truncating it: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould refuse the difficulty instead of truncating it.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen running the demo at difficulty 1.", testID)
		{
			out, err := execute(t, "demo", "--difficulty", "1")
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to run the demo: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to run the demo.", success, testID)

			if !strings.Contains(out, "block #1 added successfully!") {
				t.Fatalf("\t%s\tTest %d:\tShould report the mined block:\n%s", failed, testID, out)
			}
			t.Logf("\t%s\tTest %d:\tShould report the mined block.", success, testID)

			lines := strings.Split(strings.TrimSpace(out[strings.Index(out, "blockchain:"):]), "\n")
			if len(lines) != 3 || !strings.HasPrefix(lines[1], "0 ") || !strings.HasPrefix(lines[2], "1 ") {
				t.Fatalf("\t%s\tTest %d:\tShould print both blocks:\n%s", failed, testID, out)
			}
			t.Logf("\t%s\tTest %d:\tShould print both blocks.", success, testID)
		}
	}
}

func TestNodeCommands(t *testing.T) {
	gen := genesis.Default()
	gen.Difficulty = 1

	st, err := state.New(state.Config{Genesis: gen})
	if err != nil {
		t.Fatalf("unable to construct the ledger: %v", err)
	}
	defer st.Shutdown()

	mux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      zap.NewNop().Sugar(),
		State:    st,
		Evts:     events.New(),
		Metrics:  metrics.New(),
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Log("Given the need to drive a node from the command line.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen submitting and mining transactions.", testID)
		{
			out, err := execute(t, "submit", "--url", srv.URL, "a", "b")
			if err != nil || !strings.Contains(out, "pending[2]") {
				t.Fatalf("\t%s\tTest %d:\tShould submit the transactions: %v: %s", failed, testID, err, out)
			}
			t.Logf("\t%s\tTest %d:\tShould submit the transactions.", success, testID)

			out, err = execute(t, "mine", "--url", srv.URL)
			if err != nil || !strings.Contains(out, "block #1 added successfully") {
				t.Fatalf("\t%s\tTest %d:\tShould mine the block: %v: %s", failed, testID, err, out)
			}
			t.Logf("\t%s\tTest %d:\tShould mine the block.", success, testID)

			out, err = execute(t, "mine", "--url", srv.URL)
			if err != nil || !strings.Contains(out, "no transactions to mine") {
				t.Fatalf("\t%s\tTest %d:\tShould report nothing to mine: %v: %s", failed, testID, err, out)
			}
			t.Logf("\t%s\tTest %d:\tShould report nothing to mine.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen inspecting the chain.", testID)
		{
			out, err := execute(t, "chain", "--url", srv.URL)
			if err != nil || !strings.Contains(out, st.RetrieveLatestBlock().Hash()) {
				t.Fatalf("\t%s\tTest %d:\tShould print the tip hash: %v: %s", failed, testID, err, out)
			}
			t.Logf("\t%s\tTest %d:\tShould print the tip hash.", success, testID)

			out, err = execute(t, "status", "--url", srv.URL)
			if err != nil || !strings.Contains(out, "height:       1") {
				t.Fatalf("\t%s\tTest %d:\tShould print the height: %v: %s", failed, testID, err, out)
			}
			t.Logf("\t%s\tTest %d:\tShould print the height.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the node refuses the request.", testID)
		{
			resp, err := http.Get(srv.URL + "/v1/mining/signal")
			if err != nil || resp.StatusCode != http.StatusConflict {
				t.Fatalf("\t%s\tTest %d:\tShould have no background worker.", failed, testID)
			}
			resp.Body.Close()

			if _, err := execute(t, "submit", "--url", srv.URL+"/nope", "a"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould report the failed request.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould report the failed request.", success, testID)
		}
	}
}
