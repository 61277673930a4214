package mempool_test

import (
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
	"github.com/google/go-cmp/cmp"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCRUD(t *testing.T) {
	type table struct {
		name    string
		batches [][]string
		all     []string
		first   int
		remove  int
		rest    []string
	}

	tt := []table{
		{
			name:    "basic",
			batches: [][]string{{"a", "b"}, {"c"}, {}, {"d"}},
			all:     []string{"a", "b", "c", "d"},
			first:   2,
			remove:  3,
			rest:    []string{"d"},
		},
		{
			name:    "remove-more",
			batches: [][]string{{"a"}},
			all:     []string{"a"},
			first:   5,
			remove:  5,
			rest:    []string{},
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transactions.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					var count int
					for _, batch := range tst.batches {
						count = mp.Append(batch...)
					}

					if count != len(tst.all) || mp.Count() != len(tst.all) {
						t.Fatalf("\t%s\tTest %d:\tShould be able to count transactions: got %d", failed, testID, count)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to count transactions.", success, testID)

					if diff := cmp.Diff(tst.all, mp.Copy()); diff != "" {
						t.Fatalf("\t%s\tTest %d:\tShould keep submission order:\n%s", failed, testID, diff)
					}
					t.Logf("\t%s\tTest %d:\tShould keep submission order.", success, testID)

					first := mp.PickFirst(tst.first)
					exp := tst.all
					if tst.first < len(exp) {
						exp = exp[:tst.first]
					}
					if diff := cmp.Diff(exp, first); diff != "" {
						t.Fatalf("\t%s\tTest %d:\tShould pick the oldest transactions:\n%s", failed, testID, diff)
					}
					t.Logf("\t%s\tTest %d:\tShould pick the oldest transactions.", success, testID)

					mp.Remove(tst.remove)
					if diff := cmp.Diff(tst.rest, mp.Copy()); diff != "" {
						t.Fatalf("\t%s\tTest %d:\tShould be able to remove transactions:\n%s", failed, testID, diff)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to remove transactions.", success, testID)

					mp.Append("z")
					if diff := cmp.Diff(append(tst.rest, "z"), mp.Copy()); diff != "" {
						t.Fatalf("\t%s\tTest %d:\tShould append after the remaining transactions:\n%s", failed, testID, diff)
					}
					t.Logf("\t%s\tTest %d:\tShould append after the remaining transactions.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestCopyIsolation(t *testing.T) {
	t.Log("Given the need to hand out copies of the pool.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a copy is modified.", testID)
		{
			mp := mempool.New()
			mp.Append("a", "b")

			cpy := mp.Copy()
			cpy[0] = "changed"

			if got := mp.Copy()[0]; got != "a" {
				t.Fatalf("\t%s\tTest %d:\tShould not change the pool: got %q", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould not change the pool.", success, testID)
		}
	}
}
