package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/storage/memory"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// chain mines the specified number of blocks on top of genesis and returns
// the full chain.
func chain(t *testing.T, n int) []database.Block {
	gen := genesis.Default()
	gen.Difficulty = 1

	db, err := database.New(gen, memory.New(), nil)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a database: %v", failed, err)
	}

	for range n {
		c := database.NewCandidate(db.LatestBlock(), []string{"a"}, time.Now())
		proof, err := database.POW(context.Background(), 1, &c, nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to solve a block: %v", failed, err)
		}
		if _, err := db.AddBlock(c, proof.Hash); err != nil {
			t.Fatalf("\t%s\tShould be able to add a block: %v", failed, err)
		}
	}

	return db.Blocks()
}

func TestMemory(t *testing.T) {
	t.Log("Given the need to hold sealed blocks in memory.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen writing and reading blocks.", testID)
		{
			m := memory.New()
			block := database.NewGenesisBlock(genesis.Default(), time.Now())

			if err := m.Write(block); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to write a block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to write a block.", success, testID)

			got, err := m.GetBlock(0)
			if err != nil || got.Hash() != block.Hash() {
				t.Fatalf("\t%s\tTest %d:\tShould read back the same block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould read back the same block.", success, testID)

			if _, err := m.GetBlock(1); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould fail to read past the end.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould fail to read past the end.", success, testID)

			blocks := m.Blocks()
			blocks[0] = database.Block{}
			if got, _ := m.GetBlock(0); got.Hash() != block.Hash() || m.Len() != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould hand out a copy of the chain.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould hand out a copy of the chain.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen writing blocks out of order.", testID)
		{
			blocks := chain(t, 2)
			m := memory.New()

			if err := m.Write(blocks[2]); !errors.Is(err, database.ErrOutOfOrder) {
				t.Fatalf("\t%s\tTest %d:\tShould refuse block 2 in an empty store: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould refuse block 2 in an empty store.", success, testID)

			if m.Len() != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould leave the store empty: %d", failed, testID, m.Len())
			}
			t.Logf("\t%s\tTest %d:\tShould leave the store empty.", success, testID)

			for i, blk := range blocks {
				if err := m.Write(blk); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould accept block %d in order: %v", failed, testID, i, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould accept the blocks in order.", success, testID)

			if err := m.Write(blocks[1]); !errors.Is(err, database.ErrOutOfOrder) {
				t.Fatalf("\t%s\tTest %d:\tShould refuse a repeated position: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould refuse a repeated position.", success, testID)
		}
	}
}
