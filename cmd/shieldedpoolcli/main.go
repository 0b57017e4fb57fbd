// shieldedpoolcli is a command-line tool for exercising the shielded
// pool state machine directly, without a running node: generating
// spend authorities, minting demonstration notes, and driving the
// apply pipeline by hand.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shieldedpool/core/internal/action"
	"github.com/shieldedpool/core/internal/apply"
	"github.com/shieldedpool/core/internal/commitment"
	"github.com/shieldedpool/core/internal/store"
	"github.com/shieldedpool/core/internal/tct"
	"github.com/shieldedpool/core/pkg/field"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("shieldedpoolcli v%s\n", version)

	case "help":
		printUsage()

	case "keygen":
		cmdKeygen()

	case "demo":
		if err := cmdDemo(); err != nil {
			fmt.Fprintf(os.Stderr, "demo: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("shieldedpoolcli - inspect the shielded pool's crypto state machine")
	fmt.Println()
	fmt.Println("Usage: shieldedpoolcli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  version   Show version information")
	fmt.Println("  help      Show this help message")
	fmt.Println("  keygen    Generate a spend authority and print its diversified address")
	fmt.Println("  demo      Mint a note, apply a block, spend it, and verify every step")
}

func cmdKeygen() {
	ak, nk, gd, pkd, err := generateSpendAuthority()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Spend authority generated.")
	fmt.Printf("  ak:  %x\n", field.Bytes(ak))
	fmt.Printf("  nk*G:  %x\n", field.Bytes(field.ScalarMul(field.BasePoint(), nk)))
	fmt.Println("Diversified address:")
	fmt.Printf("  g_d:  %x\n", field.Bytes(gd))
	fmt.Printf("  pk_d: %x\n", field.Bytes(pkd))
}

func generateSpendAuthority() (ak field.G, nk field.Fq, gd, pkd field.G, err error) {
	askScalar, err := field.RandomFq()
	if err != nil {
		return
	}
	nk, err = field.RandomFq()
	if err != nil {
		return
	}
	ak = field.ScalarMul(field.BasePoint(), askScalar)
	gd = field.BasePoint()
	pkd = commitment.DerivePkd(gd, ak, nk)
	return
}

// cmdDemo walks the full lifecycle a reader can use to sanity-check the
// module end to end: mint a note, apply it in a block, witness it out
// of the tree, spend it with a verified Spend proof, and apply the
// spend in a second block.
func cmdDemo() error {
	ctx := context.Background()

	ak, nk, gd, pkd, err := generateSpendAuthority()
	if err != nil {
		return fmt.Errorf("generate spend authority: %w", err)
	}
	addr := commitment.Address{Gd: gd, Pkd: pkd, Ckd: [commitment.ClueKeySize]byte{0x01}}

	noteBlinding, err := field.RandomFq()
	if err != nil {
		return err
	}
	val := commitment.Value{Amount: 1000, AssetID: field.Hash{0x01}}
	note := commitment.Note{Address: addr, Value: val, Blinding: noteBlinding}
	cm := note.Commitment()
	fmt.Printf("Minted note commitment: %x\n", cm[:])

	pipeline := apply.New(apply.DefaultConfig(), store.NewInMemoryStore(), nil)
	block1 := apply.Block{Height: 1, Transactions: []apply.Transaction{{
		Outputs: []apply.NoteInsertion{{Commitment: cm, Witness: tct.Keep, EphemeralKey: gd}},
	}}}
	if _, err := pipeline.ApplyBlock(ctx, block1); err != nil {
		return fmt.Errorf("apply block 1: %w", err)
	}
	fmt.Printf("Applied block 1. Global root: %x\n", pipeline.Tree().Root())

	proof, err := pipeline.Tree().Witness(cm)
	if err != nil {
		return fmt.Errorf("witness: %w", err)
	}
	fmt.Printf("Note position: epoch=%d block=%d commitment=%d\n",
		proof.Position.Epoch(), proof.Position.Block(), proof.Position.Commitment())

	valueBlinding, err := field.RandomFq()
	if err != nil {
		return err
	}
	r, err := field.RandomFq()
	if err != nil {
		return err
	}
	rk := commitment.Randomize(ak, r)
	nf := commitment.DeriveNullifier(nk, proof.Position.Uint64(), cm)
	vc := commitment.Commit(val, valueBlinding)

	spend := &action.Spend{
		Inclusion: proof, Gd: gd, Pkd: pkd, Ckd: addr.Ckd,
		Value: val, ValueBlinding: valueBlinding, NoteBlinding: noteBlinding,
		R: r, Ak: ak, Nk: nk,
	}
	spendPub := action.SpendPublic{Anchor: pipeline.Tree().Root(), ValueCommitment: vc, Nullifier: nf, Rk: rk}
	if err := spend.Verify(spendPub); err != nil {
		return fmt.Errorf("spend proof did not verify: %w", err)
	}
	fmt.Println("Spend proof verified.")

	block2 := apply.Block{Height: 2, Transactions: []apply.Transaction{{
		Spends: []apply.NullifierSpend{{Nullifier: nf}},
	}}}
	cb, err := pipeline.ApplyBlock(ctx, block2)
	if err != nil {
		return fmt.Errorf("apply block 2: %w", err)
	}
	fmt.Printf("Applied block 2 (nullifier %x spent). Compact block has %d nullifiers.\n",
		nf[:], len(cb.Nullifiers))
	return nil
}
