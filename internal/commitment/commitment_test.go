package commitment

import (
	"testing"

	"github.com/shieldedpool/core/pkg/field"
)

func testAddress(t *testing.T) Address {
	t.Helper()
	ak := field.ScalarMul(field.BasePoint(), mustFr(t))
	gd := field.BasePoint()
	nk := mustFq(t)
	return Address{
		Gd:  gd,
		Pkd: DerivePkd(gd, ak, nk),
		Ckd: [ClueKeySize]byte{1, 2, 3},
	}
}

func mustFr(t *testing.T) field.Fr {
	t.Helper()
	e, err := field.RandomFq()
	if err != nil {
		t.Fatalf("RandomFq: %v", err)
	}
	return e
}

func mustFq(t *testing.T) field.Fq { return mustFr(t) }

func TestNoteCommitmentDeterministicAndSensitive(t *testing.T) {
	addr := testAddress(t)
	blinding := mustFq(t)
	n := Note{Address: addr, Value: Value{Amount: 10, AssetID: field.Hash{9}}, Blinding: blinding}

	c1 := n.Commitment()
	c2 := n.Commitment()
	if c1 != c2 {
		t.Fatal("note commitment must be deterministic")
	}

	n2 := n
	n2.Value.Amount = 11
	if n2.Commitment() == c1 {
		t.Error("changing amount must change the commitment")
	}

	n3 := n
	n3.Blinding = mustFq(t)
	if n3.Commitment() == c1 {
		t.Error("changing blinding must change the commitment")
	}
}

func TestValueCommitmentHomomorphism(t *testing.T) {
	asset := field.Hash{1}
	v1 := Value{Amount: 100, AssetID: asset}
	v2 := Value{Amount: 250, AssetID: asset}
	b1 := mustFr(t)
	b2 := mustFr(t)

	c1 := Commit(v1, b1)
	c2 := Commit(v2, b2)

	var bsum field.Fr
	bsum.Add(&b1, &b2)
	expected := Commit(Value{Amount: v1.Amount + v2.Amount, AssetID: asset}, bsum)

	if !c1.Add(c2).Equal(expected) {
		t.Error("Pedersen commitments must add homomorphically")
	}
}

func TestVerifyBalance(t *testing.T) {
	asset := field.Hash{2}
	inAmt := Value{Amount: 50, AssetID: asset}
	outAmt := Value{Amount: 30, AssetID: asset}
	feeAmt := Value{Amount: 20, AssetID: asset}

	inB := mustFr(t)
	outB := mustFr(t)

	in := Commit(inAmt, inB)
	// Choose the output blinding so inB == outB + feeB (feeB == 0, public fee).
	out := Commit(outAmt, inB)
	fee := CommitPublic(feeAmt)

	if !VerifyBalance([]ValueCommitment{in}, []ValueCommitment{out}, fee) {
		t.Error("balanced transaction must verify")
	}

	_ = outB
	unbalancedFee := CommitPublic(Value{Amount: feeAmt.Amount + 1, AssetID: asset})
	if VerifyBalance([]ValueCommitment{in}, []ValueCommitment{out}, unbalancedFee) {
		t.Error("perturbing the fee amount must break balance")
	}
}

func TestDeriveNullifierUniqueness(t *testing.T) {
	nk := mustFq(t)
	commitment := field.Hash{5, 5, 5}

	nf1 := DeriveNullifier(nk, 1, commitment)
	nf2 := DeriveNullifier(nk, 2, commitment)
	if nf1 == nf2 {
		t.Error("distinct positions must yield distinct nullifiers")
	}

	nf1Again := DeriveNullifier(nk, 1, commitment)
	if nf1 != nf1Again {
		t.Error("nullifier derivation must be deterministic")
	}
}

func TestSwapAssetIDBindsIntent(t *testing.T) {
	addr := testAddress(t)
	s1 := SwapPlaintext{
		Pair:         TradingPair{Asset1: field.Hash{1}, Asset2: field.Hash{2}},
		Delta1:       10,
		Delta2:       0,
		Fee:          Value{Amount: 1, AssetID: field.Hash{1}},
		ClaimAddress: addr,
	}
	s2 := s1
	s2.Delta1 = 11

	if s1.AssetID() == s2.AssetID() {
		t.Error("changing the swap intent must change the NFT asset id")
	}

	nft := s1.NFTNote(mustFq(t))
	if nft.Value.Amount != 1 || nft.Value.AssetID != s1.AssetID() {
		t.Error("NFT note must be a singleton of the swap's asset id")
	}
}
