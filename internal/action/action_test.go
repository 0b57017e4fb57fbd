package action

import (
	"testing"

	"github.com/shieldedpool/core/internal/commitment"
	"github.com/shieldedpool/core/internal/tct"
	"github.com/shieldedpool/core/pkg/field"
)

func randFr(t *testing.T) field.Fr {
	t.Helper()
	e, err := field.RandomFq()
	if err != nil {
		t.Fatalf("RandomFq: %v", err)
	}
	return e
}

// validSpend builds a Spend witness/public pair that is known to
// verify, inserting its note into a fresh tree along the way.
func validSpend(t *testing.T) (*Spend, SpendPublic) {
	t.Helper()
	ak := field.ScalarMul(field.BasePoint(), randFr(t))
	nk := randFr(t)
	gd := field.BasePoint()
	pkd := commitment.DerivePkd(gd, ak, nk)

	val := commitment.Value{Amount: 10, AssetID: field.Hash{7}}
	vb := randFr(t)
	nb := randFr(t)

	addr := commitment.Address{Gd: gd, Pkd: pkd, Ckd: [commitment.ClueKeySize]byte{1}}
	note := commitment.Note{Address: addr, Value: val, Blinding: nb}
	cm := note.Commitment()

	tree := tct.New()
	if _, err := tree.Insert(tct.Keep, cm); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	proof, err := tree.Witness(cm)
	if err != nil {
		t.Fatalf("Witness: %v", err)
	}

	r := randFr(t)
	rk := commitment.Randomize(ak, r)
	nf := commitment.DeriveNullifier(nk, proof.Position.Uint64(), cm)
	vc := commitment.Commit(val, vb)

	s := &Spend{
		Inclusion: proof, Gd: gd, Pkd: pkd, Ckd: addr.Ckd,
		Value: val, ValueBlinding: vb, NoteBlinding: nb,
		R: r, Ak: ak, Nk: nk,
	}
	pub := SpendPublic{Anchor: tree.Root(), ValueCommitment: vc, Nullifier: nf, Rk: rk}
	return s, pub
}

func TestSpendVerifyValid(t *testing.T) {
	s, pub := validSpend(t)
	if err := s.Verify(pub); err != nil {
		t.Fatalf("valid spend failed to verify: %v", err)
	}
}

func TestSpendBitFlipSensitivity(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SpendPublic)
	}{
		{"anchor", func(p *SpendPublic) { p.Anchor[0] ^= 1 }},
		{"nullifier", func(p *SpendPublic) { p.Nullifier[0] ^= 1 }},
		{"value_commitment", func(p *SpendPublic) {
			b := p.ValueCommitment.Bytes()
			b[0] ^= 1
			vc, err := commitment.ValueCommitmentFromBytes(b)
			if err == nil {
				p.ValueCommitment = vc
			} else {
				// Flipping may land off-curve; force a clearly-wrong point instead.
				p.ValueCommitment = commitment.ValueCommitment{Point: field.Identity()}
			}
		}},
		{"rk", func(p *SpendPublic) { p.Rk = field.Identity() }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, pub := validSpend(t)
			c.mutate(&pub)
			if err := s.Verify(pub); err == nil {
				t.Error("mutated public input must fail verification")
			}
		})
	}
}

func TestOutputVerifyValid(t *testing.T) {
	gd := field.BasePoint()
	akDummy := field.ScalarMul(gd, randFr(t))
	pkd := commitment.DerivePkd(gd, akDummy, randFr(t))
	val := commitment.Value{Amount: 5, AssetID: field.Hash{1}}
	vb := randFr(t)
	nb := randFr(t)
	esk := randFr(t)

	o := &Output{Gd: gd, Pkd: pkd, Ckd: [commitment.ClueKeySize]byte{2}, Value: val, ValueBlinding: vb, NoteBlinding: nb, Esk: esk}
	note := commitment.Note{Address: commitment.Address{Gd: gd, Pkd: pkd, Ckd: o.Ckd}, Value: val, Blinding: nb}
	pub := OutputPublic{
		ValueCommitment: commitment.Commit(val, vb).Neg(),
		NoteCommitment:  note.Commitment(),
		Epk:             field.ScalarMul(gd, esk),
	}
	if err := o.Verify(pub); err != nil {
		t.Fatalf("valid output failed to verify: %v", err)
	}

	pub.NoteCommitment[0] ^= 1
	if err := o.Verify(pub); err == nil {
		t.Error("perturbed note commitment must fail verification")
	}
}

func TestSwapAndSwapClaim(t *testing.T) {
	claimGd := field.BasePoint()
	claimAk := field.ScalarMul(claimGd, randFr(t))
	claimNk := randFr(t)
	claimPkd := commitment.DerivePkd(claimGd, claimAk, claimNk)
	claimAddr := commitment.Address{Gd: claimGd, Pkd: claimPkd, Ckd: [commitment.ClueKeySize]byte{3}}

	plaintext := commitment.SwapPlaintext{
		Pair:         commitment.TradingPair{Asset1: field.Hash{1}, Asset2: field.Hash{2}},
		Delta1:       10,
		Delta2:       0,
		Fee:          commitment.Value{Amount: 1, AssetID: field.Hash{1}},
		ClaimAddress: claimAddr,
	}
	assetID := plaintext.AssetID()
	nftBlinding := randFr(t)
	esk := randFr(t)

	swap := &Swap{Plaintext: plaintext, NFTAssetID: assetID, NoteBlinding: nftBlinding, Esk: esk}
	nft := commitment.Note{Address: claimAddr, Value: commitment.Value{Amount: 1, AssetID: assetID}, Blinding: nftBlinding}
	swapPub := SwapPublic{
		Asset1Value:   commitment.CommitPublic(commitment.Value{Amount: 10, AssetID: field.Hash{1}}),
		Asset2Value:   commitment.CommitPublic(commitment.Value{Amount: 0, AssetID: field.Hash{2}}),
		FeeCommitment: commitment.CommitPublic(plaintext.Fee).Neg(),
		NFTCommitment: nft.Commitment(),
		Epk:           field.ScalarMul(claimGd, esk),
	}
	if err := swap.Verify(swapPub); err != nil {
		t.Fatalf("valid swap failed to verify: %v", err)
	}

	tree := tct.New()
	if _, err := tree.Insert(tct.Keep, nft.Commitment()); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tree.EndBlock(); err != nil {
		t.Fatalf("EndBlock: %v", err)
	}
	proof, err := tree.Witness(nft.Commitment())
	if err != nil {
		t.Fatalf("Witness: %v", err)
	}

	const epochDuration = 64
	outputData := BatchSwapOutputData{
		Height:  epochDuration*uint64(proof.Position.Epoch()) + uint64(proof.Position.Block()),
		Lambda1: plaintext.Delta1,
		Lambda2: plaintext.Delta2,
	}

	claimNfKey := randFr(t)
	nullifier := commitment.DeriveNullifier(claimNfKey, proof.Position.Uint64(), nft.Commitment())

	out1Blinding := randFr(t)
	out2Blinding := randFr(t)
	esk1 := randFr(t)
	esk2 := randFr(t)

	claim := &SwapClaim{
		Inclusion: proof, NoteBlinding: nftBlinding, Nk: claimNfKey,
		Plaintext: plaintext, NFTAssetID: assetID,
		Output1Blinding: out1Blinding, Output2Blinding: out2Blinding,
		Esk1: esk1, Esk2: esk2,
	}

	out1Note := commitment.Note{Address: claimAddr, Value: commitment.Value{Amount: outputData.Lambda1, AssetID: plaintext.Pair.Asset1}, Blinding: out1Blinding}
	out2Note := commitment.Note{Address: claimAddr, Value: commitment.Value{Amount: outputData.Lambda2, AssetID: plaintext.Pair.Asset2}, Blinding: out2Blinding}

	claimPub := SwapClaimPublic{
		Anchor: tree.Root(), Nullifier: nullifier, OutputData: outputData, EpochDuration: epochDuration,
		Fee:             plaintext.Fee,
		NoteCommitment1: out1Note.Commitment(), Epk1: field.ScalarMul(claimGd, esk1),
		NoteCommitment2: out2Note.Commitment(), Epk2: field.ScalarMul(claimGd, esk2),
	}
	if err := claim.Verify(claimPub); err != nil {
		t.Fatalf("valid swap claim failed to verify: %v", err)
	}

	badPlaintext := plaintext
	badPlaintext.Delta1 = 11
	badClaim := *claim
	badClaim.Plaintext = badPlaintext
	if err := badClaim.Verify(claimPub); err == nil {
		t.Error("tampering with the swap intent must break asset-id binding")
	}

	badHeight := claimPub
	badHeight.OutputData.Height++
	if err := claim.Verify(badHeight); err == nil {
		t.Error("wrong clearing height must fail verification")
	}
}
