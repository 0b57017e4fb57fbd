package field

import "testing"

func TestHashRoundTrip(t *testing.T) {
	e, err := RandomFq()
	if err != nil {
		t.Fatalf("RandomFq: %v", err)
	}
	h := FqToHash(e)
	back := HashToFq(h)
	if FqToHash(back) != h {
		t.Error("Hash <-> Fq round trip did not preserve value")
	}
}

func TestHDomainSeparation(t *testing.T) {
	a := FqFromUint64(7)
	b := FqFromUint64(9)

	h1 := H("domain-a", a, b)
	h2 := H("domain-b", a, b)
	if h1 == h2 {
		t.Error("distinct domain tags must not collide on identical inputs")
	}

	h3 := H("domain-a", a, b)
	if h1 != h3 {
		t.Error("H must be deterministic")
	}
}

func TestZeroAndOneHashDistinguished(t *testing.T) {
	if ZeroHash == OneHash {
		t.Fatal("ZeroHash and OneHash must differ")
	}
	if !ZeroHash.IsZero() {
		t.Error("ZeroHash.IsZero() should be true")
	}
	if !OneHash.IsOne() {
		t.Error("OneHash.IsOne() should be true")
	}
	if ZeroHash.IsOne() || OneHash.IsZero() {
		t.Error("IsZero/IsOne must not cross-match")
	}
}

func TestGroupIdentity(t *testing.T) {
	if !IsIdentity(Identity()) {
		t.Error("Identity() must report as identity")
	}
	if IsIdentity(BasePoint()) {
		t.Error("BasePoint() must not be the identity")
	}
}

func TestScalarMulHomomorphism(t *testing.T) {
	g := BasePoint()
	var two Fr
	two.SetUint64(2)
	var three Fr
	three.SetUint64(3)
	var five Fr
	five.SetUint64(5)

	lhs := Add(ScalarMul(g, two), ScalarMul(g, three))
	rhs := ScalarMul(g, five)
	if !Equal(lhs, rhs) {
		t.Error("scalar multiplication must distribute over addition")
	}
}

func TestHashToGeneratorDeterministicAndDistinct(t *testing.T) {
	assetA := Hash{1}
	assetB := Hash{2}

	gA1 := HashToGenerator("asset-gen", assetA)
	gA2 := HashToGenerator("asset-gen", assetA)
	gB := HashToGenerator("asset-gen", assetB)

	if !Equal(gA1, gA2) {
		t.Error("HashToGenerator must be deterministic for the same seed")
	}
	if Equal(gA1, gB) {
		t.Error("distinct seeds must yield distinct generators")
	}
	if IsIdentity(gA1) {
		t.Error("derived generator must not be the identity")
	}
}
