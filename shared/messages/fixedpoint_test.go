package messages

import (
	"testing"

	"github.com/automoto/ordnance/shared/gamemath"
)

func TestEncodeVecQuantizes(t *testing.T) {
	got := EncodeVec(gamemath.Vec3{1.5, -2, 0.03125})
	if got != [3]int{24, -32, 1} {
		t.Fatalf("expected {24 -32 1}, got %v", got)
	}
	back := DecodeVec(got)
	if back != (gamemath.Vec3{1.5, -2, 0.0625}) {
		t.Fatalf("unexpected decode %v", back)
	}
}

func TestEncodeDirRoundTripWithinPrecision(t *testing.T) {
	dir := gamemath.Normalize(gamemath.Vec3{3, 4, 0})
	back := DecodeDir(EncodeDir(dir))
	if gamemath.Dist(dir, back) > 0.01 {
		t.Fatalf("expected %v within 0.01 of %v", back, dir)
	}
}

func TestEncodeDistance(t *testing.T) {
	if EncodeDistance(50) != 800 {
		t.Fatalf("expected 800, got %d", EncodeDistance(50))
	}
	if DecodeDistance(800) != 50 {
		t.Fatalf("expected 50, got %v", DecodeDistance(800))
	}
}
