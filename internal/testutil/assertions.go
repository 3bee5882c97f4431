package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/udisondev/elevationruler/internal/grid"
)

// Tolerance is the default absolute tolerance for float comparisons.
const Tolerance = 1e-6

// AssertClose проверяет, что got отличается от want не больше чем на tol.
func AssertClose(t testing.TB, want, got, tol float64, msg string) {
	t.Helper()

	if !scalar.EqualWithinAbs(want, got, tol) {
		t.Fatalf("%s: expected %.9f, got %.9f (tol %g)", msg, want, got, tol)
	}
}

// AssertOnSegment проверяет, что p лежит на отрезке a→b.
func AssertOnSegment(t testing.TB, a, b, p grid.Point3) {
	t.Helper()

	ab := r3.Sub(b.Vec(), a.Vec())
	ap := r3.Sub(p.Vec(), a.Vec())
	if r3.Norm(r3.Cross(ab, ap)) > 1e-6*math.Max(1, r3.Norm(ab)) {
		t.Fatalf("point %v is off the line %v -> %v", p, a, b)
	}
	dot := r3.Dot(ap, ab)
	if dot < -1e-6 || dot > r3.Dot(ab, ab)+1e-6 {
		t.Fatalf("point %v is beyond segment %v -> %v", p, a, b)
	}
}
