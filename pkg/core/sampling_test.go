package core

import (
	"math/rand"
	"testing"
)

func TestSamplePointInUnitSphere_StaysInside(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() > 1+1e-12 {
			t.Fatalf("Point %v lies outside the unit sphere", p)
		}
	}
}

func TestSamplePointInUnitSphere_Corners(t *testing.T) {
	// u1 = 0 collapses to the center regardless of the angles
	if p := SamplePointInUnitSphere(NewVec3(0, 0.3, 0.7)); p.Length() > 1e-12 {
		t.Errorf("Expected center for zero radius sample, got %v", p)
	}

	// u1 = 1, u3 = 1 is the north pole
	p := SamplePointInUnitSphere(NewVec3(1, 0, 1))
	if p.Subtract(NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected north pole, got %v", p)
	}
}

func TestRandomSampler_Range(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(1)))
	for i := 0; i < 100; i++ {
		v := sampler.Get1D()
		if v < 0 || v >= 1 {
			t.Fatalf("Get1D out of range: %f", v)
		}
		p := sampler.Get2D()
		if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
			t.Fatalf("Get2D out of range: %v", p)
		}
	}
}
