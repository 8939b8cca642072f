package sampling

import (
	"errors"
	"math"
	"testing"
)

func TestFixed(t *testing.T) {
	d, err := Fixed(-42.5)
	if err != nil {
		t.Fatalf("Fixed: %v", err)
	}
	batch, err := d.Sample(5)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for i, v := range batch {
		if v != -42.5 {
			t.Fatalf("batch[%d] = %v, want -42.5", i, v)
		}
	}

	if _, err := Fixed(math.NaN()); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("Fixed(NaN): err = %v, want ErrInvalidDistribution", err)
	}
}

func TestSample_RejectsNonPositiveCount(t *testing.T) {
	d, err := Fixed(1)
	if err != nil {
		t.Fatalf("Fixed: %v", err)
	}
	for _, n := range []int{0, -1} {
		if _, err := d.Sample(n); !errors.Is(err, ErrInvalidDistribution) {
			t.Errorf("Sample(%d): err = %v, want ErrInvalidDistribution", n, err)
		}
	}
}

func TestNormal_SeededDeterminism(t *testing.T) {
	draw := func() []float64 {
		d, err := Normal(40, 2, NewSource(1234))
		if err != nil {
			t.Fatalf("Normal: %v", err)
		}
		batch, err := d.Sample(100)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		return batch
	}

	first := draw()
	second := draw()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("seeded draws diverge at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestNormal_ZeroStdDevIsConstant(t *testing.T) {
	d, err := Normal(40, 0, NewSource(1))
	if err != nil {
		t.Fatalf("Normal: %v", err)
	}
	batch, err := d.Sample(10)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for i, v := range batch {
		if v != 40 {
			t.Fatalf("batch[%d] = %v, want exactly 40", i, v)
		}
	}
}

func TestNormal_InvalidParameters(t *testing.T) {
	if _, err := Normal(40, -1, nil); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("negative stddev: err = %v, want ErrInvalidDistribution", err)
	}
	if _, err := Normal(math.Inf(1), 1, nil); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("infinite mean: err = %v, want ErrInvalidDistribution", err)
	}
}

func TestUniform_SamplesStayInRange(t *testing.T) {
	d, err := Uniform(900, 1100, NewSource(7))
	if err != nil {
		t.Fatalf("Uniform: %v", err)
	}
	batch, err := d.Sample(1000)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for i, v := range batch {
		if v < 900 || v >= 1100 {
			t.Fatalf("batch[%d] = %v, outside [900, 1100)", i, v)
		}
	}
}

func TestUniform_InvalidAndDegenerateBounds(t *testing.T) {
	if _, err := Uniform(10, 5, nil); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("inverted bounds: err = %v, want ErrInvalidDistribution", err)
	}

	d, err := Uniform(5, 5, nil)
	if err != nil {
		t.Fatalf("Uniform with equal bounds: %v", err)
	}
	batch, err := d.Sample(3)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for _, v := range batch {
		if v != 5 {
			t.Fatalf("degenerate uniform drew %v, want 5", v)
		}
	}
}
