package bitree

import (
	"math/rand"
	"testing"

	"github.com/leesper/go_rng"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

func poissonValues(seed int64, n int, lambda float64) []float64 {
	gen := rng.NewPoissonGenerator(seed)
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(gen.Poisson(lambda))
	}
	return values
}

func TestScenario(t *testing.T) {
	tree := From[int](3, 1, 4, 1, 5)

	if tree.Len() != 5 {
		t.Fatalf("Expected Len() = 5, Got %d", tree.Len())
	}

	for k, expected := range []int{0, 3, 4, 8, 9, 14} {
		got, err := tree.Query(k)
		if err != nil {
			t.Fatalf("Query(%d) failed: %s", k, err)
		}
		if got != expected {
			t.Errorf("Expected Query(%d) = %d, Got %d", k, expected, got)
		}
	}

	if err := tree.Update(2, 10); err != nil {
		t.Fatalf("Update(2, 10) failed: %s", err)
	}

	if got, _ := tree.Query(5); got != 24 {
		t.Errorf("Expected Query(5) = 24 after update, Got %d", got)
	}

	// 1 + 14 + 1
	if got, _ := tree.Range(1, 3); got != 16 {
		t.Errorf("Expected Range(1, 3) = 16 after update, Got %d", got)
	}
}

func TestFromMatchesPrefixSums(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 3, 7, 8, 9, 100, 1000} {
		values := poissonValues(int64(n)+1, n, 4)
		expected := floats.CumSum(make([]float64, n), values)

		tree := From(values...)

		if got, _ := tree.Query(0); got != 0 {
			t.Errorf("Expected Query(0) = 0, Got %f", got)
		}
		for k := 1; k <= n; k++ {
			got, err := tree.Query(k)
			if err != nil {
				t.Fatalf("Query(%d) failed: %s", k, err)
			}
			if got != expected[k-1] {
				t.Errorf("n=%d: Expected Query(%d) = %f, Got %f", n, k, expected[k-1], got)
			}
		}

		if total := tree.Total(); total != floats.Sum(values) {
			t.Errorf("n=%d: Expected Total() = %f, Got %f", n, floats.Sum(values), total)
		}
	}
}

func TestUpdatesCommute(t *testing.T) {
	t.Parallel()

	const n = 257
	values := make([]int64, n)
	for i := range values {
		values[i] = rand.Int63n(1000) - 500
	}

	built := From(values...)

	for round := 0; round < 5; round++ {
		tree := New[int64](n)
		for _, i := range rand.Perm(n) {
			if err := tree.Update(i, values[i]); err != nil {
				t.Fatalf("Update(%d) failed: %s", i, err)
			}
		}

		for k := 0; k <= n; k++ {
			a, _ := built.Query(k)
			b, _ := tree.Query(k)
			if a != b {
				t.Fatalf("Expected Query(%d) = %d regardless of update order, Got %d", k, a, b)
			}
		}
	}
}

func TestUpdateTo(t *testing.T) {
	t.Parallel()

	tree := From[int32](5, -2, 7, 0, 3, 3, 9)

	for i := 0; i < tree.Len(); i++ {
		v := int32(rand.Intn(100) - 50)
		if err := tree.UpdateTo(i, v); err != nil {
			t.Fatalf("UpdateTo(%d) failed: %s", i, err)
		}

		hi, _ := tree.Query(i + 1)
		lo, _ := tree.Query(i)
		if hi-lo != v {
			t.Errorf("Expected element %d to be %d after UpdateTo, Got %d", i, v, hi-lo)
		}
		if got, _ := tree.Get(i); got != v {
			t.Errorf("Expected Get(%d) = %d, Got %d", i, v, got)
		}
	}
}

func TestUpdateToUnsigned(t *testing.T) {
	tree := From[uint8](200, 10, 30)

	if err := tree.UpdateTo(0, 1); err != nil {
		t.Fatal(err)
	}

	if got := tree.Total(); got != 41 {
		t.Errorf("Expected Total() = 41 after lowering an unsigned element, Got %d", got)
	}
}

func TestRange(t *testing.T) {
	t.Parallel()

	values := poissonValues(0xDEADBEEF, 64, 10)
	tree := From(values...)

	for l := 0; l < len(values); l++ {
		for r := l; r < len(values); r++ {
			got, err := tree.Range(l, r)
			if err != nil {
				t.Fatalf("Range(%d, %d) failed: %s", l, r, err)
			}

			if expected := floats.Sum(values[l : r+1]); got != expected {
				t.Errorf("Expected Range(%d, %d) = %f, Got %f", l, r, expected, got)
			}

			hi, _ := tree.Query(r + 1)
			lo, _ := tree.Query(l)
			if got != hi-lo {
				t.Errorf("Range(%d, %d) = %f differs from Query difference %f", l, r, got, hi-lo)
			}
		}
	}

	for l := 0; l <= len(values); l++ {
		if got, err := tree.Range(l, l-1); err != nil || got != 0 {
			t.Errorf("Expected empty Range(%d, %d) = 0, Got %f (err=%v)", l, l-1, got, err)
		}
	}
}

func TestIndexOutOfRange(t *testing.T) {
	tree := From(1, 2, 3)

	checks := map[string]error{
		"Update(-1)":   tree.Update(-1, 1),
		"Update(3)":    tree.Update(3, 1),
		"UpdateTo(3)":  tree.UpdateTo(3, 1),
		"UpdateTo(-1)": tree.UpdateTo(-1, 1),
	}
	_, checks["Query(-1)"] = tree.Query(-1)
	_, checks["Query(4)"] = tree.Query(4)
	_, checks["Get(3)"] = tree.Get(3)
	_, checks["Range(0, 3)"] = tree.Range(0, 3)
	_, checks["Range(-1, 2)"] = tree.Range(-1, 2)

	for name, err := range checks {
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Expected %s to fail with ErrIndexOutOfRange, Got %v", name, err)
		}
	}

	if total := tree.Total(); total != 6 {
		t.Errorf("Failed updates must leave the tree untouched. Got Total() = %d", total)
	}

	if _, err := tree.Query(3); err != nil {
		t.Errorf("Query(Len()) should be valid. Got %s", err)
	}
}

func TestNewPanicsOnNegativeLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("New(-1) should panic")
		}
	}()
	New[int](-1)
}

func TestEmptyTree(t *testing.T) {
	tree := New[float64](0)

	if tree.Len() != 0 || tree.Total() != 0 {
		t.Errorf("Expected an empty tree. Got Len() = %d, Total() = %f", tree.Len(), tree.Total())
	}

	if got, err := tree.Query(0); err != nil || got != 0 {
		t.Errorf("Query(0) on an empty tree should be 0. Got %f (err=%v)", got, err)
	}

	if tree.Search(10) != 0 {
		t.Errorf("Search() on an empty tree should be 0")
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	values := []uint64{0, 3, 0, 0, 2, 1, 0, 5, 4, 0, 0}
	tree := From(values...)

	for sum := uint64(0); sum <= tree.Total()+2; sum++ {
		expected := 0
		for k := 0; k <= len(values); k++ {
			if q, _ := tree.Query(k); q <= sum {
				expected = k
			}
		}

		if got := tree.Search(sum); got != expected {
			t.Errorf("Expected Search(%d) = %d, Got %d", sum, expected, got)
		}
	}
}

func TestSearchRandom(t *testing.T) {
	t.Parallel()

	values := poissonValues(42, 1000, 0.5)
	tree := From(values...)
	prefix := floats.CumSum(make([]float64, len(values)), values)

	for i := 0; i < 1000; i++ {
		sum := float64(rand.Intn(int(tree.Total()) + 1))
		k := tree.Search(sum)

		if k > 0 && prefix[k-1] > sum {
			t.Fatalf("Search(%f) = %d overshoots: Query(%d) = %f", sum, k, k, prefix[k-1])
		}
		if k < len(values) && prefix[k] <= sum {
			t.Fatalf("Search(%f) = %d is not the largest fit: Query(%d) = %f", sum, k, k+1, prefix[k])
		}
	}
}

func benchmarkUpdate(n int, b *testing.B) {
	tree := New[int64](n)

	idx := make([]int, b.N)
	for i := range idx {
		idx[i] = rand.Intn(n)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := tree.Update(idx[i], 1); err != nil {
			b.Error(err)
		}
	}
	b.StopTimer()
}

func BenchmarkUpdate1K(b *testing.B) {
	benchmarkUpdate(1000, b)
}

func BenchmarkUpdate1M(b *testing.B) {
	benchmarkUpdate(1000000, b)
}

func BenchmarkQuery(b *testing.B) {
	const n = 1000000
	tree := New[int64](n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.Query(i % (n + 1)); err != nil {
			b.Error(err)
		}
	}
}
