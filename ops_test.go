package chainz

import (
	"reflect"
	"strconv"
	"testing"
)

func TestEach_Orders(t *testing.T) {
	var forward, backward []int
	Each([]int{1, 2, 3}, func(n int) { forward = append(forward, n) })
	EachRight([]int{1, 2, 3}, func(n int) { backward = append(backward, n) })

	if !reflect.DeepEqual(forward, []int{1, 2, 3}) {
		t.Errorf("Expected forward order, got %v", forward)
	}
	if !reflect.DeepEqual(backward, []int{3, 2, 1}) {
		t.Errorf("Expected reverse order, got %v", backward)
	}
}

func TestMapSlice(t *testing.T) {
	got := MapSlice([]int{1, 2, 3}, strconv.Itoa)
	if !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("Expected [1 2 3] as strings, got %v", got)
	}

	if got := MapSlice([]int{}, strconv.Itoa); len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}

func TestFilterSlice(t *testing.T) {
	got := FilterSlice([]int{1, 2, 3, 4, 5, 6}, func(n int) bool { return n%2 == 0 })
	if !reflect.DeepEqual(got, []int{2, 4, 6}) {
		t.Errorf("Expected [2 4 6], got %v", got)
	}
}

func TestFlatMapSlice(t *testing.T) {
	got := FlatMapSlice([]int{1, 2, 3}, func(n int) []int { return []int{n, -n} })
	if !reflect.DeepEqual(got, []int{1, -1, 2, -2, 3, -3}) {
		t.Errorf("Expected interleaved pairs in source order, got %v", got)
	}
}

func TestReduceSlice_Directions(t *testing.T) {
	concat := func(acc string, n int) string { return acc + strconv.Itoa(n) }

	left := ReduceSlice([]int{1, 2, 3}, "", concat)
	if left != "123" {
		t.Errorf("Expected left fold 123, got %s", left)
	}

	right := ReduceRightSlice([]int{1, 2, 3}, "", concat)
	if right != "321" {
		t.Errorf("Expected right fold 321, got %s", right)
	}

	if got := ReduceSlice([]int{}, 42, func(acc, n int) int { return acc + n }); got != 42 {
		t.Errorf("Expected initial value on empty input, got %d", got)
	}
}

func TestGroupBy(t *testing.T) {
	got := GroupBy([]int{1, 2, 3, 4, 5, 6}, func(n int) string {
		if n%2 == 0 {
			return "even"
		}
		return "odd"
	})

	expected := map[string][]int{
		"odd":  {1, 3, 5},
		"even": {2, 4, 6},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestKeyBy_LastWins(t *testing.T) {
	type user struct {
		ID   int
		Name string
	}

	got := KeyBy([]user{
		{ID: 1, Name: "first"},
		{ID: 2, Name: "second"},
		{ID: 1, Name: "replacement"},
	}, func(u user) int { return u.ID })

	if len(got) != 2 {
		t.Fatalf("Expected 2 keys, got %d", len(got))
	}
	if got[1].Name != "replacement" {
		t.Errorf("Expected later element to win, got %q", got[1].Name)
	}
}

func TestSortBySlice(t *testing.T) {
	type user struct {
		Name string
		Age  int
	}
	users := []user{
		{Name: "carol", Age: 35},
		{Name: "alice", Age: 28},
		{Name: "bob", Age: 28},
	}

	asc := SortBySlice(users, func(u user) int { return u.Age }, true)
	if asc[0].Name != "alice" || asc[1].Name != "bob" || asc[2].Name != "carol" {
		t.Errorf("Expected stable ascending sort, got %v", asc)
	}

	desc := SortBySlice(users, func(u user) int { return u.Age }, false)
	if desc[0].Name != "carol" {
		t.Errorf("Expected descending sort, got %v", desc)
	}
	// Equal keys keep source order in both directions.
	if desc[1].Name != "alice" || desc[2].Name != "bob" {
		t.Errorf("Expected stable order among equal keys, got %v", desc)
	}

	if users[0].Name != "carol" {
		t.Error("Expected input slice unchanged")
	}
}

func TestShuffleAndSample(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}

	out := Shuffle(in)
	if len(out) != len(in) {
		t.Errorf("Expected shuffle to keep length, got %d", len(out))
	}
	seen := make(map[int]bool)
	for _, n := range out {
		seen[n] = true
	}
	if len(seen) != len(in) {
		t.Errorf("Expected shuffle to preserve the element set, got %v", out)
	}
	if !reflect.DeepEqual(in, []int{1, 2, 3, 4, 5}) {
		t.Error("Expected input slice unchanged")
	}

	if v, ok := Sample(in); !ok || v < 1 || v > 5 {
		t.Errorf("Expected sample from input, got %d ok=%v", v, ok)
	}
	if _, ok := Sample([]int{}); ok {
		t.Error("Expected Sample to report absence on empty input")
	}

	if got := SampleSize(in, 3); len(got) != 3 {
		t.Errorf("Expected 3 samples, got %d", len(got))
	}
	if got := SampleSize(in, 10); len(got) != 5 {
		t.Errorf("Expected saturation at input length, got %d", len(got))
	}
	if got := SampleSize(in, -2); len(got) != 0 {
		t.Errorf("Expected empty result for negative count, got %d", len(got))
	}
}
