package chainz

import (
	"reflect"
	"testing"
)

func TestFind(t *testing.T) {
	in := []int{1, 3, 4, 6, 7}

	if v, ok := Find(in, func(n int) bool { return n%2 == 0 }); !ok || v != 4 {
		t.Errorf("Expected first even element 4, got %d ok=%v", v, ok)
	}
	if v, ok := FindLast(in, func(n int) bool { return n%2 == 0 }); !ok || v != 6 {
		t.Errorf("Expected last even element 6, got %d ok=%v", v, ok)
	}
	if _, ok := Find(in, func(n int) bool { return n > 100 }); ok {
		t.Error("Expected no match")
	}
	if _, ok := FindLast([]int{}, func(int) bool { return true }); ok {
		t.Error("Expected no match on empty input")
	}
}

func TestIncludes(t *testing.T) {
	if !Includes([]string{"a", "b", "c"}, "b") {
		t.Error("Expected b to be included")
	}
	if Includes([]string{"a", "b", "c"}, "d") {
		t.Error("Expected d to be absent")
	}
	if Includes([]int{}, 1) {
		t.Error("Expected nothing in empty input")
	}
}

func TestEveryAndSome(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	if !Every([]int{2, 4, 6}, even) {
		t.Error("Expected Every true for all-even input")
	}
	if Every([]int{2, 3, 6}, even) {
		t.Error("Expected Every false when one element fails")
	}
	if !Every([]int{}, even) {
		t.Error("Expected Every true on empty input")
	}

	if !Some([]int{1, 3, 4}, even) {
		t.Error("Expected Some true when one element matches")
	}
	if Some([]int{1, 3, 5}, even) {
		t.Error("Expected Some false when nothing matches")
	}
	if Some([]int{}, even) {
		t.Error("Expected Some false on empty input")
	}
}

func TestCountBy(t *testing.T) {
	got := CountBy([]string{"apple", "avocado", "banana", "cherry"}, func(s string) byte {
		return s[0]
	})

	expected := map[byte]int{'a': 2, 'b': 1, 'c': 1}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestPartitionPredicate(t *testing.T) {
	matched, rest := Partition([]int{1, 2, 3, 4, 5, 6}, func(n int) bool { return n%2 == 0 })

	if !reflect.DeepEqual(matched, []int{2, 4, 6}) {
		t.Errorf("Expected matched [2 4 6], got %v", matched)
	}
	if !reflect.DeepEqual(rest, []int{1, 3, 5}) {
		t.Errorf("Expected rest [1 3 5], got %v", rest)
	}

	matched, rest = Partition([]int{}, func(int) bool { return true })
	if len(matched) != 0 || len(rest) != 0 {
		t.Errorf("Expected empty partitions, got %v / %v", matched, rest)
	}
}
