package ranking

import (
	"math/rand"
	"slices"
	"testing"
)

type record struct {
	score int
	title string
}

func TestSortScoreThenTitle(t *testing.T) {
	items := []record{
		{80, "Aliens"},
		{100, "Alien"},
		{80, "Alien 3"},
		{45, "Allies"},
		{80, "Alien 3"},
	}

	Sort(items,
		func(r record) int { return r.score },
		func(r record) string { return r.title })

	want := []record{
		{100, "Alien"},
		{80, "Alien 3"},
		{80, "Alien 3"},
		{80, "Aliens"},
		{45, "Allies"},
	}
	if !slices.Equal(items, want) {
		t.Errorf("got %v, want %v", items, want)
	}
}

func TestLatestIDFirst(t *testing.T) {
	type item struct {
		id   int64
		name string
	}
	items := []item{{3, "c"}, {10, "a"}, {7, "b"}}
	slices.SortFunc(items, By(
		func(i item) int64 { return i.id },
		func(i item) string { return i.name }))

	if items[0].id != 10 || items[1].id != 7 || items[2].id != 3 {
		t.Errorf("unexpected order %v", items)
	}
}

func TestAdjacentPairsOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	titles := []string{"a", "b", "c", "d"}

	for round := 0; round < 50; round++ {
		items := make([]record, 30)
		for i := range items {
			items[i] = record{score: rng.Intn(5), title: titles[rng.Intn(len(titles))]}
		}

		Sort(items,
			func(r record) int { return r.score },
			func(r record) string { return r.title })

		for i := 0; i+1 < len(items); i++ {
			cur, next := items[i], items[i+1]
			if cur.score > next.score {
				continue
			}
			if cur.score == next.score && cur.title <= next.title {
				continue
			}
			t.Fatalf("round %d: %v before %v", round, cur, next)
		}
	}
}
