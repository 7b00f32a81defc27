package taxonomy

import (
	"errors"
	"testing"
)

func TestInsertRootAndChild(t *testing.T) {
	tree := NewTree()

	a, err := tree.Insert("Aqidah", 0)
	if err != nil {
		t.Fatalf("Insert root failed: %v", err)
	}

	b, err := tree.Insert("Tawhid", a.ID)
	if err != nil {
		t.Fatalf("Insert child failed: %v", err)
	}

	entries := tree.Walk()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Node != a || entries[0].Depth != 0 {
		t.Errorf("Expected (Aqidah, 0), got (%s, %d)", entries[0].Node.Name, entries[0].Depth)
	}
	if entries[1].Node != b || entries[1].Depth != 1 {
		t.Errorf("Expected (Tawhid, 1), got (%s, %d)", entries[1].Node.Name, entries[1].Depth)
	}
}

func TestInsertUnknownParent(t *testing.T) {
	tree := NewTree()
	if _, err := tree.Insert("Fiqh", 99); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("Expected ErrParentNotFound, got %v", err)
	}
	if tree.Len() != 0 {
		t.Errorf("Rejected insert must not grow the forest, got %d nodes", tree.Len())
	}
}

func TestWalkOrderAndDepth(t *testing.T) {
	tree := NewTree()

	// Forest:
	//   Quran
	//     Tafsir
	//       Classical
	//     Recitation
	//   Hadith
	quran, _ := tree.Insert("Quran", 0)
	tafsir, _ := tree.Insert("Tafsir", quran.ID)
	if _, err := tree.Insert("Classical", tafsir.ID); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := tree.Insert("Recitation", quran.ID); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := tree.Insert("Hadith", 0); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	expected := []struct {
		name  string
		depth int
	}{
		{"Quran", 0},
		{"Tafsir", 1},
		{"Classical", 2},
		{"Recitation", 1},
		{"Hadith", 0},
	}

	entries := tree.Walk()
	if len(entries) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(entries))
	}
	for i, exp := range expected {
		if entries[i].Node.Name != exp.name || entries[i].Depth != exp.depth {
			t.Errorf("Entry %d: expected (%s, %d), got (%s, %d)",
				i, exp.name, exp.depth, entries[i].Node.Name, entries[i].Depth)
		}
	}
}

func TestEveryNodeAppearsExactlyOnce(t *testing.T) {
	tree := NewTree()

	root, _ := tree.Insert("Root", 0)
	ids := []int64{root.ID}
	parent := root.ID
	for i := 0; i < 10; i++ {
		node, err := tree.Insert("Child", parent)
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		ids = append(ids, node.ID)
		if i%2 == 0 {
			parent = node.ID
		}
	}

	seen := make(map[int64]int)
	for _, entry := range tree.Walk() {
		seen[entry.Node.ID]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Errorf("Node %d appeared %d times in walk", id, seen[id])
		}
	}
}

func TestWalkIsIdempotent(t *testing.T) {
	tree := NewTree()
	root, _ := tree.Insert("A", 0)
	if _, err := tree.Insert("B", root.ID); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	first := tree.Walk()
	second := tree.Walk()
	if len(first) != len(second) {
		t.Fatalf("Walk changed length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Node != second[i].Node || first[i].Depth != second[i].Depth {
			t.Errorf("Walk entry %d differs between invocations", i)
		}
	}
}
