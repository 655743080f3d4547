package bank

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempBankPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "question_bank.json")
}

func TestOpen_MissingFileYieldsEmptyBank(t *testing.T) {
	b := Open(tempBankPath(t))
	if got := b.Get("OS", "Scheduling", CategoryMCQ); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestOpen_CorruptFileYieldsEmptyBank(t *testing.T) {
	path := tempBankPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := Open(path)
	if got := b.Get("OS", "Scheduling", CategoryMCQ); len(got) != 0 {
		t.Errorf("expected empty bank after corrupt load, got %v", got)
	}
}

func TestAddGet_RoundTrip(t *testing.T) {
	path := tempBankPath(t)
	b := Open(path)

	if err := b.Add("OS", "Scheduling", CategoryMCQ, []string{"Q1", "Q2"}); err != nil {
		t.Fatal(err)
	}
	got := b.Get("OS", "Scheduling", CategoryMCQ)
	if !reflect.DeepEqual(got, []string{"Q1", "Q2"}) {
		t.Errorf("Get = %v, want [Q1 Q2]", got)
	}

	// Second Add appends, never overwrites.
	if err := b.Add("OS", "Scheduling", CategoryMCQ, []string{"Q3"}); err != nil {
		t.Fatal(err)
	}
	got = b.Get("OS", "Scheduling", CategoryMCQ)
	if !reflect.DeepEqual(got, []string{"Q1", "Q2", "Q3"}) {
		t.Errorf("Get after second Add = %v, want [Q1 Q2 Q3]", got)
	}
}

func TestAdd_PersistsAcrossReopen(t *testing.T) {
	path := tempBankPath(t)
	b := Open(path)
	if err := b.Add("DBMS", "Indexing", CategoryDescriptive5, []string{"Explain B+ trees."}); err != nil {
		t.Fatal(err)
	}

	reopened := Open(path)
	got := reopened.Get("DBMS", "Indexing", CategoryDescriptive5)
	if !reflect.DeepEqual(got, []string{"Explain B+ trees."}) {
		t.Errorf("reopened Get = %v", got)
	}
}

func TestAdd_RejectsUnknownCategory(t *testing.T) {
	b := Open(tempBankPath(t))
	if err := b.Add("OS", "Scheduling", Category("essay"), []string{"Q"}); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestAdd_EmptySliceIsNoop(t *testing.T) {
	path := tempBankPath(t)
	b := Open(path)
	if err := b.Add("OS", "Scheduling", CategoryMCQ, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no file written for empty Add")
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if Category("MCQs").Valid() {
		t.Error("unexpected valid category")
	}
}
