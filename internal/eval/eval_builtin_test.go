package eval

import "testing"

func TestEvalEvalResultIsAlwaysEmpty(t *testing.T) {
	db := emptyDB()
	got, err := evalText(t, db, "$(eval A := 1)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty ($(eval ...) never produces text)", got)
	}
}

func TestEvalEvalMutatesDatabase(t *testing.T) {
	db := emptyDB()
	if _, err := evalText(t, db, "$(eval A := 1)"); err != nil {
		t.Fatal(err)
	}
	got, err := evalText(t, db, "$(A)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "1" {
		t.Errorf("got %q, want %q (eval should have defined A)", got, "1")
	}
}

func TestEvalEvalIsNotIdempotent(t *testing.T) {
	db := emptyDB()
	if err := db.ReparseTopLevel("COUNTER := 0\n"); err != nil {
		t.Fatal(err)
	}
	// Each evaluation of $(eval COUNTER := ...) mutates the database again:
	// its textual result is empty every time, yet the database it leaves
	// behind (COUNTER = 1) differs from the one it started from
	// (COUNTER = 0).
	for i := 0; i < 3; i++ {
		if _, err := evalText(t, db, "$(eval COUNTER := 1)"); err != nil {
			t.Fatal(err)
		}
	}
	got, err := evalText(t, db, "$(COUNTER)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "1" {
		t.Errorf("got %q, want %q", got, "1")
	}
}

func TestEvalEvalArgumentSensitivityIsPreserved(t *testing.T) {
	db := emptyDB()
	if err := db.ReparseTopLevel("NAME := A\nA := 1\n"); err != nil {
		t.Fatal(err)
	}
	result := evalBlock(t, db, "$(eval $(NAME) := 2)")
	idName, _ := db.VariableName("NAME")
	if !result.Sensitivity().Contains(idName) {
		t.Error("$(eval)'s result must still carry its argument's sensitivity even though its text is empty")
	}
}
