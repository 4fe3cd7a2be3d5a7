package repository

import (
	"testing"
)

func TestBuildLikeConditionByDialectSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", "fbo_number", " ", "fbo_full_name")
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := "fbo_number LIKE ? OR fbo_full_name LIKE ?"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestBuildLikeConditionByDialectPostgres(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("postgres", "name", "sku")
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := "name ILIKE ? OR sku ILIKE ?"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%aloe%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%aloe%" {
			t.Fatalf("args[%d] want %%aloe%% got %v", idx, arg)
		}
	}
}

func TestClampInt(t *testing.T) {
	cases := []struct {
		value, fallback, min, max, want int
	}{
		{0, 20, 10, 100, 20},
		{5, 20, 10, 100, 10},
		{500, 20, 10, 100, 100},
		{42, 20, 10, 100, 42},
	}
	for _, tc := range cases {
		if got := clampInt(tc.value, tc.fallback, tc.min, tc.max); got != tc.want {
			t.Fatalf("clampInt(%d) want %d got %d", tc.value, tc.want, got)
		}
	}
}
