package registry

import (
	"reflect"
	"testing"
)

func TestSelectOnlyPullsDependencies(t *testing.T) {
	specs := specSet(
		ToolSpec{Name: "git"},
		ToolSpec{Name: "fish"},
		ToolSpec{Name: "lazygit", DependsOn: []string{"git"}},
	)

	filtered, err := Select(specs, []string{"lazygit"}, nil)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got, want := names(filtered), []string{"git", "lazygit"}; !reflect.DeepEqual(got, want) {
		t.Errorf("selected = %v, want %v", got, want)
	}
}

func TestSelectSkipRemoves(t *testing.T) {
	specs := specSet(
		ToolSpec{Name: "git"},
		ToolSpec{Name: "fish"},
	)

	filtered, err := Select(specs, nil, []string{"fish"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got, want := names(filtered), []string{"git"}; !reflect.DeepEqual(got, want) {
		t.Errorf("selected = %v, want %v", got, want)
	}
}

func TestSelectSkipWinsOverOnly(t *testing.T) {
	specs := specSet(
		ToolSpec{Name: "git"},
		ToolSpec{Name: "lazygit", DependsOn: []string{"git"}},
	)

	filtered, err := Select(specs, []string{"lazygit"}, []string{"git"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got, want := names(filtered), []string{"lazygit"}; !reflect.DeepEqual(got, want) {
		t.Errorf("selected = %v, want %v", got, want)
	}
}

func TestSelectUnknownName(t *testing.T) {
	specs := specSet(ToolSpec{Name: "git"})
	if _, err := Select(specs, []string{"ghost"}, nil); err == nil {
		t.Fatal("expected error for unknown --only name")
	}
	if _, err := Select(specs, nil, []string{"ghost"}); err == nil {
		t.Fatal("expected error for unknown --skip name")
	}
}
