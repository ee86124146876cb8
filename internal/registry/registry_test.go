package registry_test

import (
	"testing"

	_ "github.com/vovakirdan/blocky/internal/games/blocky/levels"
	"github.com/vovakirdan/blocky/internal/registry"
)

func TestBuiltinSetsRegistered(t *testing.T) {
	for _, id := range []string{"classic", "tutorial"} {
		if !registry.Exists(id) {
			t.Errorf("expected %q to be registered", id)
		}
	}

	list := registry.List()
	if len(list) < 2 {
		t.Fatalf("expected at least 2 sets, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List not sorted: %s before %s", list[i-1].ID, list[i].ID)
		}
	}
	for _, info := range list {
		if info.Levels == 0 || info.Title == "" {
			t.Errorf("incomplete info: %+v", info)
		}
	}
}

func TestCreate(t *testing.T) {
	s, err := registry.Create("tutorial")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.Name() != "tutorial" {
		t.Errorf("expected tutorial, got %s", s.Name())
	}
	if _, err := s.Level(1); err != nil {
		t.Errorf("Level(1) failed: %v", err)
	}

	if _, err := registry.Create("missing"); err == nil {
		t.Error("expected error for unknown set")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	registry.Register("classic", nil)
}
