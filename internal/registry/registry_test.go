package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/raincatch/internal/core"
)

type stubScene struct{ id string }

func (s *stubScene) ID() string                           { return s.id }
func (s *stubScene) Title() string                        { return "Stub " + s.id }
func (s *stubScene) Reset(core.RuntimeConfig) error       { return nil }
func (s *stubScene) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubScene) Render(*core.Screen)                  {}
func (s *stubScene) State() core.GameState                { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("zz-stub", func() Scene { return &stubScene{id: "zz-stub"} })
	Register("aa-stub", func() Scene { return &stubScene{id: "aa-stub"} })

	if !Exists("zz-stub") || Exists("missing") {
		t.Error("Exists() mismatch")
	}

	list := List()
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}

	s, err := Create("aa-stub")
	if err != nil {
		t.Fatal(err)
	}
	if s.Title() != "Stub aa-stub" {
		t.Errorf("Title() = %q", s.Title())
	}

	if _, err := Create("missing"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Create(missing) error = %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", func() Scene { return &stubScene{id: "dup-stub"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup-stub", func() Scene { return &stubScene{id: "dup-stub"} })
}
