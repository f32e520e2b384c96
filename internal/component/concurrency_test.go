package component

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestConcurrentAddSameName(t *testing.T) {
	root := NewNode("Root", "", nil)

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := root.AddChild(newWidget("shared"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicateName):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("%d AddChild calls succeeded, want 1", ok)
	}
}

func TestConcurrentMutationAndTraversal(t *testing.T) {
	root := buildTree(t)
	tools, _ := root.Child("Tools")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 200 {
			name := fmt.Sprintf("t%d", i)
			if _, err := tools.Base().AddChild(newWidget(name)); err != nil {
				t.Errorf("AddChild(%s): %v", name, err)
				return
			}
			if i%2 == 0 {
				if _, err := tools.Base().RemoveChild(name); err != nil {
					t.Errorf("RemoveChild(%s): %v", name, err)
					return
				}
			}
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			for c := range root.FindRecursive(All()) {
				if c.Base().Name() == "" {
					t.Error("traversal observed an unnamed component")
					return
				}
				_ = c.Base().Path()
			}
			if _, err := root.ResolveString("Tools/t1"); err != nil {
				t.Errorf("ResolveString: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	if got := tools.Base().ChildCount(); got != 100 {
		t.Errorf("Tools has %d children, want 100", got)
	}
}

func TestConcurrentCrossAttachCannotCycle(t *testing.T) {
	for range 100 {
		a := newWidget("a")
		b := newWidget("b")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); _, _ = a.AddChild(b) }()
		go func() { defer wg.Done(); _, _ = b.AddChild(a) }()
		wg.Wait()

		if a.Parent() != nil && b.Parent() != nil {
			t.Fatal("a and b became each other's parent")
		}
	}
}

func TestConcurrentRegistration(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("T%d", i%4)
			if err := r.Register(name, widgetCtor); err != nil {
				t.Errorf("Register(%s): %v", name, err)
			}
			if _, err := r.Construct(name, "x"); err != nil {
				t.Errorf("Construct(%s): %v", name, err)
			}
		}()
	}
	wg.Wait()

	if got := len(r.TypeNames()); got != 4 {
		t.Errorf("%d types registered, want 4", got)
	}
}
