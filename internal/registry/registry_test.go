package registry

import (
	"strings"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	Register(Variant{ID: "zz_test", Title: "Test", Width: 7, Height: 6, Boundary: "wrap"})

	if !Exists("zz_test") {
		t.Fatal("Exists() = false after Register")
	}
	v, err := Get("zz_test")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if v.Width != 7 || v.Height != 6 || v.Boundary != "wrap" {
		t.Errorf("Get() = %+v, fields not preserved", v)
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("does-not-exist")
	if err == nil || !strings.Contains(err.Error(), "does-not-exist") {
		t.Errorf("Get() error = %v, expected unknown variant error", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Variant{ID: "zz_dup"})

	defer func() {
		if recover() == nil {
			t.Error("Register() with a duplicate ID should panic")
		}
	}()
	Register(Variant{ID: "zz_dup"})
}

func TestListSorted(t *testing.T) {
	Register(Variant{ID: "zz_b"})
	Register(Variant{ID: "zz_a"})

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
