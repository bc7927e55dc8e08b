package hook

import (
	"reflect"
	"testing"

	"golang.org/x/sys/windows"
)

func TestNewVirtualAllocatedMemory(t *testing.T) {
	vmem, err := newVirtualAllocatedMemory(64, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		t.Fatal(err)
	}
	defer vmem.Close()
}

func TestVirtualAllocatedMemory_ReadWrite(t *testing.T) {
	vmem, err := newVirtualAllocatedMemory(64, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		t.Fatal(err)
	}
	defer vmem.Close()
	w := []byte("Hello, skhook")
	if _, err := vmem.WriteAt(w, 0); err != nil {
		t.Fatal(err)
	}

	r := make([]byte, len(w))
	vmem.Read(r)
	if !reflect.DeepEqual(r, w) {
		t.Errorf("%v != %v", r, w)
	}
}

func TestVirtualAllocatedMemory_WriteOverflow(t *testing.T) {
	vmem, err := newVirtualAllocatedMemory(8, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		t.Fatal(err)
	}
	defer vmem.Close()
	if _, err := vmem.WriteAt(make([]byte, 4), 6); err == nil {
		t.Error("expected overflow error")
	}
}
