//go:build windows

package memory

import (
	"fmt"
	"reflect"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapAnon commits size bytes of private memory (Windows implementation).
func mapAnon(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	// addr is a fresh committed region of exactly size bytes. Building the
	// slice header from the uintptr keeps go vet's unsafeptr check quiet.
	var data []byte
	//nolint:staticcheck,gosec // SA1019+G103: SliceHeader is deprecated but avoids go vet issues with unsafe.Pointer
	header := (*reflect.SliceHeader)(unsafe.Pointer(&data))
	header.Data = addr
	header.Len = size
	header.Cap = size
	return data, nil
}

// unmapAnon releases memory committed by mapAnon (Windows implementation).
func unmapAnon(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("cannot release empty region")
	}
	//nolint:staticcheck,gosec // SA1019+G103: SliceHeader is deprecated but avoids go vet issues with unsafe.Pointer
	header := (*reflect.SliceHeader)(unsafe.Pointer(&data))
	return windows.VirtualFree(header.Data, 0, windows.MEM_RELEASE)
}
