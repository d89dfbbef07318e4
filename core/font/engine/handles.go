package engine

import "sync"

// Handle is an opaque token referring to an engine object. The zero value
// is the nil handle.
//
// Handles are never reused during the lifetime of a process, so a stale
// handle cannot accidentally address a newer object.
type Handle uintptr

// objectTable maps handles to engine objects. It is the only place where
// engine objects are reachable from the outside.
type objectTable struct {
	sync.RWMutex
	objects map[Handle]interface{}
	next    Handle
}

var handles = &objectTable{
	objects: make(map[Handle]interface{}),
	next:    1,
}

// register stores an engine object and returns a fresh handle for it.
func (tab *objectTable) register(obj interface{}) Handle {
	tab.Lock()
	defer tab.Unlock()
	h := tab.next
	tab.next++
	tab.objects[h] = obj
	return h
}

func (tab *objectTable) lookup(h Handle) interface{} {
	if h == 0 {
		return nil
	}
	tab.RLock()
	defer tab.RUnlock()
	return tab.objects[h]
}

// retire removes a handle. Later lookups of h will fail.
func (tab *objectTable) retire(h Handle) {
	tab.Lock()
	defer tab.Unlock()
	delete(tab.objects, h)
}

func (tab *objectTable) count() int {
	tab.RLock()
	defer tab.RUnlock()
	return len(tab.objects)
}

// LiveObjects returns the number of engine objects (libraries and faces)
// currently alive in this process. Useful for leak checks in tests.
func LiveObjects() int {
	return handles.count()
}

func lookupLibrary(h Handle) *library {
	lib, _ := handles.lookup(h).(*library)
	return lib
}

func lookupFace(h Handle) *face {
	f, _ := handles.lookup(h).(*face)
	return f
}
