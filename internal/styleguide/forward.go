package styleguide

// pendingChild is a block whose @sectionof parent was not defined yet
type pendingChild struct {
	block   *Block
	primary bool
	err     *Error
}

// forwardRefs maps a normalized parent name to the children waiting on it,
// remembering the order parents were first referenced in
type forwardRefs struct {
	order []string
	byKey map[string][]pendingChild
}

func newForwardRefs() *forwardRefs {
	return &forwardRefs{byKey: make(map[string][]pendingChild)}
}

func (f *forwardRefs) add(parent string, pc pendingChild) {
	key := Normalize(parent)
	if _, ok := f.byKey[key]; !ok {
		f.order = append(f.order, key)
	}
	f.byKey[key] = append(f.byKey[key], pc)
}

// take removes and returns the children waiting on name
func (f *forwardRefs) take(name string) []pendingChild {
	key := Normalize(name)
	pending, ok := f.byKey[key]
	if !ok {
		return nil
	}
	delete(f.byKey, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return pending
}

// first returns the earliest unresolved reference
func (f *forwardRefs) first() (pendingChild, bool) {
	if len(f.order) == 0 {
		return pendingChild{}, false
	}
	return f.byKey[f.order[0]][0], true
}

func (f *forwardRefs) len() int {
	return len(f.order)
}
