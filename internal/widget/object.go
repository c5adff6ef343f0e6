package widget

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/five82/plotsync/internal/logging"
	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/registry"
)

// Object is a synchronized instance of a concrete class.
//
// Objects follow a single-writer discipline: the embedding application
// serializes mutations of one object. Manager methods do this themselves.
type Object struct {
	id     registry.ID
	class  *Class
	mgr    *Manager
	values map[string]any
	dirty  map[string]struct{}
}

type patchResult struct {
	changed []string
	errs    []error
	ignored []string
}

func newObject(m *Manager, class *Class) *Object {
	o := &Object{
		class:  class,
		mgr:    m,
		values: make(map[string]any),
		dirty:  make(map[string]struct{}),
	}
	for _, level := range class.chain {
		for name, def := range level.defaults {
			o.values[name] = copyValue(def)
		}
	}
	return o
}

// ID returns the registry identifier.
func (o *Object) ID() registry.ID { return o.id }

// Class returns the most-derived class.
func (o *Object) Class() *Class { return o.class }

// ModelName returns the renderer model class, fixed at construction.
func (o *Object) ModelName() string { return o.class.modelName }

// ViewName returns the renderer view class, fixed at construction.
func (o *Object) ViewName() string { return o.class.viewName }

// Get returns the wire form of one property.
func (o *Object) Get(name string) (any, bool) {
	d, ok := o.class.Descriptor(name)
	if !ok {
		return nil, false
	}
	return d.Encode(o.values[name]), true
}

// Set validates and stores a local assignment. On success the property is
// marked dirty if its value changed; on failure the previous value stays.
func (o *Object) Set(name string, raw any) error {
	d, ok := o.class.Descriptor(name)
	if !ok {
		return &prop.ValidationError{Property: name, Reason: ErrUnknownProperty}
	}
	changed, err := o.assign(d, raw, false)
	if err != nil {
		return err
	}
	if changed {
		o.dirty[name] = struct{}{}
	}
	return nil
}

// State returns the full snapshot. Levels contribute base first, so a
// derived level would win any name collision.
func (o *Object) State() map[string]any {
	state := make(map[string]any, len(o.values))
	for _, level := range o.class.chain {
		level.contribute(o, state)
	}
	return state
}

// ApplyPatch applies an inbound patch. Keys are claimed level by level;
// keys no level owns are logged and skipped so newer renderers can send
// properties this side does not know yet. Rejected keys keep their prior
// value while the rest of the patch still applies; the failures come back
// as *PatchError.
func (o *Object) ApplyPatch(patch map[string]any) error {
	res := o.applyPatch(patch)
	return res.err(o.id)
}

func (o *Object) applyPatch(patch map[string]any) patchResult {
	var res patchResult
	pending := make(map[string]struct{}, len(patch))
	for name := range patch {
		pending[name] = struct{}{}
	}
	for _, level := range o.class.chain {
		if len(pending) == 0 {
			break
		}
		level.claim(o, patch, pending, &res)
	}
	if len(pending) > 0 {
		for name := range pending {
			res.ignored = append(res.ignored, name)
		}
		slices.Sort(res.ignored)
		logging.Logger().Warn("ignoring unknown patch keys",
			"id", o.id.String(), "model", o.class.modelName, "keys", res.ignored)
	}
	return res
}

func (r patchResult) err(id registry.ID) error {
	if len(r.errs) == 0 {
		return nil
	}
	return &PatchError{ID: id, Errors: r.errs}
}

// Dirty lists properties changed locally since the last DirtyPatch.
func (o *Object) Dirty() []string {
	names := make([]string, 0, len(o.dirty))
	for name := range o.dirty {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DirtyPatch returns the wire form of every dirty property and clears the
// dirty set. It returns nil when nothing changed.
func (o *Object) DirtyPatch() map[string]any {
	if len(o.dirty) == 0 {
		return nil
	}
	patch := make(map[string]any, len(o.dirty))
	for name := range o.dirty {
		d, _ := o.class.Descriptor(name)
		patch[name] = d.Encode(o.values[name])
	}
	clear(o.dirty)
	return patch
}

// Refs lists every object this one holds, in declaration order.
func (o *Object) Refs() []registry.ID {
	var out []registry.ID
	for _, d := range o.class.Descriptors() {
		out = append(out, prop.Refs(d.Type, o.values[d.Name])...)
	}
	return out
}

// referencing returns the names of reference-valued properties that point
// at target.
func (o *Object) referencing(target registry.ID) []string {
	var names []string
	for _, d := range o.class.Descriptors() {
		if slices.Contains(prop.Refs(d.Type, o.values[d.Name]), target) {
			names = append(names, d.Name)
		}
	}
	return names
}

// assign validates raw and stores it. Read-only properties accept only their
// current value unless init is set. Reference targets must resolve, carry the
// tag the type asks for and not be the object itself; new ones are acquired
// before dropped ones are released.
func (o *Object) assign(d prop.Descriptor, raw any, init bool) (bool, error) {
	v, err := d.Validate(raw)
	if err != nil {
		return false, err
	}
	cur := o.values[d.Name]
	if reflect.DeepEqual(cur, v) {
		return false, nil
	}
	if d.ReadOnly && !init {
		return false, &prop.ValidationError{Property: d.Name, Reason: prop.ErrReadOnly}
	}

	targets := prop.Targets(d.Type, v)
	added := make([]registry.ID, len(targets))
	for i, ref := range targets {
		if !o.id.IsZero() && ref.ID == o.id {
			return false, &prop.ValidationError{Property: d.Name, Reason: ErrSelfReference}
		}
		target, err := o.mgr.reg.Resolve(ref.ID)
		if err != nil {
			return false, &prop.ValidationError{
				Property: d.Name,
				Reason:   fmt.Errorf("%w: %w", ErrMissingReference, err),
			}
		}
		if ref.Of != "" && !slices.Contains(target.class.Tags(), ref.Of) {
			return false, &prop.ValidationError{
				Property: d.Name,
				Reason:   fmt.Errorf("%w: %s is a %s, want %s", ErrWrongTarget, ref.ID.Wire(), target.class.tag, ref.Of),
			}
		}
		added[i] = ref.ID
	}
	for i, id := range added {
		if err := o.mgr.reg.Acquire(id); err != nil {
			for _, held := range added[:i] {
				o.mgr.release(held)
			}
			return false, &prop.ValidationError{
				Property: d.Name,
				Reason:   fmt.Errorf("%w: %w", ErrMissingReference, err),
			}
		}
	}
	for _, id := range prop.Refs(d.Type, cur) {
		o.mgr.release(id)
	}

	o.values[d.Name] = v
	return true, nil
}

// dropRefs releases every reference the object holds. Used when the object
// is freed or its construction is abandoned.
func (o *Object) dropRefs() {
	for _, id := range o.Refs() {
		o.mgr.release(id)
	}
}

func copyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, item := range tv {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = copyValue(item)
		}
		return out
	}
	return v
}
