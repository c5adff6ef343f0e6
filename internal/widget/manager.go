package widget

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/five82/plotsync/internal/logging"
	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/registry"
)

const (
	defaultModule        = "bqplot"
	defaultModuleVersion = "^0.4.1"
)

// Base is the root of every class chain. It carries the renderer routing
// keys, all fixed at construction.
var Base = NewClass("Widget", nil,
	prop.Fixed("_model_name", prop.String(), ""),
	prop.Fixed("_view_name", prop.String(), ""),
	prop.Fixed("_model_module", prop.String(), defaultModule),
	prop.Fixed("_model_module_version", prop.String(), defaultModuleVersion),
	prop.Fixed("_view_module", prop.String(), defaultModule),
	prop.Fixed("_view_module_version", prop.String(), defaultModuleVersion),
)

// Options configure a Manager.
type Options struct {
	Module        string // empty uses bqplot
	ModuleVersion string // empty uses ^0.4.1
	Sink          Sink
}

// Stats counts patch outcomes since the manager was created.
type Stats struct {
	Applied  int // keys that changed a value
	Rejected int // keys that failed validation
	Ignored  int // keys no class owned
}

// Manager owns the reference registry and serializes access to the objects
// registered in it.
type Manager struct {
	mu            sync.Mutex
	reg           *registry.Registry[*Object]
	sink          Sink
	module        string
	moduleVersion string
	stats         Stats
}

// NewManager builds a manager with an empty registry.
func NewManager(opts Options) *Manager {
	m := &Manager{
		reg:           registry.New[*Object](),
		sink:          opts.Sink,
		module:        strings.TrimSpace(opts.Module),
		moduleVersion: strings.TrimSpace(opts.ModuleVersion),
	}
	if m.sink == nil {
		m.sink = nopSink{}
	}
	if m.module == "" {
		m.module = defaultModule
	}
	if m.moduleVersion == "" {
		m.moduleVersion = defaultModuleVersion
	}
	return m
}

// SetSink replaces the outbound message sink. Nil discards messages.
func (m *Manager) SetSink(s Sink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s == nil {
		s = nopSink{}
	}
	m.sink = s
}

// Create instantiates a concrete class with construction values, registers
// it and sends its full state. Construction is all-or-nothing: on any
// failure nothing is registered and references acquired so far are
// released. Read-only properties may be set here and never afterwards.
func (m *Manager) Create(class *Class, init map[string]any) (*Object, error) {
	if class.Abstract() {
		return nil, fmt.Errorf("%w: %s", ErrAbstractClass, class.tag)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	o := newObject(m, class)
	values := map[string]any{
		"_model_name":           class.modelName,
		"_view_name":            class.viewName,
		"_model_module":         m.module,
		"_model_module_version": m.moduleVersion,
		"_view_module":          m.module,
		"_view_module_version":  m.moduleVersion,
	}
	for name, raw := range init {
		values[name] = raw
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d, ok := class.Descriptor(name)
		if !ok {
			o.dropRefs()
			return nil, &prop.ValidationError{Property: name, Reason: ErrUnknownProperty}
		}
		if _, err := o.assign(d, values[name], true); err != nil {
			o.dropRefs()
			return nil, err
		}
	}

	o.id = m.reg.Register(o)
	m.sink.Send(Message{Method: MethodOpen, ID: o.id, State: o.State()})
	logging.Logger().Debug("object created", "id", o.id.String(), "model", class.modelName, "chain", class.Tags())
	return o, nil
}

// Resolve returns the object registered under id.
func (m *Manager) Resolve(id registry.ID) (*Object, error) {
	return m.reg.Resolve(id)
}

// State returns the full state of id, read under the manager lock.
func (m *Manager) State(id registry.ID) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.reg.Resolve(id)
	if err != nil {
		return nil, err
	}
	return o.State(), nil
}

// Acquire adds a holder to id.
func (m *Manager) Acquire(id registry.ID) error {
	return m.reg.Acquire(id)
}

// Release drops one holder from id. A freed object releases what it holds in
// turn and a close message is sent for each freed object.
func (m *Manager) Release(id registry.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.reg.Resolve(id); err != nil {
		return err
	}
	m.release(id)
	return nil
}

func (m *Manager) release(id registry.ID) {
	o, freed, err := m.reg.Release(id)
	if err != nil {
		logging.Logger().Warn("release of unknown reference", "id", id.String())
		return
	}
	if !freed {
		return
	}
	logging.Logger().Debug("object freed", "id", id.String(), "model", o.class.modelName)
	o.dropRefs()
	m.sink.Send(Message{Method: MethodClose, ID: id})
}

// Apply applies an inbound patch to id. When other objects reference id they
// are notified only after the whole patch has been applied, so none of them
// observes a half-updated target.
func (m *Manager) Apply(id registry.ID, patch map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.reg.Resolve(id)
	if err != nil {
		return err
	}
	res := o.applyPatch(patch)
	m.count(res)
	if len(res.changed) > 0 {
		m.notifyHolders(id)
	}
	return res.err(id)
}

// Update applies a batch of local assignments with the same per-key
// semantics as Apply, then sends the resulting dirty patch.
func (m *Manager) Update(id registry.ID, patch map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.reg.Resolve(id)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(patch))
	for name := range patch {
		names = append(names, name)
	}
	sort.Strings(names)

	var res patchResult
	for _, name := range names {
		d, ok := o.class.Descriptor(name)
		if !ok {
			res.errs = append(res.errs, &prop.ValidationError{Property: name, Reason: ErrUnknownProperty})
			continue
		}
		changed, err := o.assign(d, patch[name], false)
		if err != nil {
			res.errs = append(res.errs, err)
			continue
		}
		if changed {
			o.dirty[name] = struct{}{}
			res.changed = append(res.changed, name)
		}
	}
	m.count(res)
	m.flush(o)
	if len(res.changed) > 0 {
		m.notifyHolders(id)
	}
	return res.err(id)
}

// Flush sends the dirty patch of id, if any, after local Set calls. Objects
// holding id are notified once its patch has gone out.
func (m *Manager) Flush(id registry.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.reg.Resolve(id)
	if err != nil {
		return err
	}
	if m.flush(o) {
		m.notifyHolders(id)
	}
	return nil
}

func (m *Manager) flush(o *Object) bool {
	patch := o.DirtyPatch()
	if patch == nil {
		return false
	}
	m.sink.Send(Message{Method: MethodUpdate, ID: o.id, State: patch})
	return true
}

// notifyHolders marks the referencing properties of every holder of target
// dirty and sends their patches. Holders are found by scanning forward
// references; targets keep no back-pointers.
func (m *Manager) notifyHolders(target registry.ID) {
	for _, id := range m.reg.IDs() {
		if id == target {
			continue
		}
		o, err := m.reg.Resolve(id)
		if err != nil {
			continue
		}
		names := o.referencing(target)
		if len(names) == 0 {
			continue
		}
		for _, name := range names {
			o.dirty[name] = struct{}{}
		}
		m.flush(o)
	}
}

func (m *Manager) count(res patchResult) {
	m.stats.Applied += len(res.changed)
	m.stats.Rejected += len(res.errs)
	m.stats.Ignored += len(res.ignored)
}

// Stats returns patch counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// View is a copy of one object's state for display.
type View struct {
	ID      registry.ID
	Model   string
	Chain   []string
	State   map[string]any
	Dirty   []string
	Refs    []registry.ID
	Holders int
}

// Snapshot copies every live object, in creation order.
func (m *Manager) Snapshot() []View {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.reg.IDs()
	views := make([]View, 0, len(ids))
	for _, id := range ids {
		o, err := m.reg.Resolve(id)
		if err != nil {
			continue
		}
		views = append(views, View{
			ID:      id,
			Model:   o.class.modelName,
			Chain:   o.class.Tags(),
			State:   o.State(),
			Dirty:   o.Dirty(),
			Refs:    o.Refs(),
			Holders: m.reg.Refs(id),
		})
	}
	return views
}

// States returns the full state of every live object, used to bring a newly
// connected renderer up to date.
func (m *Manager) States() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.reg.IDs()
	msgs := make([]Message, 0, len(ids))
	for _, id := range ids {
		if o, err := m.reg.Resolve(id); err == nil {
			msgs = append(msgs, Message{Method: MethodOpen, ID: id, State: o.State()})
		}
	}
	return msgs
}
