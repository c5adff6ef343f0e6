package widget

import (
	"fmt"
	"slices"

	"github.com/five82/plotsync/internal/prop"
)

// Class is one level of an inheritance chain. It owns the descriptors it
// declares; everything above it is reached through parent.
//
// Classes are built once at package init. A name declared twice along a
// chain, or a default its own type rejects, is a definition error and panics.
type Class struct {
	tag      string
	parent   *Class
	props    []prop.Descriptor
	defaults map[string]any
	owner    map[string]*Class // every name in the chain
	chain    []*Class          // base first, ending with this class

	modelName string
	viewName  string
}

// NewClass declares a class deriving from parent (nil for a root).
func NewClass(tag string, parent *Class, props ...prop.Descriptor) *Class {
	c := &Class{
		tag:      tag,
		parent:   parent,
		props:    props,
		defaults: make(map[string]any, len(props)),
		owner:    make(map[string]*Class),
	}
	if parent != nil {
		for name, owner := range parent.owner {
			c.owner[name] = owner
		}
		c.chain = slices.Clone(parent.chain)
	}
	c.chain = append(c.chain, c)

	for _, d := range props {
		if d.Type == nil {
			panic(fmt.Sprintf("widget: %s.%s has no type", tag, d.Name))
		}
		if prev, dup := c.owner[d.Name]; dup {
			panic(fmt.Sprintf("widget: %s.%s already declared by %s", tag, d.Name, prev.tag))
		}
		if d.Type.Kind() == prop.KindReference && d.Default == nil {
			panic(fmt.Sprintf("widget: %s.%s is a bare reference without default", tag, d.Name))
		}
		def, err := d.DefaultValue()
		if err != nil {
			panic(fmt.Sprintf("widget: %s.%s: %v", tag, d.Name, err))
		}
		c.defaults[d.Name] = def
		c.owner[d.Name] = c
	}
	return c
}

// Concrete marks c as instantiable with the renderer model and view names it
// maps to. Classes without names are abstract.
func (c *Class) Concrete(modelName, viewName string) *Class {
	c.modelName = modelName
	c.viewName = viewName
	return c
}

// Tag returns the class tag.
func (c *Class) Tag() string { return c.tag }

// Parent returns the next class toward the base, nil for a root.
func (c *Class) Parent() *Class { return c.parent }

// Abstract reports whether c can be instantiated.
func (c *Class) Abstract() bool { return c.modelName == "" }

// ModelName is the renderer model class.
func (c *Class) ModelName() string { return c.modelName }

// ViewName is the renderer view class.
func (c *Class) ViewName() string { return c.viewName }

// Tags lists the chain's tags, most-derived first.
func (c *Class) Tags() []string {
	tags := make([]string, 0, len(c.chain))
	for i := len(c.chain) - 1; i >= 0; i-- {
		tags = append(tags, c.chain[i].tag)
	}
	return tags
}

// Own returns the descriptors declared by this level only.
func (c *Class) Own() []prop.Descriptor {
	return slices.Clone(c.props)
}

// Descriptors returns every descriptor in the chain, base first.
func (c *Class) Descriptors() []prop.Descriptor {
	var out []prop.Descriptor
	for _, level := range c.chain {
		out = append(out, level.props...)
	}
	return out
}

// Descriptor looks up name anywhere in the chain.
func (c *Class) Descriptor(name string) (prop.Descriptor, bool) {
	owner, ok := c.owner[name]
	if !ok {
		return prop.Descriptor{}, false
	}
	for _, d := range owner.props {
		if d.Name == name {
			return d, true
		}
	}
	return prop.Descriptor{}, false
}

// Owner returns the level declaring name.
func (c *Class) Owner(name string) (*Class, bool) {
	owner, ok := c.owner[name]
	return owner, ok
}

// IsA reports whether other appears in c's chain.
func (c *Class) IsA(other *Class) bool {
	return slices.Contains(c.chain, other)
}

// contribute writes this level's slice of the state.
func (c *Class) contribute(o *Object, state map[string]any) {
	for _, d := range c.props {
		state[d.Name] = d.Encode(o.values[d.Name])
	}
}

// claim applies the patch keys this level owns and removes them from
// pending. Each key is applied on its own; a rejected key keeps its value.
func (c *Class) claim(o *Object, patch map[string]any, pending map[string]struct{}, res *patchResult) {
	for _, d := range c.props {
		raw, ok := patch[d.Name]
		if !ok {
			continue
		}
		delete(pending, d.Name)
		changed, err := o.assign(d, raw, false)
		if err != nil {
			res.errs = append(res.errs, err)
			continue
		}
		// the renderer already holds this value
		delete(o.dirty, d.Name)
		if changed {
			res.changed = append(res.changed, d.Name)
		}
	}
}
