// Package widget implements synchronized objects: instances whose typed
// properties are mirrored to a remote renderer through full snapshots and
// partial patches.
//
// # Classes
//
// A Class is one level of a linear inheritance chain. Each level declares
// only the properties it adds; NewClass composes the name table once, at
// package init, and panics if a name is declared twice along the chain.
//
//	var Mark = widget.NewClass("Mark", widget.Base,
//		prop.New("visible", prop.Bool(), true),
//	)
//	var Lines = widget.NewClass("Lines", Mark,
//		prop.New("stroke_width", prop.Float(), 2.0),
//	).Concrete("LinesModel", "Lines")
//
// Classes without renderer names are abstract and cannot be instantiated.
//
// # State and patches
//
// State walks the chain base first and lets every level write its own slice
// of the snapshot. ApplyPatch walks the same chain and lets every level
// claim the keys it owns:
//
//   - each key is validated and applied on its own; a rejected key keeps
//     its previous value while the other keys still apply
//   - rejected keys come back together as *PatchError
//   - keys no level owns are logged and skipped (forward compatibility with
//     newer renderers)
//
// Applying an object's own State to it is a no-op.
//
// # Dirty tracking
//
// Local Set calls mark changed properties dirty. DirtyPatch returns just
// those properties and clears the set. Inbound patches never mark keys
// dirty, and clear the mark on keys they overwrite.
//
// # References
//
// Reference-valued properties hold registry identifiers. Assigning one
// resolves every new target (failing with ErrMissingReference otherwise),
// acquires it, and releases targets that are no longer held. Targets keep no
// back-pointers to their holders.
//
// # Manager
//
// Manager owns the registry and serializes Create, Apply, Update, Flush and
// Release. After a target such as a scale changes, Manager finds its holders
// by scanning forward references, marks the referencing properties dirty and
// sends their patches. The target's own update is complete before any holder
// is touched.
//
// Outbound messages go to a Sink. Sinks are called with the manager lock
// held and must not re-enter the manager.
package widget
