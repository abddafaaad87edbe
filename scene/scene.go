// Package scene defines the minimal view of a host scene the engine
// works with: a mutable transform handle and a resolver that finds
// one by logical name.
//
// The engine never walks a scene graph. Hosts either pass a handle
// directly or register the handles they want to expose in a [Registry].
package scene

import "github.com/go-gl/mathgl/mgl64"

// Pose is a position plus an orientation.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Returns the pose at the origin with no rotation.
func Identity() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// The interface for anything the engine can shake.
//
// A transform must be owned by at most one engine at a time; two
// engines writing the same transform will overwrite each other.
type Transform interface {
	Pose() Pose
	SetPose(pose Pose)
	Name() string
}

// Node is a plain in-memory [Transform].
type Node struct {
	name string
	pose Pose
}

// Creates a node with the given name and initial pose.
func NewNode(name string, pose Pose) *Node {
	if pose.Orientation == (mgl64.Quat{}) {
		pose.Orientation = mgl64.QuatIdent()
	}
	return &Node{name: name, pose: pose}
}

func (self *Node) Pose() Pose        { return self.pose }
func (self *Node) SetPose(pose Pose) { self.pose = pose }
func (self *Node) Name() string      { return self.name }

// The interface for looking up transforms by logical name.
type Resolver interface {
	Resolve(name string) (Transform, bool)
}

// Registry is a [Resolver] backed by a map.
type Registry struct {
	transforms map[string]Transform
}

// Creates a registry holding the given transforms, keyed by name.
func NewRegistry(transforms ...Transform) *Registry {
	registry := &Registry{transforms: make(map[string]Transform, len(transforms))}
	for _, transform := range transforms {
		registry.Add(transform)
	}
	return registry
}

// Registers a transform under its own name, replacing any previous
// transform with that name. Nil transforms are ignored.
func (self *Registry) Add(transform Transform) {
	if transform == nil {
		return
	}
	if self.transforms == nil {
		self.transforms = make(map[string]Transform)
	}
	self.transforms[transform.Name()] = transform
}

func (self *Registry) Remove(name string) {
	delete(self.transforms, name)
}

func (self *Registry) Resolve(name string) (Transform, bool) {
	transform, found := self.transforms[name]
	return transform, found
}

// Returns the first transform that resolves among the given names,
// in order. Empty names are skipped.
func ResolveFirst(resolver Resolver, names ...string) (Transform, bool) {
	if resolver == nil {
		return nil, false
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		if transform, found := resolver.Resolve(name); found && transform != nil {
			return transform, true
		}
	}
	return nil, false
}
