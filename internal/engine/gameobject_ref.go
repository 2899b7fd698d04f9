package engine

// GameObjectRef is a serializable reference to a GameObject by UID.
// Scene files store the referenced object's name; the loader resolves it to a
// UID once every object exists.
//
//	type Manipulator struct {
//	    engine.BaseComponent
//	    CameraRef engine.GameObjectRef
//	}
//
//	if cam := m.CameraRef.Get(m.GetGameObject().Scene); cam != nil { ... }
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// Get resolves the reference, returning nil if it is empty or dangling.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid reports whether the reference is set. It does not check that the
// target still exists.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at g; nil clears it.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
	} else {
		r.UID = g.UID
	}
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
