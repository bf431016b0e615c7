package app

type patchOp int

const (
	patchLeave patchOp = iota
	patchClear
	patchSet
)

// FieldPatch is a tri-state update directive for one optional field:
// leave it unchanged, clear it, or set it to a value. It exists so that
// "no change" and "set to empty" stay distinguishable on update.
type FieldPatch struct {
	op    patchOp
	value string
}

// LeaveField returns the no-change directive (also the zero value).
func LeaveField() FieldPatch { return FieldPatch{} }

// ClearField returns the directive that resets the field to empty.
func ClearField() FieldPatch { return FieldPatch{op: patchClear} }

// SetField returns the directive that overwrites the field with value.
func SetField(value string) FieldPatch { return FieldPatch{op: patchSet, value: value} }

// Apply resolves the directive against the current field value.
func (p FieldPatch) Apply(current string) string {
	switch p.op {
	case patchClear:
		return ""
	case patchSet:
		return p.value
	default:
		return current
	}
}

// IsLeave reports whether the directive changes nothing.
func (p FieldPatch) IsLeave() bool { return p.op == patchLeave }
