package host

import "github.com/c360studio/plughost/value"

// SupportFunc rates how well a host container type can embed a UI of the
// given type. Zero means unsupported; higher is better.
type SupportFunc func(containerTypeURI, uiTypeURI string) uint

// UI is a read-only view of a plugin's declared graphical control surface.
type UI struct {
	w         *World
	uri       value.Value
	bundleURI string
	binaryURI string
	classes   []value.Value
}

// URI returns the UI resource URI.
func (u *UI) URI() value.Value {
	u.w.ensureOpen()
	return u.uri
}

// BundleURI returns the URI of the bundle the UI belongs to.
func (u *UI) BundleURI() string {
	u.w.ensureOpen()
	return u.bundleURI
}

// BinaryURI returns the URI of the shared library implementing the UI.
func (u *UI) BinaryURI() string {
	u.w.ensureOpen()
	return u.binaryURI
}

// Classes returns the UI's declared type URIs.
func (u *UI) Classes() []value.Value {
	u.w.ensureOpen()
	return append([]value.Value(nil), u.classes...)
}

// IsA reports whether the UI declares the given type.
func (u *UI) IsA(class value.Value) bool {
	u.w.ensureOpen()
	for _, c := range u.classes {
		if c.Equals(class) {
			return true
		}
	}
	return false
}

// Supported evaluates the host's support predicate against every declared
// UI type and returns the best quality found together with the type that
// achieved it. A zero quality means the UI cannot be embedded in the given
// container type.
func (u *UI) Supported(supports SupportFunc, containerType string) (quality uint, uiType string) {
	u.w.ensureOpen()
	for _, c := range u.classes {
		if !c.IsURI() {
			continue
		}
		if q := supports(containerType, c.AsURI()); q > quality {
			quality = q
			uiType = c.AsURI()
		}
	}
	return quality, uiType
}
