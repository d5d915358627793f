package core

// PassState reports which render pass is currently active.
// Texture and Shape are mutually exclusive by contract.
type PassState struct {
	Texture bool
	Shape   bool
}

// TexturePass is the PassState of an active texture (glyph) pass.
var TexturePass = PassState{Texture: true}

// ShapePass is the PassState of an active shape pass.
var ShapePass = PassState{Shape: true}

// SoundPlayer is the audio collaborator. PlaySound is fire-and-forget:
// implementations swallow their own failures.
type SoundPlayer interface {
	PlaySound(name string)
}

// MutableSound is a SoundPlayer that can be muted.
type MutableSound interface {
	SoundPlayer
	SetMuted(muted bool)
	Muted() bool
}

// NopSound is a MutableSound that plays nothing.
type NopSound struct {
	muted bool
}

// PlaySound does nothing.
func (n *NopSound) PlaySound(string) {}

// SetMuted records the mute flag.
func (n *NopSound) SetMuted(muted bool) { n.muted = muted }

// Muted returns the mute flag.
func (n *NopSound) Muted() bool { return n.muted }
