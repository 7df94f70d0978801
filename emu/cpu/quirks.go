package cpu

// Quirks selects between the original COSMAC VIP behaviour (zero value) and
// the later CHIP-48/SUPER-CHIP behaviour for the opcodes that differ.
type Quirks struct {
	ShiftUsesVX     bool //8XY6/8XYE shift Vx in place instead of copying Vy
	JumpUsesVX      bool //BNNN adds Vx (x = high nibble of nnn) instead of V0
	LoadStoreKeepsI bool //FX55/FX65 leave I untouched
}

// QuirksOriginal returns the COSMAC VIP behaviour.
func QuirksOriginal() Quirks {
	return Quirks{}
}

// QuirksModern returns the CHIP-48/SUPER-CHIP behaviour.
func QuirksModern() Quirks {
	return Quirks{
		ShiftUsesVX:     true,
		JumpUsesVX:      true,
		LoadStoreKeepsI: true,
	}
}

// Enabled reports whether any quirk is switched on.
func (q Quirks) Enabled() bool {
	return q.ShiftUsesVX || q.JumpUsesVX || q.LoadStoreKeepsI
}

func (q Quirks) String() string {
	switch q {
	case QuirksOriginal():
		return "original"
	case QuirksModern():
		return "modern"
	}
	return "custom"
}
