package extract

// Progress observes an extraction. It is a side channel only: Extract
// behaves identically with or without one.
type Progress interface {
	// Begin is called once headers are validated, before any image is written.
	Begin(root string, total int)
	// Advance is called after each image is written.
	Advance(done, total int)
}

// ProgressFuncs adapts plain functions to Progress. Nil fields are skipped.
type ProgressFuncs struct {
	OnBegin   func(root string, total int)
	OnAdvance func(done, total int)
}

func (p ProgressFuncs) Begin(root string, total int) {
	if p.OnBegin != nil {
		p.OnBegin(root, total)
	}
}

func (p ProgressFuncs) Advance(done, total int) {
	if p.OnAdvance != nil {
		p.OnAdvance(done, total)
	}
}

type noProgress struct{}

func (noProgress) Begin(string, int) {}
func (noProgress) Advance(int, int) {}
