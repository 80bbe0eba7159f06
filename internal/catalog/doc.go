// Package catalog loads calculator form definitions written in CUE.
//
// A form binds one operation to its input slots: a label and an inclusive
// [min, max] range per slot. The built-in catalog is embedded (forms.cue);
// users can supply their own catalog file with the same shape. Every file is
// unified with schema.cue before decoding, so structural mistakes (unknown
// fields, a bad section name, a string where a number belongs) surface as
// CUE errors with positions.
//
// Validate adds the checks CUE cannot express on its own: every form must
// name a registered operation, its slot count must fit the operation's
// arity, and min may not exceed max.
//
// Example:
//
//	c, err := catalog.LoadFile("my-forms.cue")
//	if err != nil {
//	    return err
//	}
//	if errs := catalog.Validate(c, operation.Default()); len(errs) > 0 {
//	    ...
//	}
package catalog
