// Package rcc turns stylesheet class names written under a naming convention
// into components with typed properties, and composes class strings for them
// at runtime.
//
// # Naming convention
//
//	Btn                      base class of component Btn
//	Btn--large-size          boolean property "large-size" of Btn
//	Root--red_as_color       value "red" of the ternary property "color" of Root
//	DeleteBtn_ext_Btn        DeleteBtn extends Btn and inherits its properties
//	--dark_as_theme          property declared on the global scope (every component)
//	--DEFAULT                class applied to every component unconditionally
//
// Segments chain: Root--yellow_as_color--dark-yellow declares the boolean
// "dark-yellow" whose class is the full token.
//
// # Usage
//
//	model, err := rcc.Build(classNames)
//	if err != nil {
//		return err // *rcc.CycleError when the extends graph has a cycle
//	}
//	lib := rcc.NewLibrary(model)
//	btn, _ := lib.Component("DeleteBtn")
//	inst := btn.New()
//	inst.ClassName(rcc.Values{"large-size": rcc.Bool(true)}, "")
//	// "DeleteBtn Btn Btn--large-size"
package rcc
