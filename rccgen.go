// Package rccgen compiles stylesheets written under the rcc class naming
// convention into typed component libraries.
//
// A class name describes a component and its flags:
//
//	.Btn                      base class of component Btn
//	.Btn--large               boolean flag "large"
//	.Btn--lg_as_size          value "lg" of the enumerated flag "size"
//	.DeleteBtn_ext_Btn        DeleteBtn inherits everything Btn declares
//	.--DEFAULT                class applied to every component
//	.--dark_as_theme          flag accepted by every component
//
// # Generation
//
// Generate a Go file per stylesheet:
//
//	config := rccgen.Config{
//		SourceDir:   "web/styles",
//		OutputDir:   "internal/ui",
//		PackageName: "ui",
//	}
//	result, err := rccgen.Generate(ctx, config)
//
// Each generated file exposes a Style struct with every class name, typed
// props per component and an *rcc.Library to compose class strings with.
//
// # Checking
//
// Check reports naming convention problems and extension cycles without
// writing anything:
//
//	result, err := rccgen.Check(ctx, config)
//
// # CLI Tool
//
// Install the CLI with:
//
//	go install github.com/yacobolo/rccgen/cmd/rccgen@latest
package rccgen
