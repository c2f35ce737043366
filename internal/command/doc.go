// Package command provides the named command service that key bindings
// invoke.
//
// Commands are plain functions registered under a name:
//
//	reg := command.NewRegistry(logger)
//	reg.Register("write", func(args ...any) error {
//		return buf.Save()
//	})
//	err := reg.Invoke("write")
//
// A name containing spaces runs each word as a separate command, in
// order, stopping at the first failure:
//
//	reg.Invoke("selectStart goCharLeft selectEnd")
//
// A panicking command is recovered and reported as ErrPanic.
package command
