// Package lua runs editing scripts against a line buffer.
//
// Scripts run in a gopher-lua state with only the base, table, string and
// math libraries. A global buf table exposes the buffer:
//
//	buf.insert(n, text) -> line    insert, returns the line it landed on
//	buf.delete(n)                  remove line n
//	buf.replace(n, text)           overwrite line n
//	buf.undo() -> bool             false when there is nothing to undo
//	buf.redo() -> bool             false when there is nothing to redo
//	buf.lines() -> {string}
//	buf.line(n) -> string
//	buf.len() -> number
//	buf.clear()
//	buf.save([path])
//
// Invalid line numbers raise Lua errors.
//
// # Example
//
//	runner := lua.NewRunner(eng, lua.WithSaveFunc(save, "output.txt"))
//	if err := runner.RunFile(ctx, "edit.lua"); err != nil {
//	    return err
//	}
package lua
