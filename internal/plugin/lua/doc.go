// Package lua runs user scripts that extend the editor.
//
// Scripts run in a State with only the base, table, string and math
// libraries. Functions that load code from disk or from strings are
// removed, and every top-level call is bounded by a timeout.
//
// A Host binds a State to an application and exposes the global quill
// table:
//
//	quill.command("duplicate-line", function(n)
//	    local _, line = quill.line()
//	    quill.run("beginning-of-line")
//	    for _ = 1, n do
//	        quill.insert(line)
//	    end
//	end)
//	quill.bind("C-c d", "duplicate-line")
//
// Scripts configured in the plugins section are loaded at startup, and
// eval-lua reads a chunk from the minibuffer.
package lua
