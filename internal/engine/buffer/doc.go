// Package buffer provides the named text buffer shared by editing sessions.
//
// A Buffer wraps a journaled gap buffer and adds:
//
//   - A unique name claimed from a Registry
//   - A cache of derived queries, cleared on every mutation
//   - Index and slice access with negative indices counted from the end
//   - A redisplay Hint so renderers can tell when their output is stale
//   - Change listeners
//
// Basic usage:
//
//	buf := buffer.New("notes", buffer.WithContent("hello\n"))
//	defer buf.Close()
//
//	buf.Replace(5, 0, ", world", false) // "hello, world\n"
//	r, _ := buf.At(-1)                  // '\n'
//
//	line := buffer.Cached(buf, "first-line", func() string {
//	    return buf.Slice(0, 5)
//	})
//
// A second buffer asking for a taken name gets a bracketed suffix:
//
//	buffer.New("notes").Name() // "notes[1]"
//
// Buffers are not safe for concurrent mutation. The Registry is.
package buffer
