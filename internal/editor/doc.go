// Package editor implements editing sessions over shared buffers.
//
// A Viewer is a read-only session: it owns a cursor mark, an optional
// secondary mark, a bounded mark ring and a sticky goal column, and it
// renders the buffer as a sequence of lines. An Editor adds mutation,
// filling, the kill ring and undo. A Prompt is an Editor whose buffer
// starts with a protected prefix and which can recall earlier input.
//
// Several sessions may share one buffer. Edits made through any of them
// are visible to all, and every session's marks follow the text.
//
// Basic usage:
//
//	buf := buffer.New("notes")
//	ed := editor.NewEditor(buf, editor.WithFillColumn(60))
//	defer ed.Close()
//
//	for _, r := range "hello world" {
//	    ed.SelfInsert(r)
//	}
//	ed.Undo()
//
//	lines, _ := ed.View(0, editor.Forward)
//	for line := range lines {
//	    fmt.Println(line.Segments)
//	    line.Start.Release()
//	}
//
// Commands that need input from the user are two-phase. The first call
// returns a Request and parks the session; Resume completes it:
//
//	req := ed.SetFillColumn(nil)
//	ed.Resume(req.Token, "72")
//
// User-facing failures are reported through the Notifier and leave the
// session unchanged.
package editor
