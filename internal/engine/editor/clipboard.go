package editor

// Clipboard operations. The clipboard is editor-local plain text;
// multi-line content carries "\n" separators.

// Clipboard returns the current clipboard content.
func (e *Editor) Clipboard() string {
	return e.clipboard
}

// SetClipboard replaces the clipboard content.
func (e *Editor) SetClipboard(text string) {
	e.clipboard = text
}

// CopySelection copies the selected text to the clipboard, leaving the
// selection active. It reports false when no selection exists.
func (e *Editor) CopySelection() bool {
	text, ok := e.SelectedText()
	if !ok {
		return false
	}
	e.clipboard = text
	return true
}

// CutSelection copies the selected text to the clipboard and then
// deletes it. It reports false when no selection exists.
func (e *Editor) CutSelection() bool {
	text, ok := e.SelectedText()
	if !ok {
		return false
	}
	e.clipboard = text
	return e.DeleteSelectedText()
}

// PasteClipboard inserts the clipboard content at the cursor, replacing
// any active selection, and leaves the cursor after the inserted text.
// It reports false when the clipboard is empty.
func (e *Editor) PasteClipboard() bool {
	if e.clipboard == "" {
		return false
	}
	if e.HasSelection() {
		e.DeleteSelectedText()
	}
	end, err := e.InsertTextAt(e.cursor, e.clipboard)
	if err != nil {
		return false
	}
	e.cursor = end
	e.clampCursor()
	return true
}
