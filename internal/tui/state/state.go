// Package state holds the cursor arithmetic of the item picker.
package state

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// MoveCursor shifts cursor by delta and clamps the result to [0, size).
func MoveCursor(cursor, delta, size int) int {
	return ClampCursor(cursor+delta, size)
}

// PageStep is the number of rows a page jump moves for a screen of the
// given height. chromeLines is what the title, footer and help take.
func PageStep(height, chromeLines int) int {
	if height <= 0 {
		return 10
	}
	step := height - chromeLines
	if step < 3 {
		step = 3
	}
	return step
}

// ListHeight is how many item rows fit under the chrome.
func ListHeight(height, chromeLines, totalRows int) int {
	if height <= 0 {
		return totalRows
	}
	h := height - chromeLines
	if h < 1 {
		h = 1
	}
	return h
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}
